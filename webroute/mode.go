// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import (
	"fmt"
	"strings"
)

// Mode determines how a Registry partitions its routes.
type Mode int

const (
	// ModeTenant keeps one table per port.  This is the default.
	ModeTenant Mode = iota

	// ModeGlobal keeps a single table shared by every port.
	ModeGlobal
)

// String returns the configuration name of this mode.
func (m Mode) String() string {
	switch m {
	case ModeTenant:
		return "tenant"
	case ModeGlobal:
		return "global"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// UnmarshalText allows a Mode to be read from configuration.  An empty value is ModeTenant.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "tenant":
		*m = ModeTenant
	case "global":
		*m = ModeGlobal
	default:
		return fmt.Errorf("invalid routing mode: %q", text)
	}

	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
