// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"fmt"
	"strings"
)

// Strategy is how a front end port schedules its connections onto workers.
type Strategy int

const (
	// Reactor uses a single acceptor per port that hands each accepted connection to
	// a bounded pool of workers.  The acceptor stops accepting while the pool is full.
	// This is the default.
	Reactor Strategy = iota

	// Pool runs a fixed number of workers per port, each of which accepts and then
	// serves one connection at a time.
	Pool
)

// String returns the configuration name of this strategy.
func (s Strategy) String() string {
	switch s {
	case Reactor:
		return "reactor"
	case Pool:
		return "pool"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// UnmarshalText allows a Strategy to be read from configuration.  An empty value is Reactor.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "reactor":
		*s = Reactor
	case "pool":
		*s = Pool
	default:
		return fmt.Errorf("invalid front end strategy: %q", text)
	}

	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
