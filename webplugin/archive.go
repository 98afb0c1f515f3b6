// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

// Archive is a loaded unit of code that exposes named symbols.  Each Archive
// is its own namespace: the same symbol name in two archives refers to two
// unrelated values.
type Archive interface {
	// Lookup returns the named symbol.  An error satisfying errors.Is(err, ErrSymbolNotFound)
	// is returned when this archive has no such symbol.
	Lookup(symbol string) (any, error)
}

// Symbols is an in-memory Archive.  It is used for the host's built-in handlers
// and for packages assembled in code rather than loaded from disk.
type Symbols map[string]any

var _ Archive = Symbols(nil)

// Lookup returns the value registered under symbol.
func (s Symbols) Lookup(symbol string) (any, error) {
	if v, ok := s[symbol]; ok {
		return v, nil
	}

	return nil, ErrSymbolNotFound
}
