// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by Open on platforms without Go plugin support.
	ErrUnsupported = errors.New("plugins are not supported on this platform")

	// ErrSymbolNotFound indicates a symbol that neither a package nor the host defines.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNotConstructor indicates a symbol that is not a zero-argument constructor.
	ErrNotConstructor = errors.New("symbol is not a zero-argument constructor")

	// ErrNotHandler indicates a constructor whose product does not implement webroute.Handler.
	ErrNotHandler = errors.New("constructed value does not implement webroute.Handler")

	// ErrInvalidManifest indicates a manifest symbol of an unusable type or with unparseable contents.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// LoadError indicates a package that could not be loaded at all, e.g. because
// its path does not exist or it is not a loadable archive.
type LoadError struct {
	Path string
	Err  error
}

func (le *LoadError) Error() string {
	return fmt.Sprintf("unable to load package [%s]: %s", le.Path, le.Err)
}

func (le *LoadError) Unwrap() error {
	return le.Err
}

// SymbolError indicates a problem with a symbol in a loaded package.  When
// Symbol is ManifestSymbol, the whole package is unusable.  Otherwise, only
// that one manifest entry is skipped.
type SymbolError struct {
	Path   string
	Symbol string
	Err    error
}

func (se *SymbolError) Error() string {
	return fmt.Sprintf("symbol [%s] in package [%s]: %s", se.Symbol, se.Path, se.Err)
}

func (se *SymbolError) Unwrap() error {
	return se.Err
}
