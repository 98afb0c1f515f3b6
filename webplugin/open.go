// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin || freebsd

package webplugin

import (
	"fmt"
	"plugin"
)

// Supported reports whether Open can load Go plugins on this platform.
func Supported() bool { return true }

type pluginArchive struct {
	p *plugin.Plugin
}

func (pa pluginArchive) Lookup(symbol string) (any, error) {
	s, err := pa.p.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, err)
	}

	return s, nil
}

// Open loads the Go plugin at path.  Any failure is returned as a *LoadError.
//
// The Go runtime never unloads a plugin, and opening the same path twice yields
// the same symbols.  Isolation between tenants therefore rests on Scope, which
// constructs fresh handler instances for every load.
func Open(path string) (Archive, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return pluginArchive{p: p}, nil
}
