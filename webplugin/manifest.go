// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestSymbol is the symbol every package exports its manifest under.
const ManifestSymbol = "Manifest"

// Entry is one manifest line: a constructor plus the route metadata for
// the handler it produces.
type Entry struct {
	// Type is the constructor symbol.
	Type string `yaml:"type"`

	// Paths are the paths to register.  When empty, the handler may supply its own
	// route through webroute.Routed, or it opts out of registration.
	Paths []string `yaml:"paths"`

	// Method is the declared method.  GET is used when empty.
	Method string `yaml:"method"`
}

// Manifest lists the handler types a package provides.
type Manifest struct {
	Handlers []Entry `yaml:"handlers"`
}

// ParseManifest decodes YAML manifest data.  Unknown fields are rejected.
func ParseManifest(data []byte) (m Manifest, err error) {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err = d.Decode(&m); err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidManifest, err)
	}

	return
}

// manifestBytes extracts manifest data from the forms a package may
// export it as.  Go plugins export variables as pointers.
func manifestBytes(v any) ([]byte, error) {
	switch m := v.(type) {
	case string:
		return []byte(m), nil
	case *string:
		if m != nil {
			return []byte(*m), nil
		}
	case []byte:
		return m, nil
	case *[]byte:
		if m != nil {
			return *m, nil
		}
	case func() string:
		if m != nil {
			return []byte(m()), nil
		}
	case func() []byte:
		if m != nil {
			return m(), nil
		}
	}

	return nil, fmt.Errorf("%w: unsupported manifest type %T", ErrInvalidManifest, v)
}

// ReadManifest resolves and parses the manifest through a scope.  The manifest
// is looked up in the scope's own package only, never in the host.
func ReadManifest(s *Scope) (Manifest, error) {
	v, err := s.archive.Lookup(ManifestSymbol)
	if err != nil {
		return Manifest{}, &SymbolError{Path: s.path, Symbol: ManifestSymbol, Err: err}
	}

	data, err := manifestBytes(v)
	if err == nil {
		var m Manifest
		if m, err = ParseManifest(data); err == nil {
			return m, nil
		}
	}

	return Manifest{}, &SymbolError{Path: s.path, Symbol: ManifestSymbol, Err: err}
}
