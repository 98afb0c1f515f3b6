// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import (
	"errors"
	"fmt"
	"strings"
)

// The methods a Descriptor may declare.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodPatch   = "PATCH"
)

var (
	// ErrNoPaths indicates a Descriptor without any paths.
	ErrNoPaths = errors.New("a route descriptor requires at least one path")

	// ErrInvalidPath indicates a Descriptor path that does not begin with '/'.
	ErrInvalidPath = errors.New("route paths must begin with '/'")

	// ErrInvalidMethod indicates a Descriptor method outside the supported set.
	ErrInvalidMethod = errors.New("unsupported route method")
)

var methods = map[string]bool{
	MethodGet:     true,
	MethodPost:    true,
	MethodPut:     true,
	MethodDelete:  true,
	MethodHead:    true,
	MethodOptions: true,
	MethodPatch:   true,
}

// Descriptor is the route metadata attached to a handler: the paths it
// answers and the method it is declared for.
type Descriptor struct {
	Paths  []string `yaml:"paths" json:"paths"`
	Method string   `yaml:"method" json:"method"`
}

// Routed is optionally implemented by handlers that carry their own Descriptor.
type Routed interface {
	Route() Descriptor
}

// Normalize returns a deep copy of this descriptor with the method uppercased
// and defaulted to GET.  Copies never share their Paths slice, so a normalized
// descriptor is unaffected by later changes to the original.
func (d Descriptor) Normalize() Descriptor {
	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if len(method) == 0 {
		method = MethodGet
	}

	return Descriptor{
		Paths:  append([]string(nil), d.Paths...),
		Method: method,
	}
}

// Validate checks the paths and method of this descriptor.  The method
// is checked as is, so callers usually validate a normalized descriptor.
func (d Descriptor) Validate() error {
	if len(d.Paths) == 0 {
		return ErrNoPaths
	}

	for _, p := range d.Paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}

	if !methods[d.Method] {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, d.Method)
	}

	return nil
}
