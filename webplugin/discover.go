// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"github.com/xmidt-org/multiweb/webroute"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Discovered is a handler found in a package together with its route.
type Discovered struct {
	Symbol     string
	Descriptor webroute.Descriptor
	Handler    webroute.Handler
}

// Discovery is the result of scanning one Scope.
type Discovery struct {
	// Scope is the scope that was scanned.  It owns every handler in Routes.
	Scope *Scope

	// Routes are the handlers that declared a route, in manifest order.
	Routes []Discovered

	// OptedOut are the symbols of handlers that carried no route.
	OptedOut []string

	// Failures are the per-entry errors, each a *SymbolError.  Failed entries
	// are skipped without affecting the rest of the manifest.
	Failures []error
}

// Err combines all failures into one error, or returns nil if there were none.
func (d *Discovery) Err() error {
	return multierr.Combine(d.Failures...)
}

// AddTo registers every discovered route with a TableBuilder, using the scope's
// path as the source.  Routes are added in manifest order, so a later entry
// overrides an earlier one for the same path.
func (d *Discovery) AddTo(tb *webroute.TableBuilder) error {
	var err error
	for _, r := range d.Routes {
		err = multierr.Append(err, tb.Add(r.Descriptor, r.Handler, d.Scope.Path()))
	}

	return err
}

// Discover reads the manifest of a scope and constructs a handler for each entry.
// Only a missing or malformed manifest fails the whole scope; that error is a
// *SymbolError and the returned Discovery is nil.
//
// Each entry is resolved through s, so symbols come from the scope's package or,
// failing that, the host.  An entry without paths uses the handler's own route
// if it implements webroute.Routed and is otherwise opted out.
func Discover(s *Scope, logger *zap.Logger) (*Discovery, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.With(zap.String("scope", s.ID()), zap.String("package", s.Path()))
	m, err := ReadManifest(s)
	if err != nil {
		logger.Error("unable to read manifest", zap.Error(err))
		return nil, err
	}

	d := &Discovery{
		Scope: s,
	}

	for _, e := range m.Handlers {
		entryLogger := logger.With(zap.String("symbol", e.Type))
		if len(e.Type) == 0 {
			err := &SymbolError{Path: s.Path(), Err: ErrSymbolNotFound}
			entryLogger.Error("manifest entry has no type", zap.Error(err))
			d.Failures = append(d.Failures, err)
			continue
		}

		h, err := s.New(e.Type)
		if err != nil {
			entryLogger.Error("unable to construct handler", zap.Error(err))
			d.Failures = append(d.Failures, err)
			continue
		}

		var descriptor webroute.Descriptor
		if len(e.Paths) > 0 {
			descriptor = webroute.Descriptor{Paths: e.Paths, Method: e.Method}
		} else if r, ok := h.(webroute.Routed); ok {
			descriptor = r.Route()
		} else {
			entryLogger.Debug("handler declares no route")
			d.OptedOut = append(d.OptedOut, e.Type)
			continue
		}

		descriptor = descriptor.Normalize()
		if err := descriptor.Validate(); err != nil {
			err = &SymbolError{Path: s.Path(), Symbol: e.Type, Err: err}
			entryLogger.Error("invalid route", zap.Error(err))
			d.Failures = append(d.Failures, err)
			continue
		}

		entryLogger.Debug(
			"discovered handler",
			zap.Strings("paths", descriptor.Paths),
			zap.String("method", descriptor.Method),
		)

		d.Routes = append(d.Routes, Discovered{
			Symbol:     e.Type,
			Descriptor: descriptor,
			Handler:    h,
		})
	}

	return d, nil
}
