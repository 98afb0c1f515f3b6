// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import (
	"errors"
	"sort"
)

// ErrNotFound is returned when no handler is registered for a port or path.
// A miss is an ordinary outcome, answered with a "404 Not Found" page.
var ErrNotFound = errors.New("no handler registered")

// Resolver is the lookup strategy used by front ends.
type Resolver interface {
	// Resolve returns the handler for a path on a port, or ErrNotFound.
	Resolve(port int, path string) (Handler, error)
}

// Route is a single entry in a Table.
type Route struct {
	// Path is the exact path this route answers.
	Path string `json:"path"`

	// Method is the method from the descriptor that produced this route.
	// It is metadata only: every method is dispatched to Handler.
	Method string `json:"method"`

	// Source identifies where Handler came from, typically a scope's package path.
	Source string `json:"source,omitempty"`

	Handler Handler `json:"-"`
}

// Table is an immutable mapping of paths onto handlers.  A nil *Table is an
// empty table.
type Table struct {
	routes map[string]Route
}

// Get returns the route for an exact path.
func (t *Table) Get(path string) (Route, bool) {
	if t == nil {
		return Route{}, false
	}

	r, ok := t.routes[path]
	return r, ok
}

// Resolve ignores the port, which makes a Table a single-tenant Resolver.
func (t *Table) Resolve(_ int, path string) (Handler, error) {
	if r, ok := t.Get(path); ok {
		return r.Handler, nil
	}

	return nil, ErrNotFound
}

// Len returns the number of paths in this table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.routes)
}

// Routes returns a copy of this table's routes, sorted by path.
func (t *Table) Routes() []Route {
	if t == nil {
		return nil
	}

	routes := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		routes = append(routes, r)
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	return routes
}

// TableBuilder accumulates routes for a Table.  When a path is added more
// than once, the last registration wins.  A TableBuilder is not safe for
// concurrent use, and is normally private to one tenant load.
type TableBuilder struct {
	routes map[string]Route
}

// NewTableBuilder creates an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		routes: make(map[string]Route),
	}
}

// Add registers h under every path of d.  The descriptor is normalized and
// validated first, and nothing is added if it is invalid.
func (tb *TableBuilder) Add(d Descriptor, h Handler, source string) error {
	if h == nil {
		return errors.New("a route requires a non-nil handler")
	}

	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}

	for _, p := range d.Paths {
		tb.routes[p] = Route{
			Path:    p,
			Method:  d.Method,
			Source:  source,
			Handler: h,
		}
	}

	return nil
}

// Merge copies every route of t into this builder, overwriting paths
// already present.
func (tb *TableBuilder) Merge(t *Table) *TableBuilder {
	if t != nil {
		for p, r := range t.routes {
			tb.routes[p] = r
		}
	}

	return tb
}

// Len is the number of distinct paths added so far.
func (tb *TableBuilder) Len() int {
	return len(tb.routes)
}

// Build creates an immutable Table from the routes added so far.  The
// builder may continue to be used without affecting the returned Table.
func (tb *TableBuilder) Build() *Table {
	routes := make(map[string]Route, len(tb.routes))
	for p, r := range tb.routes {
		routes[p] = r
	}

	return &Table{
		routes: routes,
	}
}
