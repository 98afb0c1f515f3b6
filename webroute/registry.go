// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import (
	"sort"
	"sync"
	"sync/atomic"
)

// snapshot is a complete, immutable view of a Registry
type snapshot struct {
	global *Table
	ports  map[int]*Table
}

// Registry owns the routing tables a front end resolves against.  Readers
// always see a complete snapshot: tables are only ever swapped in after they
// are fully built, and a published Table is never modified.
//
// Resolve never blocks.  Publish calls are serialized with respect to each other.
type Registry struct {
	mode Mode

	lock    sync.Mutex
	current atomic.Pointer[snapshot]
}

var _ Resolver = (*Registry)(nil)

// NewRegistry creates an empty Registry with the given mode.
func NewRegistry(m Mode) *Registry {
	r := &Registry{
		mode: m,
	}

	r.current.Store(&snapshot{
		ports: map[int]*Table{},
	})

	return r
}

// Mode returns the partitioning mode of this registry.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Publish makes t visible to readers.
//
// In ModeTenant, t replaces whatever table was previously published for port,
// so paths from an earlier load that are absent from t no longer resolve.
// In ModeGlobal, the port is only informational and the routes of t are merged into
// the shared table, with t winning any collisions.
func (r *Registry) Publish(port int, t *Table) {
	r.lock.Lock()
	defer r.lock.Unlock()

	prev := r.current.Load()
	next := &snapshot{
		global: prev.global,
		ports:  make(map[int]*Table, len(prev.ports)+1),
	}

	for p, pt := range prev.ports {
		next.ports[p] = pt
	}

	if r.mode == ModeGlobal {
		next.global = NewTableBuilder().Merge(prev.global).Merge(t).Build()
	}

	// tracked in both modes so that Ports and Table report what was loaded
	next.ports[port] = t
	r.current.Store(next)
}

// Resolve returns the handler for path.  In ModeTenant, the port's table is
// consulted and an unknown port is a miss.  In ModeGlobal the port is ignored.
func (r *Registry) Resolve(port int, path string) (Handler, error) {
	s := r.current.Load()
	if r.mode == ModeGlobal {
		return s.global.Resolve(port, path)
	}

	t, ok := s.ports[port]
	if !ok {
		return nil, ErrNotFound
	}

	return t.Resolve(port, path)
}

// Table returns the table published for a port.  In ModeGlobal, this is the most
// recent table published under that port, not the shared table.
func (r *Registry) Table(port int) (*Table, bool) {
	t, ok := r.current.Load().ports[port]
	return t, ok
}

// Global returns the shared table.  It is always empty in ModeTenant.
func (r *Registry) Global() *Table {
	return r.current.Load().global
}

// Ports returns the sorted ports for which a table has been published.
func (r *Registry) Ports() []int {
	s := r.current.Load()
	ports := make([]int, 0, len(s.ports))
	for p := range s.ports {
		ports = append(ports, p)
	}

	sort.Ints(ports)
	return ports
}
