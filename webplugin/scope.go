// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/xmidt-org/multiweb/webroute"
)

var handlerType = reflect.TypeOf((*webroute.Handler)(nil)).Elem()

// Instance is a handler constructed through a Scope.
type Instance struct {
	// Symbol is the constructor that produced Handler.
	Symbol string

	Handler webroute.Handler
}

// Scope is the namespace boundary for one loaded package.  Lookups resolve
// against the package's own archive first and fall back to the host's built-in
// symbols.  A Scope exclusively owns the handler instances it constructs.
//
// A Scope has no unload operation.  It, and its instances, go away when
// nothing refers to them anymore.
type Scope struct {
	id      string
	path    string
	archive Archive
	host    Archive

	lock      sync.Mutex
	instances []Instance
}

// NewScope creates a Scope for the package at path.  The host archive is
// optional.
func NewScope(path string, archive Archive, host Archive) *Scope {
	if archive == nil {
		archive = Symbols(nil)
	}

	if host == nil {
		host = Symbols(nil)
	}

	return &Scope{
		id:      uuid.NewString(),
		path:    path,
		archive: archive,
		host:    host,
	}
}

// ID is the unique identifier of this scope.
func (s *Scope) ID() string {
	return s.id
}

// Path is the package path this scope was created for.
func (s *Scope) Path() string {
	return s.path
}

// Lookup resolves a symbol through this scope: the package first, then the host.
// The returned error is a *SymbolError.
func (s *Scope) Lookup(symbol string) (any, error) {
	v, err := s.archive.Lookup(symbol)
	if err == nil {
		return v, nil
	}

	if !errors.Is(err, ErrSymbolNotFound) {
		return nil, &SymbolError{Path: s.path, Symbol: symbol, Err: err}
	}

	if v, err = s.host.Lookup(symbol); err == nil {
		return v, nil
	}

	return nil, &SymbolError{Path: s.path, Symbol: symbol, Err: err}
}

// New resolves a constructor through this scope, invokes it, and records
// the resulting handler as owned by this scope.  Every call produces a new
// instance, even for host built-ins.
//
// A constructor is any function with no parameters that returns a single value,
// or a value and an error.  Constructors exported by Go plugins may also be
// pointers to such functions.
func (s *Scope) New(symbol string) (webroute.Handler, error) {
	v, err := s.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	h, err := construct(v)
	if err != nil {
		return nil, &SymbolError{Path: s.path, Symbol: symbol, Err: err}
	}

	s.lock.Lock()
	s.instances = append(s.instances, Instance{Symbol: symbol, Handler: h})
	s.lock.Unlock()

	return h, nil
}

// Instances returns the handlers constructed through this scope, in order.
func (s *Scope) Instances() []Instance {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]Instance(nil), s.instances...)
}

func construct(v any) (h webroute.Handler, err error) {
	cv := reflect.ValueOf(v)
	if cv.Kind() == reflect.Pointer && !cv.IsNil() && cv.Elem().Kind() == reflect.Func {
		cv = cv.Elem()
	}

	if cv.Kind() != reflect.Func || cv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotConstructor, v)
	}

	ct := cv.Type()
	if ct.NumIn() != 0 || ct.IsVariadic() || ct.NumOut() < 1 || ct.NumOut() > 2 {
		return nil, fmt.Errorf("%w: %s", ErrNotConstructor, ct)
	}

	if ct.NumOut() == 2 && ct.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
		return nil, fmt.Errorf("%w: %s", ErrNotConstructor, ct)
	}

	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("constructor panicked: %v", r)
		}
	}()

	out := cv.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	product := out[0]
	if !product.IsValid() || isNil(product) {
		return nil, fmt.Errorf("%w: constructor returned nil", ErrNotHandler)
	}

	if !product.Type().Implements(handlerType) {
		if product.Kind() == reflect.Interface && product.Elem().Type().Implements(handlerType) {
			return product.Elem().Interface().(webroute.Handler), nil
		}

		return nil, fmt.Errorf("%w: %s", ErrNotHandler, product.Type())
	}

	return product.Interface().(webroute.Handler), nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
