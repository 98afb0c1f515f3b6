// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webreflect

import "reflect"

// Safe returns candidate when it is a valid, non-nil value and def otherwise.
// Values of types that cannot be nil are always returned as is.
//
// This is mostly used to default strategy interfaces that may have been
// supplied as typed nils:
//
//	var lf *MyListenerFactory // nil
//	f := webreflect.Safe[ListenerFactory](lf, DefaultListenerFactory{})
func Safe[T any](candidate, def T) (result T) {
	result = def
	defer func() {
		if r := recover(); r != nil {
			// IsNil panics for kinds that can never be nil
			result = candidate
		}
	}()

	if cv := reflect.ValueOf(candidate); cv.IsValid() && !cv.IsNil() {
		result = candidate
	}

	return
}
