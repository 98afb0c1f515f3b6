// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webreflect

// Middleware is the underlying type for decorators of T.
type Middleware[T any] interface {
	~func(T) T
}

// ApplyMiddleware decorates t.  The middleware executes in the order
// given to this function, i.e. m[0] is the outermost decorator.
func ApplyMiddleware[T any, M Middleware[T]](t T, m ...M) T {
	for i := len(m) - 1; i >= 0; i-- {
		t = m[i](t)
	}

	return t
}
