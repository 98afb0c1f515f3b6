// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Testable is what multiweb tests need from a test: enough to drive an fxtest.App
// and testify assertions, and to back a zaptest logger.  *testing.T and *testing.B
// both implement it.
type Testable interface {
	Name() string
	Logf(string, ...any)
	Errorf(string, ...any)
	Fail()
	Failed() bool
	FailNow()
}

var _ zaptest.TestingT = Testable(nil)

// AsTestable returns v as a Testable.  Besides a Testable itself, v may be a test
// suite or anything else with a T() *testing.T method.  Any other v panics.
func AsTestable(v any) Testable {
	switch t := v.(type) {
	case Testable:
		return t

	case interface{ T() *testing.T }:
		return t.T()

	default:
		panic(fmt.Errorf("%T cannot be converted into a Testable", v))
	}
}

// Logger returns a zap logger that writes to the test v, which is anything
// AsTestable accepts.
func Logger(v any) *zap.Logger {
	return zaptest.NewLogger(AsTestable(v))
}
