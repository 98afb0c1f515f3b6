// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"
)

// NewApp creates an *fxtest.App bound to the test t, which is anything AsTestable
// accepts.  fx events are logged to t.  A later fx.WithLogger in o, such as the one
// from multiweb.TestLogger, replaces that logger.
func NewApp(t any, o ...fx.Option) *fxtest.App {
	tt := AsTestable(t)
	return fxtest.New(
		tt,
		append(
			[]fx.Option{
				fx.WithLogger(func() fxevent.Logger {
					return &fxevent.ZapLogger{Logger: Logger(tt).Named("fx")}
				}),
			},
			o...,
		)...,
	)
}

// NewErrApp creates an *fx.App that must fail during construction, and asserts
// that it did.  The app's own logging is silenced, since its failure is expected.
func NewErrApp(t any, o ...fx.Option) *fx.App {
	app := fx.New(append(o, fx.NopLogger)...)
	assert.Error(AsTestable(t), app.Err())
	return app
}
