// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webadmin

import (
	"net"

	"github.com/stretchr/testify/mock"
	"go.uber.org/fx"
)

type mockServable struct {
	mock.Mock
}

func (m *mockServable) Serve(l net.Listener) error {
	return m.Called(l).Error(0)
}

func (m *mockServable) ExpectServe(l net.Listener, err error) *mock.Call {
	return m.On("Serve", l).Return(err)
}

type mockShutdowner struct {
	mock.Mock
}

func (m *mockShutdowner) Shutdown(opts ...fx.ShutdownOption) error {
	return m.Called(opts).Error(0)
}

func (m *mockShutdowner) ExpectShutdown() *mock.Call {
	return m.On("Shutdown", mock.Anything).Return(nil)
}
