// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// MockListener is a mocked net.Listener for driving a front end's accept loop.
type MockListener struct {
	mock.Mock
}

func (m *MockListener) Accept() (net.Conn, error) {
	args := m.Called()
	c, _ := args.Get(0).(net.Conn)
	return c, args.Error(1)
}

func (m *MockListener) ExpectAccept(c net.Conn, err error) *mock.Call {
	return m.On("Accept").Return(c, err)
}

// ExpectConns sets up Accept to return each connection once, in order, and then
// net.ErrClosed for every call after that, the way a listener behaves once it is
// closed during shutdown.
func (m *MockListener) ExpectConns(conns ...net.Conn) {
	for _, c := range conns {
		m.ExpectAccept(c, nil).Once()
	}

	m.ExpectAccept(nil, net.ErrClosed)
}

func (m *MockListener) Close() error {
	return m.Called().Error(0)
}

func (m *MockListener) ExpectClose(err error) *mock.Call {
	return m.On("Close").Return(err)
}

func (m *MockListener) Addr() net.Addr {
	args := m.Called()
	a, _ := args.Get(0).(net.Addr)
	return a
}

func (m *MockListener) ExpectAddr(a net.Addr) *mock.Call {
	return m.On("Addr").Return(a)
}

// ExpectPort sets up Addr to return a loopback TCP address with the given port,
// which is the port a front end reports and routes by.
func (m *MockListener) ExpectPort(port int) *mock.Call {
	return m.ExpectAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port})
}
