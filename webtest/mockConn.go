// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"net"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockConn is a mocked net.Conn.
type MockConn struct {
	mock.Mock
}

var _ net.Conn = (*MockConn)(nil)

func (m *MockConn) Read(b []byte) (int, error) {
	args := m.Called(b)
	return args.Int(0), args.Error(1)
}

// ExpectRead sets up a Read that copies data into the caller's buffer.
func (m *MockConn) ExpectRead(data string, err error) *mock.Call {
	return m.On("Read", mock.Anything).
		Run(func(args mock.Arguments) {
			copy(args.Get(0).([]byte), data)
		}).
		Return(len(data), err)
}

func (m *MockConn) Write(b []byte) (int, error) {
	args := m.Called(b)
	return args.Int(0), args.Error(1)
}

// ExpectWrite sets up a Write of the given data.
func (m *MockConn) ExpectWrite(data string, n int, err error) *mock.Call {
	return m.On("Write", []byte(data)).Return(n, err)
}

func (m *MockConn) Close() error {
	return m.Called().Error(0)
}

func (m *MockConn) ExpectClose(err error) *mock.Call {
	return m.On("Close").Return(err)
}

func (m *MockConn) LocalAddr() net.Addr {
	a, _ := m.Called().Get(0).(net.Addr)
	return a
}

func (m *MockConn) ExpectLocalAddr(a net.Addr) *mock.Call {
	return m.On("LocalAddr").Return(a)
}

func (m *MockConn) RemoteAddr() net.Addr {
	a, _ := m.Called().Get(0).(net.Addr)
	return a
}

func (m *MockConn) ExpectRemoteAddr(a net.Addr) *mock.Call {
	return m.On("RemoteAddr").Return(a)
}

func (m *MockConn) SetDeadline(t time.Time) error {
	return m.Called(t).Error(0)
}

func (m *MockConn) SetReadDeadline(t time.Time) error {
	return m.Called(t).Error(0)
}

func (m *MockConn) ExpectSetReadDeadline(err error) *mock.Call {
	return m.On("SetReadDeadline", mock.Anything).Return(err)
}

func (m *MockConn) SetWriteDeadline(t time.Time) error {
	return m.Called(t).Error(0)
}

func (m *MockConn) ExpectSetWriteDeadline(err error) *mock.Call {
	return m.On("SetWriteDeadline", mock.Anything).Return(err)
}
