// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"net"
	"time"
)

// ListenCapture returns a middleware that captures the bind address of
// a net.Listener.  The returned middleware does not decorate the listener.
//
// Front ends in tests usually bind port 0, so this is how a test finds the
// port to connect to.  The channel should be buffered with room for every
// port the front end binds.
func ListenCapture(ch chan<- net.Addr) func(net.Listener) net.Listener {
	return func(l net.Listener) net.Listener {
		ch <- l.Addr()
		return l
	}
}

// ListenReceive returns the first net.Addr received on a channel, typically previously
// passed to ListenCapture.  If timeout elapses, this function return nil, false.
func ListenReceive(ch <-chan net.Addr, timeout time.Duration) (net.Addr, bool) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case a := <-ch:
		return a, true
	case <-t.C:
		return nil, false
	}
}

// Port extracts the TCP port from an address, or returns 0.
func Port(a net.Addr) int {
	if ta, ok := a.(*net.TCPAddr); ok {
		return ta.Port
	}

	return 0
}
