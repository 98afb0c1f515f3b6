// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"context"
	"net"

	"github.com/xmidt-org/multiweb/internal/webreflect"
)

// ListenerMiddleware decorates the net.Listener of each front end port.
type ListenerMiddleware func(net.Listener) net.Listener

// ListenerFactory is a strategy for creating the net.Listener for a port.
//
// The returned net.Listener may be decorated arbitrarily.  Callers cannot
// assume the actual type will be *net.TCPListener.
type ListenerFactory interface {
	// Listen binds to the given address, which is of the form host:port.
	Listen(ctx context.Context, address string) (net.Listener, error)
}

// ListenerFactoryFunc is a closure type that implements ListenerFactory.
type ListenerFactoryFunc func(context.Context, string) (net.Listener, error)

// Listen implements ListenerFactory.
func (lff ListenerFactoryFunc) Listen(ctx context.Context, address string) (net.Listener, error) {
	return lff(ctx, address)
}

// DefaultListenerFactory is the default implementation of ListenerFactory.  The
// zero value of this type is a valid factory.
type DefaultListenerFactory struct {
	// ListenConfig is the object used to create the net.Listener
	ListenConfig net.ListenConfig

	// Network is the network to listen on, which must always be a TCP network.
	// If not set, "tcp" is used.
	Network string
}

// Listen binds a TCP listener.  The kernel's accept backlog applies to it,
// which is where connections wait when every worker is busy.
func (f DefaultListenerFactory) Listen(ctx context.Context, address string) (net.Listener, error) {
	network := f.Network
	if len(network) == 0 {
		network = "tcp"
	}

	return f.ListenConfig.Listen(ctx, network, address)
}

// NewListener creates and decorates the listener for an address.  This function is
// normally called from within a start hook.
//
// The ListenerFactory may be nil, in which case an instance of DefaultListenerFactory is used.
func NewListener(ctx context.Context, lf ListenerFactory, address string, lm ...ListenerMiddleware) (l net.Listener, err error) {
	lf = webreflect.Safe[ListenerFactory](lf, DefaultListenerFactory{})
	l, err = lf.Listen(ctx, address)
	if err == nil {
		l = webreflect.ApplyMiddleware(l, lm...)
	}

	return
}
