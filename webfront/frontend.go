// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/xmidt-org/multiweb/webroute"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoListeners is returned by Start when none of the configured ports could be bound.
var ErrNoListeners = errors.New("no front end port could be bound")

// Option tailors a Frontend.
type Option func(*Frontend)

// WithListenerFactory sets the factory used to bind each port.
func WithListenerFactory(lf ListenerFactory) Option {
	return func(f *Frontend) {
		f.factory = lf
	}
}

// WithListenerMiddleware appends decorators applied to each port's listener.
func WithListenerMiddleware(lm ...ListenerMiddleware) Option {
	return func(f *Frontend) {
		f.middleware = append(f.middleware, lm...)
	}
}

// WithLogger sets the front end logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Frontend) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithObservers appends connection observers.
func WithObservers(o ...Observer) Option {
	return func(f *Frontend) {
		f.observers = append(f.observers, o...)
	}
}

// WithStateObservers appends connection state observers.
func WithStateObservers(o ...StateObserver) Option {
	return func(f *Frontend) {
		f.stateObservers = append(f.stateObservers, o...)
	}
}

// Frontend accepts connections on every configured port and dispatches each request
// through a Resolver using the destination port of its connection.
type Frontend struct {
	config         Config
	resolver       webroute.Resolver
	factory        ListenerFactory
	middleware     []ListenerMiddleware
	logger         *zap.Logger
	observers      []Observer
	stateObservers []StateObserver

	active atomic.Int64

	lock    sync.Mutex
	servers []*server
	started bool
}

// New creates a Frontend.  Nothing is bound until Start.
func New(cfg Config, r webroute.Resolver, opts ...Option) (*Frontend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if r == nil {
		return nil, errors.New("a front end requires a resolver")
	}

	f := &Frontend{
		config:   cfg,
		resolver: r,
		logger:   zap.NewNop(),
	}

	for _, o := range opts {
		o(f)
	}

	return f, nil
}

// Start binds every configured port and starts serving.  A port that cannot be bound
// is logged and left out, while the other ports are served normally.  Start only fails
// when no port could be bound at all.
func (f *Frontend) Start(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.started {
		return errors.New("the front end has already been started")
	}

	f.started = true
	var bindErrs error
	for _, port := range f.config.Ports {
		address := net.JoinHostPort(f.config.Host, strconv.Itoa(port))
		l, err := NewListener(ctx, f.factory, address, f.middleware...)
		if err != nil {
			f.logger.Error("unable to bind front end port", zap.String("address", address), zap.Error(err))
			bindErrs = multierr.Append(bindErrs, err)
			continue
		}

		s := &server{
			listener:       l,
			port:           destinationPort(l.Addr(), port),
			config:         f.config,
			resolver:       f.resolver,
			logger:         f.logger.With(zap.String("address", l.Addr().String())),
			active:         &f.active,
			observers:      f.observers,
			stateObservers: f.stateObservers,
			done:           make(chan struct{}),
			conns:          make(map[net.Conn]struct{}),
		}

		f.servers = append(f.servers, s)
		s.logger.Info(
			"front end listening",
			zap.String("strategy", f.config.Strategy.String()),
			zap.Int("workers", f.config.workers()),
		)

		go s.serve()
	}

	if len(f.servers) == 0 {
		return multierr.Append(ErrNoListeners, bindErrs)
	}

	return nil
}

// Stop closes every listener and waits for connections in flight.  If ctx ends first,
// the remaining connections are closed forcibly and ctx.Err() is returned.
func (f *Frontend) Stop(ctx context.Context) (err error) {
	f.lock.Lock()
	servers := f.servers
	f.lock.Unlock()

	for _, s := range servers {
		if s.closing.CompareAndSwap(false, true) {
			err = multierr.Append(err, s.listener.Close())
		}
	}

	for _, s := range servers {
		select {
		case <-s.done:
		case <-ctx.Done():
			for _, other := range servers {
				other.closeConns()
			}

			return multierr.Append(err, ctx.Err())
		}
	}

	return
}

// Addrs returns the bound address of every port that is being served.
func (f *Frontend) Addrs() []net.Addr {
	f.lock.Lock()
	defer f.lock.Unlock()

	addrs := make([]net.Addr, 0, len(f.servers))
	for _, s := range f.servers {
		addrs = append(addrs, s.listener.Addr())
	}

	return addrs
}

// Ports returns the bound port of every port being served, which differs from the
// configuration for ports configured as 0.
func (f *Frontend) Ports() []int {
	f.lock.Lock()
	defer f.lock.Unlock()

	ports := make([]int, 0, len(f.servers))
	for _, s := range f.servers {
		ports = append(ports, s.port)
	}

	return ports
}

// Active returns the number of connections currently being served across all ports.
func (f *Frontend) Active() int64 {
	return f.active.Load()
}
