// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webadmin

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/xmidt-org/httpaux"
	"github.com/xmidt-org/multiweb/webfront"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DefaultAddress is the bind address used when Config.Address is unset.
const DefaultAddress = "127.0.0.1:0"

// Config is the externally unmarshaled configuration for the admin server.
type Config struct {
	// Network is the tcp network to listen on.  The default is "tcp".
	Network string

	// Address is the bind address of the server.  If unset, the server binds
	// to an ephemeral loopback port.
	Address string

	// ReadTimeout corresponds to http.Server.ReadTimeout
	ReadTimeout time.Duration

	// ReadHeaderTimeout corresponds to http.Server.ReadHeaderTimeout
	ReadHeaderTimeout time.Duration

	// WriteTimeout corresponds to http.Server.WriteTimeout
	WriteTimeout time.Duration

	// IdleTimeout corresponds to http.Server.IdleTimeout
	IdleTimeout time.Duration

	// MaxHeaderBytes corresponds to http.Server.MaxHeaderBytes
	MaxHeaderBytes int

	// Header supplies HTTP headers to emit on every response from this server
	Header http.Header

	// PprofPrefix is where the pprof routes are mounted.  DefaultPprofPrefix is
	// used if unset, and "-" disables pprof.
	PprofPrefix string
}

// NewServer creates the admin http.Server around a handler.  Configured headers
// are added to every response.
func (c Config) NewServer(h http.Handler, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:              c.Address,
		Handler:           httpaux.NewHeader(c.Header).Then(h),
		ReadTimeout:       c.ReadTimeout,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		WriteTimeout:      c.WriteTimeout,
		IdleTimeout:       c.IdleTimeout,
		MaxHeaderBytes:    c.MaxHeaderBytes,
	}

	if logger != nil {
		server.ErrorLog = zap.NewStdLog(logger)
	}

	return server
}

// Listen binds the admin server's listener.
func (c Config) Listen(ctx context.Context) (net.Listener, error) {
	address := c.Address
	if len(address) == 0 {
		address = DefaultAddress
	}

	return webfront.DefaultListenerFactory{Network: c.Network}.Listen(ctx, address)
}

// ServerExit is a callback run when the server exits its accept loop.
// A ServerExit function must never panic, or server cleanup will be interrupted.
type ServerExit func(error)

// ShutdownOnExit returns a ServerExit strategy that stops the enclosing fx.App
// when the admin server stops serving for any reason other than a graceful shutdown.
func ShutdownOnExit(shutdowner fx.Shutdowner, opts ...fx.ShutdownOption) ServerExit {
	return func(err error) {
		if err != http.ErrServerClosed {
			shutdowner.Shutdown(opts...)
		}
	}
}

// Servable describes the behavior of an object that implements an accept loop.
// *http.Server implements this interface.
type Servable interface {
	// Serve executes an accept loop using the given listener.  This method
	// does not return until the listener is closed.
	Serve(net.Listener) error
}

// Serve executes the given servable's accept loop using the supplied net.Listener.
// Any onExit functions are called with the accept loop's error when it exits.
func Serve(s Servable, l net.Listener, onExit ...ServerExit) (err error) {
	defer func() {
		for _, f := range onExit {
			f(err)
		}
	}()

	err = s.Serve(l)
	return
}

// OnStart returns an fx.Hook.OnStart closure that binds the listener and starts
// the server's accept loop in a goroutine.  Any listener middleware decorates the
// bound listener before serving.
func OnStart(c Config, s *http.Server, lm []webfront.ListenerMiddleware, onExit ...ServerExit) func(context.Context) error {
	return func(ctx context.Context) error {
		l, err := webfront.NewListener(
			ctx,
			webfront.ListenerFactoryFunc(func(ctx context.Context, _ string) (net.Listener, error) {
				return c.Listen(ctx)
			}),
			c.Address,
			lm...,
		)

		if err != nil {
			return err
		}

		go Serve(s, l, onExit...)
		return nil
	}
}
