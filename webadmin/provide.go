// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webadmin

import (
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/multiweb/webfront"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// In is the set of dependencies for the admin server.
type In struct {
	fx.In

	Config Config
	Loader *webtenant.Loader

	// Gatherer is optional.  Without it, there is no /metrics route.
	Gatherer prometheus.Gatherer `optional:"true"`

	Logger *zap.Logger

	// ListenerMiddleware optionally decorates the admin listener.
	ListenerMiddleware []webfront.ListenerMiddleware `name:"admin" optional:"true"`

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

// New creates the admin router and binds its server to the fx.App lifecycle.  If the
// server exits its accept loop for any reason other than a graceful stop, the whole
// fx.App is shut down.
func New(in In) *mux.Router {
	logger := in.Logger.Named("admin")
	router := NewRouter(
		in.Config,
		Handlers{
			Loader:   in.Loader,
			Gatherer: in.Gatherer,
			Logger:   logger,
		},
		alice.New(AccessLog(logger)),
	)

	server := in.Config.NewServer(router, logger)
	in.Lifecycle.Append(fx.Hook{
		OnStart: OnStart(in.Config, server, in.ListenerMiddleware, ShutdownOnExit(in.Shutdowner)),
		OnStop:  server.Shutdown,
	})

	return router
}

// Module provides the admin router and forces its creation.
func Module() fx.Option {
	return fx.Module(
		"admin",
		fx.Provide(New),
		fx.Invoke(func(*mux.Router) {}),
	)
}
