// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/xmidt-org/multiweb/webfront"
	"github.com/xmidt-org/multiweb/webmetrics"
	"github.com/xmidt-org/multiweb/webplugin"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// BuiltinSource is the package name reported for the host's built-in handlers.
const BuiltinSource = "builtin"

// NewRegistry creates the routing registry for the configured mode.
func NewRegistry(c Config) *webroute.Registry {
	return webroute.NewRegistry(c.Mode)
}

// NewMetrics creates the process metric registry along with the multiweb collectors.
func NewMetrics(c Config) (*webmetrics.Metrics, *prometheus.Registry, error) {
	var (
		m = webmetrics.New(c.Metrics.Namespace)
		r = prometheus.NewRegistry()
	)

	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m, r, m.Register(r)
}

// LoaderIn is the set of dependencies for a tenant loader.
type LoaderIn struct {
	fx.In

	Config   Config
	Registry *webroute.Registry
	Metrics  *webmetrics.Metrics
	Logger   *zap.Logger

	// Host is the optional archive of built-in symbols.
	Host webplugin.Archive `name:"host" optional:"true"`

	// Opener optionally replaces how packages are opened.
	Opener webtenant.Opener `optional:"true"`
}

// NewLoader creates the tenant loader.
func NewLoader(in LoaderIn) *webtenant.Loader {
	return webtenant.NewLoader(
		in.Registry,
		webtenant.WithHost(in.Host),
		webtenant.WithOpener(in.Opener),
		webtenant.WithLogger(in.Logger.Named("tenant")),
		webtenant.WithExtension(in.Config.Loader.Extension),
		webtenant.WithConcurrency(in.Config.Loader.Concurrency),
		webtenant.WithObservers(in.Metrics.ObserveTenant),
	)
}

// FrontendIn is the set of dependencies for the front end.
type FrontendIn struct {
	fx.In

	Config   Config
	Registry *webroute.Registry
	Metrics  *webmetrics.Metrics
	Prom     *prometheus.Registry
	Logger   *zap.Logger

	// ListenerMiddleware optionally decorates each front end listener.
	ListenerMiddleware []webfront.ListenerMiddleware `name:"frontend" optional:"true"`

	// Observers are optional additional connection observers.
	Observers []webfront.Observer `group:"frontend"`
}

// NewFrontend creates the front end and registers its connection gauge.
func NewFrontend(in FrontendIn) (*webfront.Frontend, error) {
	f, err := webfront.New(
		in.Config.Server,
		in.Registry,
		webfront.WithLogger(in.Logger.Named("frontend")),
		webfront.WithListenerMiddleware(in.ListenerMiddleware...),
		webfront.WithObservers(in.Metrics.ObserveRequest),
		webfront.WithObservers(in.Observers...),
	)

	if err == nil {
		err = webmetrics.RegisterActive(in.Prom, in.Config.Metrics.Namespace, f)
	}

	return f, err
}

// LoadTenants loads the built-ins, when enabled in global mode, followed by every
// configured tenant.  Tenant failures are logged and otherwise ignored.
func LoadTenants(ctx context.Context, c Config, host webplugin.Archive, l *webtenant.Loader, logger *zap.Logger) error {
	if c.Builtins && host != nil && c.Mode == webroute.ModeGlobal {
		if err := l.LoadArchive(ctx, BuiltinSource, host, 0); err != nil {
			logger.Error("unable to load the built-in handlers", zap.Error(err))
		}
	}

	err := l.LoadAll(ctx, c.Tenants)
	if err != nil {
		logger.Warn("not every tenant could be loaded", zap.Error(err))
	}

	return err
}

// RunIn is the set of dependencies for binding multiweb to the application lifecycle.
type RunIn struct {
	fx.In

	Config   Config
	Loader   *webtenant.Loader
	Frontend *webfront.Frontend
	Logger   *zap.Logger
	Host     webplugin.Archive `name:"host" optional:"true"`

	Lifecycle fx.Lifecycle
}

// Run loads the tenants and then starts the front end when the application starts,
// and stops the front end when the application stops.
func Run(in RunIn) {
	in.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// a tenant that fails to load leaves its port serving not-found responses,
			// so startup continues and the failures are only logged
			_ = LoadTenants(ctx, in.Config, in.Host, in.Loader, in.Logger)
			return in.Frontend.Start(ctx)
		},
		OnStop: in.Frontend.Stop,
	})
}

// Module provides every multiweb component except the configuration and the logger,
// and binds the front end to the application lifecycle.  Config is usually provided
// with Provide[Config]().
func Module() fx.Option {
	return fx.Module(
		"multiweb",
		fx.Provide(
			NewRegistry,
			NewMetrics,
			func(r *prometheus.Registry) prometheus.Gatherer {
				return r
			},
			NewLoader,
			NewFrontend,
		),
		fx.Invoke(Run),
	)
}
