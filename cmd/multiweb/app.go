// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/xmidt-org/multiweb"
	"github.com/xmidt-org/multiweb/webadmin"
	"go.uber.org/dig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// newLogger reads the log key directly, since the logger is needed before the fx.App exists
func (c *cli) newLogger() (*zap.Logger, error) {
	var lc multiweb.LogConfig
	if err := c.viper.UnmarshalKey("log", &lc, multiweb.DefaultDecodeHooks); err != nil {
		return nil, err
	}

	return multiweb.NewLogger(lc)
}

// options are the components common to every command
func (c *cli) options(logger *zap.Logger) []fx.Option {
	return []fx.Option{
		multiweb.Logger(logger),
		multiweb.ForViper(c.viper),
		multiweb.Provide[multiweb.Config](),
		multiweb.ProvideHost(multiweb.Builtins()),
	}
}

// run starts an fx.App and blocks until it is shut down, recording the exit code
func (c *cli) run(ctx context.Context, logger *zap.Logger, o ...fx.Option) error {
	app := fx.New(append(c.options(logger), o...)...)
	if err := app.Err(); err != nil {
		return &multiweb.ConfigError{
			Err: fmt.Errorf("unable to start %s: %w", applicationName, dig.RootCause(err)),
		}
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("unable to start %s: %w", applicationName, dig.RootCause(err))
	}

	signal := <-app.Wait()
	c.exitCode = signal.ExitCode

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	return app.Stop(stopCtx)
}

// serve runs the front end, and the admin server when admin is configured, until
// the process is signaled.
func (c *cli) serve(ctx context.Context) error {
	logger, err := c.newLogger()
	if err != nil {
		return &multiweb.ConfigError{Err: err}
	}

	defer logger.Sync()
	return c.run(
		ctx,
		logger,
		multiweb.Module(),
		multiweb.If(c.viper.IsSet("admin")).Then(
			multiweb.ProvideKey[webadmin.Config]("admin"),
			webadmin.Module(),
		),
	)
}
