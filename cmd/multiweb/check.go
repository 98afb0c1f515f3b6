// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xmidt-org/multiweb"
	"github.com/xmidt-org/multiweb/webplugin"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newCheckCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every configured tenant, print its routes, and exit",
		Long: `check loads the configured tenants exactly as the server would, without
binding any port, and prints the routes each tenant publishes.  The exit code is
nonzero if any tenant failed to load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := c.newLogger()
			if err != nil {
				return &multiweb.ConfigError{Err: err}
			}

			defer logger.Sync()
			return c.run(
				cmd.Context(),
				logger,
				fx.Provide(
					multiweb.NewRegistry,
					multiweb.NewMetrics,
					multiweb.NewLoader,
				),
				fx.Invoke(func(in checkIn) {
					in.Lifecycle.Append(fx.StartHook(func() {
						go multiweb.ShutdownWhenDone(
							context.Background(),
							in.Shutdowner,
							nil,
							func(ctx context.Context) error {
								return check(ctx, in, cmd.OutOrStdout())
							},
						)
					}))
				}),
			)
		},
	}
}

type checkIn struct {
	fx.In

	Config multiweb.Config
	Loader *webtenant.Loader
	Logger *zap.Logger
	Host   webplugin.Archive `name:"host" optional:"true"`

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
}

func check(ctx context.Context, in checkIn, out io.Writer) error {
	loadErr := multiweb.LoadTenants(ctx, in.Config, in.Host, in.Loader, in.Logger)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tPATH\tMETHOD\tHANDLER\tSOURCE")

	registry := in.Loader.Registry()
	tables := make(map[int]*webroute.Table)
	if registry.Mode() == webroute.ModeGlobal {
		tables[0] = registry.Global()
	} else {
		for _, port := range registry.Ports() {
			tables[port], _ = registry.Table(port)
		}
	}

	ports := make([]int, 0, len(tables))
	for port := range tables {
		ports = append(ports, port)
	}

	sort.Ints(ports)
	for _, port := range ports {
		for _, r := range tables[port].Routes() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%T\t%s\n", port, r.Path, r.Method, r.Handler, r.Source)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if loadErr != nil {
		return &multiweb.TenantError{Err: loadErr}
	}

	return nil
}
