// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xmidt-org/multiweb"
)

const (
	applicationName = "multiweb"
	envPrefix       = "MULTIWEB"
)

// cli holds the state shared by every command
type cli struct {
	viper      *viper.Viper
	configFile string
	exitCode   int
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   applicationName,
		Short: "Multi-tenant plugin web server",
		Long: `multiweb serves one or more ports, each of which routes requests to the
handlers of the plugin package assigned to it.  Every package is loaded into
its own scope, so tenants never see each other's handlers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.readConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "configuration file (default is ./multiweb.yaml or /etc/multiweb/multiweb.yaml)")
	flags.IntSlice("port", nil, "front end ports, overriding server.ports")
	c.viper.BindPFlag("server.ports", flags.Lookup("port"))

	root.AddCommand(newCheckCommand(c))
	return root
}

func (c *cli) readConfig() error {
	c.viper.SetEnvPrefix(envPrefix)
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.viper.AutomaticEnv()

	if len(c.configFile) > 0 {
		c.viper.SetConfigFile(c.configFile)
	} else {
		c.viper.SetConfigName(applicationName)
		c.viper.AddConfigPath(".")
		c.viper.AddConfigPath("/etc/" + applicationName)
	}

	err := c.viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && len(c.configFile) == 0 {
		err = nil
	}

	if err != nil {
		return &multiweb.ConfigError{
			Err: fmt.Errorf("unable to read configuration: %w", err),
		}
	}

	return nil
}

func execute(args []string, stdout, stderr io.Writer) int {
	c := &cli{
		viper: viper.New(),
	}

	root := newRootCommand(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return multiweb.ExitCodeFor(err, nil)
	}

	return c.exitCode
}
