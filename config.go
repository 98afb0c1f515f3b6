// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"errors"
	"fmt"

	"github.com/xmidt-org/multiweb/webfront"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/multierr"
)

var (
	// ErrNoPackage indicates a tenant assignment without a package path.
	ErrNoPackage = errors.New("a tenant requires a package")

	// ErrUnservedPort indicates a tenant assigned to a port the front end does not listen on.
	ErrUnservedPort = errors.New("tenant port is not a front end port")
)

// LoaderConfig tailors how tenant packages are loaded.
type LoaderConfig struct {
	// Extension is the required package extension.  webtenant.DefaultExtension is used if unset.
	Extension string

	// Concurrency is how many packages are opened at once.  webtenant.DefaultConcurrency
	// is used if unset.
	Concurrency int
}

// MetricsConfig tailors the prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metric namespace.  webmetrics.DefaultNamespace is used if unset.
	Namespace string
}

// Config is the externally unmarshaled configuration of a multiweb process.
// The log and admin keys are read separately.
type Config struct {
	Server webfront.Config

	// Mode is either tenant, the default, where each port has its own routes, or global,
	// where every tenant shares one table.
	Mode webroute.Mode

	// Tenants are the packages to load, each assigned to a port.
	Tenants []webtenant.Assignment

	// Builtins publishes the host's built-in handlers as a tenant of their own in
	// global mode.  In tenant mode the built-ins are only a fallback for constructors
	// a package does not export.
	Builtins bool

	Loader  LoaderConfig
	Metrics MetricsConfig
}

// Validate checks the front end configuration and every tenant assignment.
// Any error is a *ConfigError.
func (c Config) Validate() error {
	if err := c.validate(); err != nil {
		return &ConfigError{Err: err}
	}

	return nil
}

func (c Config) validate() (err error) {
	if err = c.Server.Validate(); err != nil {
		return
	}

	served := make(map[int]bool, len(c.Server.Ports))
	for _, p := range c.Server.Ports {
		served[p] = true
	}

	for i, t := range c.Tenants {
		switch {
		case len(t.Package) == 0:
			err = multierr.Append(err, fmt.Errorf("tenants[%d]: %w", i, ErrNoPackage))

		case c.Mode == webroute.ModeTenant && !served[t.Port]:
			err = multierr.Append(err, fmt.Errorf("tenants[%d] %s: %w: %d", i, t.Package, ErrUnservedPort, t.Port))
		}
	}

	return
}
