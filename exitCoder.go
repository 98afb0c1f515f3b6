// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import "errors"

const (
	// DefaultErrorExitCode is the exit code of a failed process when its error
	// carries no more specific code.
	DefaultErrorExitCode int = 1

	// ConfigurationExitCode is the exit code for a process that could not
	// read or validate its configuration.
	ConfigurationExitCode int = 2

	// TenantExitCode is the exit code for a check that found tenants which
	// could not be loaded.
	TenantExitCode int = 3
)

// ExitCoder is implemented by errors that determine the process exit code.
type ExitCoder interface {
	// ExitCode returns the process exit code for this error.
	ExitCode() int
}

// ConfigError is a configuration that could not be read or validated.
// Its exit code is ConfigurationExitCode.
type ConfigError struct {
	Err error
}

func (ce *ConfigError) Error() string {
	return ce.Err.Error()
}

func (ce *ConfigError) Unwrap() error {
	return ce.Err
}

func (ce *ConfigError) ExitCode() int {
	return ConfigurationExitCode
}

// TenantError holds the failures of tenants that could not be loaded.
// Its exit code is TenantExitCode.
type TenantError struct {
	Err error
}

func (te *TenantError) Error() string {
	return "not every tenant could be loaded: " + te.Err.Error()
}

func (te *TenantError) Unwrap() error {
	return te.Err
}

func (te *TenantError) ExitCode() int {
	return TenantExitCode
}

type codedError struct {
	error
	code int
}

func (ce codedError) ExitCode() int {
	return ce.code
}

func (ce codedError) Unwrap() error {
	return ce.error
}

// UseExitCode attaches an arbitrary exit code to err.  The result implements
// ExitCoder and unwraps to err.  A nil err panics right away, since a nil error
// has no exit code to carry.
func UseExitCode(err error, exitCode int) error {
	if err == nil {
		panic("cannot associate a nil error with an exit code")
	}

	return codedError{
		error: err,
		code:  exitCode,
	}
}

// ErrorCoder computes an exit code for errors that are not ExitCoders.  It is also
// called with a nil error, so it decides the exit code of a clean shutdown as well.
type ErrorCoder func(error) int

// ExitCodeFor returns the process exit code for err.  The first ExitCoder in err's
// chain wins, so a ConfigError or TenantError wrapped by fx or cobra still
// determines the code.  Otherwise coder is consulted when it is set, and without
// a coder any non-nil error exits with DefaultErrorExitCode and nil exits with 0.
func ExitCodeFor(err error, coder ErrorCoder) int {
	var ec ExitCoder
	switch {
	case errors.As(err, &ec):
		return ec.ExitCode()

	case coder != nil:
		return coder(err)

	case err != nil:
		return DefaultErrorExitCode

	default:
		return 0
	}
}
