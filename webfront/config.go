// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"errors"
	"fmt"
	"time"

	"github.com/xmidt-org/multiweb/webwire"
)

const (
	// DefaultWorkers is the size of each port's worker pool when not configured.
	DefaultWorkers = 32

	// DefaultLingerTimeout is how long unread input is drained after a response
	// when not configured.
	DefaultLingerTimeout = 250 * time.Millisecond
)

var (
	// ErrNoPorts indicates a front end configuration without any ports.
	ErrNoPorts = errors.New("at least one front end port is required")

	// ErrInvalidPort indicates a port outside the range 0-65535.  Port 0 binds
	// to an ephemeral port.
	ErrInvalidPort = errors.New("invalid front end port")

	// ErrDuplicatePort indicates a port that appears more than once.
	ErrDuplicatePort = errors.New("duplicate front end port")
)

// Config is the externally unmarshaled configuration for a Frontend.
type Config struct {
	// Host is the host or IP address each port binds on.  Empty means all interfaces.
	Host string

	// Ports are the ports to listen on.  Each port gets its own listener and worker pool.
	Ports []int

	// Strategy is how connections are scheduled onto workers.
	Strategy Strategy

	// Workers bounds the number of connections each port serves concurrently.
	// DefaultWorkers is used if nonpositive.
	Workers int

	// ReadBufferSize is the size of each read from a connection.
	ReadBufferSize int

	// MaxRequestLineBytes is the longest request line accepted.
	MaxRequestLineBytes int

	// ReadTimeout bounds the time spent reading a request line.  There is no limit by default.
	ReadTimeout time.Duration

	// WriteTimeout bounds the time spent writing a response.  There is no limit by default.
	WriteTimeout time.Duration

	// LingerTimeout bounds how long a connection's unread input is drained after its
	// response, so that the close does not reset the connection and truncate the
	// response for the client.  The connection keeps its worker for that long when
	// the client leaves its side open, which lowers throughput with few workers.
	// DefaultLingerTimeout is used if zero, and a negative value closes right away.
	LingerTimeout time.Duration

	// Welcome is the HTML payload for "/".  webwire.WelcomeBody is used if empty.
	Welcome string
}

// Validate checks the ports of this configuration.
func (c Config) Validate() error {
	if len(c.Ports) == 0 {
		return ErrNoPorts
	}

	seen := make(map[int]bool, len(c.Ports))
	for _, p := range c.Ports {
		switch {
		case p < 0 || p > 65535:
			return fmt.Errorf("%w: %d", ErrInvalidPort, p)
		case p > 0 && seen[p]:
			return fmt.Errorf("%w: %d", ErrDuplicatePort, p)
		}

		seen[p] = true
	}

	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return DefaultWorkers
}

func (c Config) lingerTimeout() time.Duration {
	if c.LingerTimeout == 0 {
		return DefaultLingerTimeout
	}

	return c.LingerTimeout
}

func (c Config) welcome() string {
	if len(c.Welcome) > 0 {
		return c.Welcome
	}

	return webwire.WelcomeBody
}
