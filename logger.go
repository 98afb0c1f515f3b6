// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// LogConfig is the externally unmarshaled logging configuration.
type LogConfig struct {
	// Level is the minimum level logged.  The default is info.
	Level zapcore.Level

	// Format is either FormatJSON, the default, or FormatConsole.
	Format string

	// OutputPaths are the zap sinks for log output.  The default is stderr.
	OutputPaths []string

	// Development enables zap's development mode, which includes stacktraces on warnings.
	Development bool
}

// NewLogger builds the process logger from configuration.
func NewLogger(lc LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch lc.Format {
	case "", FormatJSON:
		zc = zap.NewProductionConfig()

	case FormatConsole:
		zc = zap.NewDevelopmentConfig()

	default:
		return nil, fmt.Errorf("invalid log format: %q", lc.Format)
	}

	zc.Level = zap.NewAtomicLevelAt(lc.Level)
	zc.Development = lc.Development
	if len(lc.OutputPaths) > 0 {
		zc.OutputPaths = append([]string{}, lc.OutputPaths...)
	}

	return zc.Build()
}

// Logger makes l the unnamed *zap.Logger component and routes fx's own
// container events through it.
func Logger(l *zap.Logger) fx.Option {
	return fx.Options(
		fx.Supply(l),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
}

// TestLogger uses Logger to establish a *testing.T or *testing.B as the
// sink for both fx and multiweb logging.
func TestLogger(t zaptest.TestingT) fx.Option {
	return Logger(zaptest.NewLogger(t))
}
