// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrNilViper is returned to the fx.App when the externally supplied Viper
// instance is nil.
var ErrNilViper = errors.New("the viper instance cannot be nil")

// Unmarshaler is the strategy used to unmarshal configuration into objects.
type Unmarshaler interface {
	// Unmarshal reads all configuration data into the given struct
	Unmarshal(value interface{}) error

	// UnmarshalKey reads configuration data from a key into the given struct
	UnmarshalKey(key string, value interface{}) error
}

// ViperUnmarshaler is the standard Unmarshaler.  It couples a Viper instance
// together with zero or more decoder options.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options is the optional slice of viper.DecoderConfigOptions passed to all
	// unmarshal calls
	Options []viper.DecoderConfigOption

	// Logger is the required logger to which informational messages are written
	Logger *zap.Logger
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value interface{}) error {
	vu.Logger.Debug("unmarshal", zap.String("type", fmt.Sprintf("%T", value)))
	return vu.Viper.Unmarshal(value, vu.Options...)
}

// UnmarshalKey implements Unmarshaler
func (vu ViperUnmarshaler) UnmarshalKey(key string, value interface{}) error {
	vu.Logger.Debug("unmarshal key", zap.String("key", key), zap.String("type", fmt.Sprintf("%T", value)))
	return vu.Viper.UnmarshalKey(key, value, vu.Options...)
}

// ViperUnmarshalerIn is the set of dependencies required to build a ViperUnmarshaler.
// The viper instance itself is supplied externally.
type ViperUnmarshalerIn struct {
	fx.In

	// Options is the optional slice of viper.DecoderConfigOption that will be
	// applied to every unmarshal or unmarshal key operation
	Options []viper.DecoderConfigOption `optional:"true"`

	// Logger is the optional logger for informational messages
	Logger *zap.Logger `optional:"true"`
}

// ForViper creates a ViperUnmarshaler backed by an externally supplied viper instance.
// The returned component is of type Unmarshaler.  DefaultDecodeHooks always applies
// first, followed by the options passed here and then any []viper.DecoderConfigOption
// component.
func ForViper(v *viper.Viper, o ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(ErrNilViper)
	}

	return fx.Provide(
		func(in ViperUnmarshalerIn) Unmarshaler {
			logger := in.Logger
			if logger == nil {
				logger = zap.NewNop()
			}

			options := append([]viper.DecoderConfigOption{DefaultDecodeHooks}, o...)
			return ViperUnmarshaler{
				Viper:   v,
				Options: append(options, in.Options...),
				Logger:  logger,
			}
		},
	)
}

// ProvideKey emits a component of type T unmarshaled from a configuration key.  If T
// has a Validate() error method, it is invoked after unmarshaling.
func ProvideKey[T any](key string) fx.Option {
	return fx.Provide(
		func(u Unmarshaler) (t T, err error) {
			err = u.UnmarshalKey(key, &t)
			if err == nil {
				err = validate(t)
			}

			if err != nil {
				err = fmt.Errorf("unable to unmarshal key [%s]: %w", key, err)
			}

			return
		},
	)
}

// Provide emits a component of type T unmarshaled from the entire configuration.  If T
// has a Validate() error method, it is invoked after unmarshaling.
func Provide[T any]() fx.Option {
	return fx.Provide(
		func(u Unmarshaler) (t T, err error) {
			err = u.Unmarshal(&t)
			if err == nil {
				err = validate(t)
			}

			return
		},
	)
}

func validate(v any) error {
	if vr, ok := v.(interface{ Validate() error }); ok {
		return vr.Validate()
	}

	return nil
}
