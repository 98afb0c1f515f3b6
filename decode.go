// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"encoding"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Exact sets the DecoderConfig.ErrorUnused flag, so that configuration keys with no
// corresponding field are an error.
func Exact(dc *mapstructure.DecoderConfig) {
	dc.ErrorUnused = true
}

// Merge takes any number of slices of decoder options and merges them
// into a single option, applied in order.
func Merge(opts ...[]viper.DecoderConfigOption) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		for _, group := range opts {
			for _, o := range group {
				o(dc)
			}
		}
	}
}

// DefaultDecodeHooks is a viper option that sets the decode hooks used for all
// multiweb configuration.  Durations are parsed from strings, comma-delimited strings
// become slices, and any type implementing encoding.TextUnmarshaler decodes itself.
// The last is how the front end strategy and the routing mode are read.
//
// ComposeDecodeHooks can still be used with this option as long as it comes after it.
func DefaultDecodeHooks(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		TextUnmarshalerHookFunc,
	)
}

// ComposeDecodeHooks adds more decode hook functions to mapstructure's DecoderConfig.  If
// there are already decode hooks, they are preserved and the given hooks are appended.
func ComposeDecodeHooks(fs ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		if dc.DecodeHook != nil {
			fs = append([]mapstructure.DecodeHookFunc{dc.DecodeHook}, fs...)
		}

		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(fs...)
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// TextUnmarshalerHookFunc is a mapstructure.DecodeHookFunc that honors the destination
// type's encoding.TextUnmarshaler implementation.  The src must be a string, or else
// no conversion is attempted.
//
// The to type is either a non-pointer type whose pointer implements encoding.TextUnmarshaler,
// such as webroute.Mode, or a pointer to such a type.  More than one level of indirection
// is not supported.
//
// In any case where this function does no conversion, it returns src and a nil error,
// which is the contract required by mapstructure.DecodeHookFunc.
func TextUnmarshalerHookFunc(_, to reflect.Type, src interface{}) (interface{}, error) {
	text, ok := src.(string)
	if !ok {
		return src, nil
	}

	switch {
	case to.Kind() != reflect.Ptr && reflect.PointerTo(to).Implements(textUnmarshalerType):
		ptr := reflect.New(to)
		err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		return ptr.Elem().Interface(), err

	case to.Kind() == reflect.Ptr && to.Elem().Kind() != reflect.Ptr && to.Implements(textUnmarshalerType):
		tu := reflect.New(to.Elem()).Interface().(encoding.TextUnmarshaler)
		err := tu.UnmarshalText([]byte(text))
		return tu, err

	default:
		return src, nil
	}
}
