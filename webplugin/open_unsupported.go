// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !darwin && !freebsd

package webplugin

// Supported reports whether Open can load Go plugins on this platform.
func Supported() bool { return false }

// Open always fails on this platform.  Packages can still be supplied in code
// through Symbols.
func Open(path string) (Archive, error) {
	return nil, &LoadError{Path: path, Err: ErrUnsupported}
}
