// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webplugin

import (
	"strings"

	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webwire"
)

// aboutHandler stands in for a handler type that several packages define
// under the same name
type aboutHandler struct {
	tenant string
}

func (ah *aboutHandler) ServeRequest(_ *webwire.Request, w webwire.ResponseWriter) {
	w.WriteString("about " + ah.tenant)
}

// routedHandler carries its own route
type routedHandler struct{}

func (routedHandler) ServeRequest(*webwire.Request, webwire.ResponseWriter) {}

func (routedHandler) Route() webroute.Descriptor {
	return webroute.Descriptor{Paths: []string{"/routed"}, Method: "post"}
}

// notAHandler has no ServeRequest
type notAHandler struct{}

// packageSymbols builds an in-memory package whose AboutHandler writes tenant
func packageSymbols(tenant, manifest string) Symbols {
	return Symbols{
		ManifestSymbol: manifest,
		"AboutHandler": func() webroute.Handler {
			return &aboutHandler{tenant: tenant}
		},
	}
}

// recorder is a webwire.ResponseWriter that buffers output
type recorder struct {
	strings.Builder
}

func (r *recorder) Port() int { return 0 }

func (r *recorder) Close() error { return nil }
