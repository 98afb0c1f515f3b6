// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package multiweb

import (
	"github.com/xmidt-org/multiweb/webplugin"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webwire"
	"go.uber.org/fx"
)

// HostName is the component name of the host's built-in archive.
const HostName = "host"

// TestHandlerSymbol is the constructor symbol of the built-in TestHandler.
const TestHandlerSymbol = "TestHandler"

const builtinManifest = `
handlers:
  - type: TestHandler
    paths: [/test]
`

// TestHandler is the built-in handler served at /test.  It answers GET and POST
// differently and treats every other method as a POST.
type TestHandler struct{}

func (TestHandler) ServeRequest(r *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, r.Method+" response from multiweb TestHandler")
}

func (TestHandler) ServeGet(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, "GET response from multiweb TestHandler")
}

func (TestHandler) ServePost(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, "POST response from multiweb TestHandler")
}

// NewTestHandler is the constructor exported under TestHandlerSymbol.
func NewTestHandler() webroute.Handler {
	return TestHandler{}
}

// Builtins returns the host archive.  Packages may name any of its constructors in
// their manifests without exporting them, and in global mode its own manifest can
// be published as a tenant.
func Builtins() webplugin.Symbols {
	return webplugin.Symbols{
		webplugin.ManifestSymbol: builtinManifest,
		TestHandlerSymbol:        NewTestHandler,
	}
}

// ProvideHost makes an archive the host component that every tenant scope falls back to.
func ProvideHost(host webplugin.Archive) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name: HostName,
			Target: func() webplugin.Archive {
				return host
			},
		},
	)
}
