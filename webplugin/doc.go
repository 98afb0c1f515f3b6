// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package webplugin loads handler packages into isolation scopes and discovers
their routes.

A package is an Archive of named symbols, normally a Go plugin built with
-buildmode=plugin.  Each loaded package gets its own Scope, and every symbol lookup
made while discovering that package goes through that Scope explicitly: first the
package's own symbols, then the host's built-in symbols.  Handler instances are
constructed per Scope, so two packages that both export an AboutHandler never share
or shadow each other's instances.

Routes are declared in a YAML manifest exported by the package under the symbol
named by ManifestSymbol:

	handlers:
	  - type: NewAboutHandler
	    paths: [/about, /about-netty]
	    method: GET
	  - type: NewRegisterHandler
	    paths: [/register]
	    method: POST

Each type names a zero-argument constructor whose result implements webroute.Handler.
*/
package webplugin
