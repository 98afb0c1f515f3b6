// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package multiweb assembles a multi-tenant plugin web server with go.uber.org/fx.

A multiweb process listens on one or more ports.  Each port is assigned a tenant
package, a Go plugin whose manifest names the handler constructors it exports and
the paths each handler serves.  Every package is loaded into its own scope, and the
routes it publishes are only reachable through its port.  In global mode, every
tenant shares a single table instead.

This package holds the configuration, logging, and lifecycle wiring.  The pieces
themselves live in the web* subpackages:

  - webwire reads request lines and writes responses
  - webroute holds handlers, route descriptors, and routing tables
  - webplugin opens packages and discovers their handlers
  - webtenant loads packages into the routing registry
  - webfront accepts and serves connections on every port
  - webmetrics and webadmin expose what the process is doing
*/
package multiweb
