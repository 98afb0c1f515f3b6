// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package webadmin is the optional operational HTTP server of a multiweb process.

It is an ordinary net/http server, unrelated to the front end ports, exposing the
loaded tenants, the published routes, prometheus metrics and pprof.
*/
package webadmin
