// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package webwire implements the minimal line-based framing spoken by multiweb front ends.

Only the request line and an optional Host line are understood.  Every response is a
fixed HTTP/1.1 200 preamble followed by a payload, and every connection is closed after
a single exchange.
*/
package webwire
