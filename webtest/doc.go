// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package webtest has testing utilities for multiweb front ends, tenants and fx wiring.
package webtest
