// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webwire

import (
	"errors"
	"fmt"
)

// ErrPeerClosed indicates that the peer closed its side of the connection
// before sending a single byte.  Connections that end this way are closed
// without dispatching anything.
var ErrPeerClosed = errors.New("peer closed the connection without sending a request")

// ParseError indicates a malformed or incomplete request line.  The connection
// that produced it is closed without a response.
type ParseError struct {
	// Line is the offending line, possibly truncated.
	Line string

	// Reason describes what was wrong with Line.
	Reason string
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("invalid request line %q: %s", pe.Line, pe.Reason)
}

// TransportError is an I/O failure on a connection.  There are no retries.
type TransportError struct {
	// Op is either "read" or "write".
	Op  string
	Err error
}

func (te *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %s", te.Op, te.Err)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}
