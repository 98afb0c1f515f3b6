// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import "fmt"

// State is a step in the life of one front end connection.  A connection moves
// strictly forward through Accepted, Reading, Dispatched, Responding and Closed,
// although it may jump straight to Closed.
type State int

const (
	Accepted State = iota
	Reading
	Dispatched
	Responding
	Closed
)

func (s State) String() string {
	switch s {
	case Accepted:
		return "ACCEPTED"
	case Reading:
		return "READING"
	case Dispatched:
		return "DISPATCHED"
	case Responding:
		return "RESPONDING"
	case Closed:
		return "CLOSED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome classifies how a connection ended.
type Outcome string

const (
	// OutcomeWelcome is a request for "/", answered with the welcome page.
	OutcomeWelcome Outcome = "welcome"

	// OutcomeHit is a request dispatched to a handler.
	OutcomeHit Outcome = "hit"

	// OutcomeMiss is a request with no handler, answered with the not found page.
	OutcomeMiss Outcome = "miss"

	// OutcomePeerClosed is a connection closed by the peer before a request arrived.
	OutcomePeerClosed Outcome = "peer_closed"

	// OutcomeParseError is a connection with a malformed request line.
	OutcomeParseError Outcome = "parse_error"

	// OutcomeTransportError is a connection that failed while reading or writing.
	OutcomeTransportError Outcome = "transport_error"

	// OutcomePanic is a request whose handler panicked.
	OutcomePanic Outcome = "panic"
)
