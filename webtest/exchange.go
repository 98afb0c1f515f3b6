// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webtest

import (
	"io"
	"net"
	"time"
)

// DefaultExchangeTimeout bounds an entire Exchange.
const DefaultExchangeTimeout = 5 * time.Second

// Exchange dials a front end, writes each chunk with a separate write, and returns
// everything the front end sends back before it closes the connection.  A short
// pause between chunks makes it likely that each one arrives in its own read.
func Exchange(addr net.Addr, chunks ...string) (string, error) {
	c, err := net.DialTimeout(addr.Network(), addr.String(), DefaultExchangeTimeout)
	if err != nil {
		return "", err
	}

	defer c.Close()
	c.SetDeadline(time.Now().Add(DefaultExchangeTimeout))
	for i, chunk := range chunks {
		if i > 0 {
			time.Sleep(10 * time.Millisecond)
		}

		if _, err := io.WriteString(c, chunk); err != nil {
			return "", err
		}
	}

	response, err := io.ReadAll(c)
	return string(response), err
}
