// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webwire

import (
	"io"
	"net"
	"sync"
)

const (
	// TextPlain is the content type used by WriteText.
	TextPlain = "text/plain"

	// TextHTML is the content type used by WriteHTML.
	TextHTML = "text/html"

	// WelcomeBody is the payload served for "/" on every port.
	WelcomeBody = "<h1>Welcome - multiweb</h1>"

	// NotFoundBody is the payload served when no handler matches a path.
	// It is sent with a 200 status line like every other response.
	NotFoundBody = "<h1>404 Not Found</h1>"

	preamble = "HTTP/1.1 200 OK\r\nContent-Type: "
)

// ResponseWriter is the sink handlers write their output to.  Every write
// reaches the client before Write returns.
type ResponseWriter interface {
	io.Writer
	io.StringWriter

	// Port is the destination port of the connection being answered.
	Port() int

	// Close closes the underlying connection.  Closing more than once is allowed.
	Close() error
}

// ConnWriter is the ResponseWriter backed by a net.Conn.  A ConnWriter owns
// its connection for the duration of one exchange.
type ConnWriter struct {
	conn      net.Conn
	port      int
	closeOnce sync.Once
	closeErr  error

	lock    sync.Mutex
	written int64
	err     error
}

var _ ResponseWriter = (*ConnWriter)(nil)

// NewResponseWriter wraps a connection.  The port is normally the local port
// the connection was accepted on.
func NewResponseWriter(conn net.Conn, port int) *ConnWriter {
	return &ConnWriter{
		conn: conn,
		port: port,
	}
}

// Write sends p to the client.  Failures are returned as *TransportError, and the
// first one is remembered and returned by Err.
func (cw *ConnWriter) Write(p []byte) (int, error) {
	n, err := cw.conn.Write(p)

	cw.lock.Lock()
	defer cw.lock.Unlock()
	cw.written += int64(n)
	if err != nil {
		err = &TransportError{Op: "write", Err: err}
		if cw.err == nil {
			cw.err = err
		}
	}

	return n, err
}

// WriteString is the string version of Write.
func (cw *ConnWriter) WriteString(s string) (int, error) {
	return cw.Write([]byte(s))
}

// Port returns the destination port of this exchange.
func (cw *ConnWriter) Port() int {
	return cw.port
}

// Close closes the connection exactly once.
func (cw *ConnWriter) Close() error {
	cw.closeOnce.Do(func() {
		cw.closeErr = cw.conn.Close()
	})

	return cw.closeErr
}

// Written reports how many bytes have reached the connection.
func (cw *ConnWriter) Written() int64 {
	cw.lock.Lock()
	defer cw.lock.Unlock()
	return cw.written
}

// Err returns the first write failure, if any.
func (cw *ConnWriter) Err() error {
	cw.lock.Lock()
	defer cw.lock.Unlock()
	return cw.err
}

// WriteResponse writes the fixed 200 preamble with the given content type,
// then body followed by a newline, in a single write.
func WriteResponse(w io.Writer, contentType, body string) error {
	_, err := io.WriteString(w, preamble+contentType+"\r\n\r\n"+body+"\n")
	return err
}

// WriteText writes a text/plain response.
func WriteText(w io.Writer, body string) error {
	return WriteResponse(w, TextPlain, body)
}

// WriteHTML writes a text/html response.
func WriteHTML(w io.Writer, body string) error {
	return WriteResponse(w, TextHTML, body)
}
