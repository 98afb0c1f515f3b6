// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webwire

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
)

const (
	// DefaultReadBufferSize is the size of each chunk read from a connection.
	DefaultReadBufferSize = 1024

	// DefaultMaxRequestLineBytes bounds how much is read while waiting for a line terminator.
	DefaultMaxRequestLineBytes = 8192

	// maxErrorLine bounds how much of a bad line ends up in a ParseError
	maxErrorLine = 64
)

var crlf = []byte("\r\n")

// Request is the parsed form of a request line plus the optional Host line.
// A Request is never modified after ReadRequest returns it.
type Request struct {
	// Method is the request method, e.g. GET.  It is always a nonempty run of
	// uppercase ASCII letters.
	Method string

	// Path is the request target exactly as sent, including any query.
	Path string

	// Host is the host portion of a Host line.  It is only set when the complete
	// Host line arrived in the same read that completed the request line, so unlike
	// Method and Path it depends on how the peer's bytes were segmented.
	Host string

	// Port is the port from the Host line.  When no Host line was seen or it carried
	// no port, this is the destination port of the connection.  Routing never uses
	// this field, so segmentation does not affect which handler is chosen.
	Port int
}

// ReadOptions tunes ReadRequest.  The zero value is usable.
type ReadOptions struct {
	// BufferSize is the size of each read.  DefaultReadBufferSize is used if nonpositive.
	BufferSize int

	// MaxLineBytes is the longest request line accepted.  DefaultMaxRequestLineBytes
	// is used if nonpositive.
	MaxLineBytes int

	// LocalPort is the destination port of the connection, used as Request.Port
	// when there is no usable Host line.
	LocalPort int
}

func (ro ReadOptions) bufferSize() int {
	if ro.BufferSize > 0 {
		return ro.BufferSize
	}

	return DefaultReadBufferSize
}

func (ro ReadOptions) maxLineBytes() int {
	if ro.MaxLineBytes > 0 {
		return ro.MaxLineBytes
	}

	return DefaultMaxRequestLineBytes
}

// ReadRequest reads from r until the first CRLF, then parses the request line.
// Reads are repeated as needed, so the Method and Path of a request line split
// across any number of reads are the same as those of one that arrives all at once.
//
// Whatever follows the request line in the same buffer is discarded, with the
// exception of a complete Host line.  No further reads happen once a request line
// is available.
//
// The returned error is ErrPeerClosed if r ends before yielding any bytes,
// a *ParseError if the line is malformed, too long, or cut off by the end of the
// stream, and a *TransportError for any other read failure.
func ReadRequest(r io.Reader, o ReadOptions) (*Request, error) {
	var (
		maxLine = o.maxLineBytes()
		chunk   = make([]byte, o.bufferSize())
		buf     []byte
	)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if i := bytes.Index(buf, crlf); i >= 0 {
				if i > maxLine {
					return nil, newParseError(buf[:i], "request line too long")
				}

				return parseRequest(buf[:i], buf[i+len(crlf):], o.LocalPort)
			}

			// a trailing CR may still be completed by the next read
			if pending := len(bytes.TrimSuffix(buf, crlf[:1])); pending > maxLine {
				return nil, newParseError(buf, "request line too long")
			}
		}

		switch {
		case errors.Is(err, io.EOF) && len(buf) == 0:
			return nil, ErrPeerClosed

		case errors.Is(err, io.EOF):
			return nil, newParseError(buf, "connection closed before the end of the request line")

		case err != nil:
			return nil, &TransportError{Op: "read", Err: err}
		}
	}
}

func newParseError(line []byte, reason string) *ParseError {
	if len(line) > maxErrorLine {
		line = line[:maxErrorLine]
	}

	return &ParseError{
		Line:   string(line),
		Reason: reason,
	}
}

func parseRequest(line, rest []byte, localPort int) (*Request, error) {
	parts := strings.Split(string(line), " ")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, newParseError(line, "expected METHOD SP PATH [SP VERSION]")
	}

	if !isMethod(parts[0]) {
		return nil, newParseError(line, "invalid method")
	}

	if !strings.HasPrefix(parts[1], "/") {
		return nil, newParseError(line, "path must begin with '/'")
	}

	request := &Request{
		Method: parts[0],
		Path:   parts[1],
		Port:   localPort,
	}

	if host, port, ok := findHost(rest); ok {
		request.Host = host
		if port > 0 {
			request.Port = port
		}
	}

	return request, nil
}

func isMethod(v string) bool {
	if len(v) == 0 {
		return false
	}

	for i := 0; i < len(v); i++ {
		if v[i] < 'A' || v[i] > 'Z' {
			return false
		}
	}

	return true
}

// findHost looks through the complete lines in rest for a Host line.
// Scanning stops at the blank line ending the header block.
func findHost(rest []byte) (host string, port int, ok bool) {
	for {
		i := bytes.Index(rest, crlf)
		if i <= 0 {
			// either no complete line is left or this is the blank line
			return
		}

		line := string(rest[:i])
		rest = rest[i+len(crlf):]

		name, value, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(name), "host") {
			continue
		}

		value = strings.TrimSpace(value)
		h, p, err := net.SplitHostPort(value)
		if err != nil {
			// no port on the Host line
			return value, 0, true
		}

		port, err = strconv.Atoi(p)
		if err != nil || port < 0 || port > 65535 {
			port = 0
		}

		return h, port, true
	}
}
