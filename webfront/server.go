// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webwire"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxAcceptDelay = time.Second

	// lingerBytes bounds how much unread input is drained after the response
	lingerBytes = 64 * 1024
)

// Event describes one finished connection.
type Event struct {
	// Port is the destination port the connection was routed by.
	Port int

	Remote string

	// Method and Path are empty unless a request line was parsed.
	Method string
	Path   string

	Outcome  Outcome
	Duration time.Duration

	// Err is set for the error outcomes.
	Err error
}

// Observer receives an Event for every connection a front end closes.
type Observer func(Event)

// StateObserver receives every state transition of every connection.
type StateObserver func(net.Conn, State)

// server is the accept loop and worker pool for one port
type server struct {
	listener net.Listener
	port     int
	config   Config
	resolver webroute.Resolver
	logger   *zap.Logger
	active   *atomic.Int64

	observers      []Observer
	stateObservers []StateObserver

	closing atomic.Bool
	done    chan struct{}
	exitErr error

	lock  sync.Mutex
	conns map[net.Conn]struct{}
}

func (s *server) serve() {
	defer close(s.done)

	var err error
	switch s.config.Strategy {
	case Pool:
		var g errgroup.Group
		for i := 0; i < s.config.workers(); i++ {
			g.Go(func() error {
				return s.accept(s.serveConn)
			})
		}

		err = g.Wait()

	default:
		var g errgroup.Group
		g.SetLimit(s.config.workers())

		// g.Go blocks while the pool is full, which leaves new connections in the backlog
		err = s.accept(func(c net.Conn) {
			g.Go(func() error {
				s.serveConn(c)
				return nil
			})
		})

		g.Wait()
	}

	if err != nil {
		s.logger.Error("front end accept loop exited", zap.Error(err))
		s.exitErr = err
	}
}

func (s *server) accept(handle func(net.Conn)) error {
	var delay time.Duration
	for {
		c, err := s.listener.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			var te interface{ Temporary() bool }
			if errors.As(err, &te) && te.Temporary() {
				if delay == 0 {
					delay = 5 * time.Millisecond
				} else {
					delay *= 2
				}

				if delay > maxAcceptDelay {
					delay = maxAcceptDelay
				}

				s.logger.Warn("accept failed, retrying", zap.Error(err), zap.Duration("delay", delay))
				time.Sleep(delay)
				continue
			}

			return err
		}

		delay = 0
		handle(c)
	}
}

func (s *server) transition(c net.Conn, st State) {
	for _, f := range s.stateObservers {
		f(c, st)
	}
}

func (s *server) track(c net.Conn, add bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if add {
		s.conns[c] = struct{}{}
		s.active.Add(1)
	} else {
		delete(s.conns, c)
		s.active.Add(-1)
	}
}

// closeConns forcibly closes whatever connections are still being served
func (s *server) closeConns() {
	s.lock.Lock()
	defer s.lock.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

func (s *server) serveConn(c net.Conn) {
	var (
		start = time.Now()
		port  = destinationPort(c.LocalAddr(), s.port)
		w     = webwire.NewResponseWriter(c, port)
		e     = Event{Port: port, Remote: addrString(c.RemoteAddr())}
	)

	s.track(c, true)
	s.transition(c, Accepted)
	defer func() {
		linger(c, s.config.lingerTimeout())
		w.Close()
		s.track(c, false)
		s.transition(c, Closed)
		e.Duration = time.Since(start)
		for _, f := range s.observers {
			f(e)
		}
	}()

	s.transition(c, Reading)
	if s.config.ReadTimeout > 0 {
		if err := c.SetReadDeadline(start.Add(s.config.ReadTimeout)); err != nil {
			e.Outcome, e.Err = OutcomeTransportError, &webwire.TransportError{Op: "read", Err: err}
			s.logger.Debug("unable to set the read deadline", zap.Int("port", port), zap.Error(err))
			return
		}
	}

	r, err := webwire.ReadRequest(c, webwire.ReadOptions{
		BufferSize:   s.config.ReadBufferSize,
		MaxLineBytes: s.config.MaxRequestLineBytes,
		LocalPort:    port,
	})

	if err != nil {
		e.Outcome, e.Err = readOutcome(err), err
		if e.Outcome != OutcomePeerClosed {
			s.logger.Debug("closing connection without a response", zap.Int("port", port), zap.Error(err))
		}

		return
	}

	e.Method, e.Path = r.Method, r.Path
	s.transition(c, Dispatched)

	var h webroute.Handler
	switch {
	case r.Path == "/":
		e.Outcome = OutcomeWelcome

	default:
		h, err = s.resolver.Resolve(port, r.Path)
		if err != nil {
			e.Outcome = OutcomeMiss
		} else {
			e.Outcome = OutcomeHit
		}
	}

	s.transition(c, Responding)
	if s.config.WriteTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
			e.Outcome, e.Err = OutcomeTransportError, &webwire.TransportError{Op: "write", Err: err}
			s.logger.Debug("unable to set the write deadline", zap.Int("port", port), zap.Error(err))
			return
		}
	}

	switch e.Outcome {
	case OutcomeWelcome:
		webwire.WriteHTML(w, s.config.welcome())

	case OutcomeMiss:
		webwire.WriteHTML(w, webwire.NotFoundBody)

	case OutcomeHit:
		if err := dispatch(h, r, w); err != nil {
			e.Outcome, e.Err = OutcomePanic, err
			s.logger.Error(
				"handler panicked",
				zap.Int("port", port),
				zap.String("method", r.Method),
				zap.String("path", r.Path),
				zap.Error(err),
			)

			return
		}
	}

	if err := w.Err(); err != nil {
		e.Outcome, e.Err = OutcomeTransportError, err
		s.logger.Debug("unable to write response", zap.Int("port", port), zap.Error(err))
	}
}

// linger half-closes a TCP connection and discards what the peer still sends,
// for at most timeout.  The worker stays busy while it lingers.  Without a read
// deadline nothing is drained, since the peer could hold the worker indefinitely.
func linger(c net.Conn, timeout time.Duration) {
	type closeWriter interface {
		CloseWrite() error
	}

	cw, ok := c.(closeWriter)
	if timeout <= 0 || !ok || cw.CloseWrite() != nil {
		return
	}

	if c.SetReadDeadline(time.Now().Add(timeout)) != nil {
		return
	}

	// whatever is left unread is dropped when the connection closes
	_, _ = io.CopyN(io.Discard, c, lingerBytes)
}

func dispatch(h webroute.Handler, r *webwire.Request, w webwire.ResponseWriter) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()

	webroute.Dispatch(h, r, w)
	return
}

func readOutcome(err error) Outcome {
	var pe *webwire.ParseError
	switch {
	case errors.Is(err, webwire.ErrPeerClosed):
		return OutcomePeerClosed
	case errors.As(err, &pe):
		return OutcomeParseError
	default:
		return OutcomeTransportError
	}
}

// destinationPort is the local port of a connection, falling back to def
func destinationPort(a net.Addr, def int) int {
	if ta, ok := a.(*net.TCPAddr); ok {
		return ta.Port
	}

	if a != nil {
		if _, p, err := net.SplitHostPort(a.String()); err == nil {
			if port, err := strconv.Atoi(p); err == nil {
				return port
			}
		}
	}

	return def
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}

	return a.String()
}
