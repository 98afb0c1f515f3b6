// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtest"
	"github.com/xmidt-org/multiweb/webwire"
	"go.uber.org/zap/zaptest"
)

type temporaryError struct{}

func (temporaryError) Error() string   { return "temporary" }
func (temporaryError) Temporary() bool { return true }

type ServerSuite struct {
	suite.Suite

	events *eventRecorder
	states *stateRecorder
}

func (suite *ServerSuite) SetupTest() {
	suite.events = newEventRecorder()
	suite.states = new(stateRecorder)
}

func (suite *ServerSuite) newServer(l net.Listener, r webroute.Resolver) *server {
	return &server{
		listener: l,
		port:     8080,
		resolver: r,
		logger:   zaptest.NewLogger(suite.T()),
		active:   new(atomic.Int64),
		observers: []Observer{
			suite.events.observe,
		},
		stateObservers: []StateObserver{
			func(c net.Conn, s State) { suite.states.observe(c, s) },
		},
		done:  make(chan struct{}),
		conns: make(map[net.Conn]struct{}),
	}
}

// exchange serves one connection over a pipe, returning the response and the event
func (suite *ServerSuite) exchange(s *server, request string) (string, Event) {
	client, conn := net.Pipe()
	defer client.Close()

	go s.serveConn(conn)
	if len(request) > 0 {
		_, err := io.WriteString(client, request)
		suite.Require().NoError(err)
	} else {
		client.Close()
	}

	response, _ := io.ReadAll(client)
	return string(response), <-suite.events.ch
}

func (suite *ServerSuite) resolver() webroute.Resolver {
	return newTable(map[string]webroute.Handler{
		"/doc":   document{name: "doc"},
		"/panic": panicky{},
	})
}

func (suite *ServerSuite) TestWelcome() {
	s := suite.newServer(nil, suite.resolver())
	response, e := suite.exchange(s, "GET / HTTP/1.1\r\n\r\n")

	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n"+webwire.WelcomeBody+"\n", response)
	suite.Equal(OutcomeWelcome, e.Outcome)
	suite.Equal(8080, e.Port)
	suite.Equal("GET", e.Method)
	suite.Equal("/", e.Path)
	suite.NoError(e.Err)
	suite.Equal(
		[]State{Accepted, Reading, Dispatched, Responding, Closed},
		suite.states.get(),
	)
}

func (suite *ServerSuite) TestCustomWelcome() {
	s := suite.newServer(nil, suite.resolver())
	s.config.Welcome = "<p>custom</p>"
	response, _ := suite.exchange(s, "GET / HTTP/1.1\r\n")
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n<p>custom</p>\n", response)
}

func (suite *ServerSuite) TestHit() {
	s := suite.newServer(nil, suite.resolver())

	response, e := suite.exchange(s, "GET /doc HTTP/1.1\r\nHost: localhost\r\n\r\n")
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\ndoc get\n", response)
	suite.Equal(OutcomeHit, e.Outcome)

	response, _ = suite.exchange(s, "POST /doc HTTP/1.1\r\n")
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\ndoc post\n", response)

	response, _ = suite.exchange(s, "DELETE /doc HTTP/1.1\r\n")
	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\ndoc DELETE\n", response)
}

func (suite *ServerSuite) TestMiss() {
	s := suite.newServer(nil, suite.resolver())
	response, e := suite.exchange(s, "GET /missing HTTP/1.1\r\n")

	suite.Equal("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n"+webwire.NotFoundBody+"\n", response)
	suite.Equal(OutcomeMiss, e.Outcome)
	suite.Equal("/missing", e.Path)
}

func (suite *ServerSuite) TestParseError() {
	s := suite.newServer(nil, suite.resolver())
	response, e := suite.exchange(s, "this is not a request\r\n")

	suite.Empty(response)
	suite.Equal(OutcomeParseError, e.Outcome)
	suite.Error(e.Err)
	suite.Empty(e.Method)
	suite.Equal([]State{Accepted, Reading, Closed}, suite.states.get())
}

func (suite *ServerSuite) TestPeerClosed() {
	s := suite.newServer(nil, suite.resolver())
	response, e := suite.exchange(s, "")

	suite.Empty(response)
	suite.Equal(OutcomePeerClosed, e.Outcome)
	suite.ErrorIs(e.Err, webwire.ErrPeerClosed)
}

func (suite *ServerSuite) TestPanic() {
	s := suite.newServer(nil, suite.resolver())
	response, e := suite.exchange(s, "GET /panic HTTP/1.1\r\n")

	suite.Empty(response)
	suite.Equal(OutcomePanic, e.Outcome)
	suite.Error(e.Err)
	suite.Zero(s.active.Load())
	suite.Equal(
		[]State{Accepted, Reading, Dispatched, Responding, Closed},
		suite.states.get(),
	)
}

func (suite *ServerSuite) TestAcceptTemporaryError() {
	ml := new(webtest.MockListener)
	ml.ExpectAccept(nil, temporaryError{}).Twice()
	ml.ExpectAccept(nil, net.ErrClosed).Once()

	s := suite.newServer(ml, suite.resolver())
	suite.NoError(s.accept(func(net.Conn) {
		suite.Fail("no connection should have been handled")
	}))

	ml.AssertExpectations(suite.T())
}

func (suite *ServerSuite) TestAcceptClosing() {
	ml := new(webtest.MockListener)
	ml.ExpectAccept(nil, errors.New("listener closed")).Once()

	s := suite.newServer(ml, suite.resolver())
	s.closing.Store(true)
	suite.NoError(s.accept(func(net.Conn) {}))
	ml.AssertExpectations(suite.T())
}

func (suite *ServerSuite) TestServeFatalError() {
	for _, strategy := range []Strategy{Reactor, Pool} {
		suite.Run(strategy.String(), func() {
			var (
				expectedErr = errors.New("expected")
				ml          = new(webtest.MockListener)
			)

			ml.On("Accept").Return(nil, expectedErr)

			s := suite.newServer(ml, suite.resolver())
			s.config.Strategy = strategy
			s.config.Workers = 2
			s.serve()

			suite.ErrorIs(s.exitErr, expectedErr)
			select {
			case <-s.done:
			default:
				suite.Fail("done should be closed")
			}
		})
	}
}

func (suite *ServerSuite) TestServeConnections() {
	var (
		ml           = new(webtest.MockListener)
		client, conn = net.Pipe()
	)

	ml.ExpectConns(conn)

	s := suite.newServer(ml, suite.resolver())
	go s.serve()

	_, err := io.WriteString(client, "GET /doc HTTP/1.1\r\n")
	suite.Require().NoError(err)
	response, _ := io.ReadAll(client)
	suite.Contains(string(response), "doc get")

	<-s.done
	suite.NoError(s.exitErr)
}

func (suite *ServerSuite) TestWriteFailure() {
	var (
		c           = new(webtest.MockConn)
		expectedErr = errors.New("expected")
	)

	c.ExpectLocalAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9090})
	c.ExpectRemoteAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 55555})
	c.ExpectRead("GET /doc HTTP/1.1\r\n", nil).Once()
	c.On("Write", mock.Anything).Return(0, expectedErr).Once()
	c.ExpectClose(nil).Once()

	s := suite.newServer(nil, suite.resolver())
	s.serveConn(c)

	e := <-suite.events.ch
	suite.Equal(9090, e.Port)
	suite.Equal("127.0.0.1:55555", e.Remote)
	suite.Equal(OutcomeTransportError, e.Outcome)
	suite.ErrorIs(e.Err, expectedErr)
	c.AssertExpectations(suite.T())
}

func (suite *ServerSuite) TestReadDeadlineFailure() {
	var (
		c           = new(webtest.MockConn)
		expectedErr = errors.New("expected")
	)

	c.ExpectLocalAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9090})
	c.ExpectRemoteAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 55555})
	c.ExpectSetReadDeadline(expectedErr).Once()
	c.ExpectClose(nil).Once()

	s := suite.newServer(nil, suite.resolver())
	s.config.ReadTimeout = time.Second
	s.serveConn(c)

	e := <-suite.events.ch
	suite.Equal(OutcomeTransportError, e.Outcome)
	suite.ErrorIs(e.Err, expectedErr)
	suite.Empty(e.Path)
	c.AssertNotCalled(suite.T(), "Read", mock.Anything)
	c.AssertExpectations(suite.T())
}

func (suite *ServerSuite) TestWriteDeadlineFailure() {
	var (
		c           = new(webtest.MockConn)
		expectedErr = errors.New("expected")
	)

	c.ExpectLocalAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9090})
	c.ExpectRemoteAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 55555})
	c.ExpectRead("GET /doc HTTP/1.1\r\n", nil).Once()
	c.ExpectSetWriteDeadline(expectedErr).Once()
	c.ExpectClose(nil).Once()

	s := suite.newServer(nil, suite.resolver())
	s.config.WriteTimeout = time.Second
	s.serveConn(c)

	e := <-suite.events.ch
	suite.Equal(OutcomeTransportError, e.Outcome)
	suite.ErrorIs(e.Err, expectedErr)
	suite.Equal("/doc", e.Path)
	c.AssertNotCalled(suite.T(), "Write", mock.Anything)
	c.AssertExpectations(suite.T())
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

// halfCloser is a connection that supports CloseWrite, like a *net.TCPConn
type halfCloser struct {
	*webtest.MockConn
	closeWriteErr error
	closedWrite   bool
}

func (hc *halfCloser) CloseWrite() error {
	hc.closedWrite = true
	return hc.closeWriteErr
}

func testLingerNoCloseWrite(t *testing.T) {
	c := new(webtest.MockConn)
	linger(c, time.Second)
	c.AssertNotCalled(t, "SetReadDeadline", mock.Anything)
	c.AssertNotCalled(t, "Read", mock.Anything)
}

func testLingerDisabled(t *testing.T) {
	c := &halfCloser{MockConn: new(webtest.MockConn)}
	linger(c, -1)
	assert.False(t, c.closedWrite)
	c.AssertNotCalled(t, "Read", mock.Anything)
}

func testLingerCloseWriteError(t *testing.T) {
	c := &halfCloser{MockConn: new(webtest.MockConn), closeWriteErr: errors.New("expected")}
	linger(c, time.Second)
	assert.True(t, c.closedWrite)
	c.AssertNotCalled(t, "SetReadDeadline", mock.Anything)
	c.AssertNotCalled(t, "Read", mock.Anything)
}

func testLingerDeadlineError(t *testing.T) {
	c := &halfCloser{MockConn: new(webtest.MockConn)}
	c.ExpectSetReadDeadline(errors.New("expected")).Once()

	linger(c, time.Second)
	assert.True(t, c.closedWrite)
	c.AssertNotCalled(t, "Read", mock.Anything)
	c.AssertExpectations(t)
}

func testLingerDrain(t *testing.T) {
	c := &halfCloser{MockConn: new(webtest.MockConn)}
	c.ExpectSetReadDeadline(nil).Once()
	c.ExpectRead("trailing headers\r\n", nil).Once()
	c.ExpectRead("", io.EOF).Once()

	linger(c, time.Second)
	assert.True(t, c.closedWrite)
	c.AssertExpectations(t)
}

func TestLinger(t *testing.T) {
	t.Run("NoCloseWrite", testLingerNoCloseWrite)
	t.Run("Disabled", testLingerDisabled)
	t.Run("CloseWriteError", testLingerCloseWriteError)
	t.Run("DeadlineError", testLingerDeadlineError)
	t.Run("Drain", testLingerDrain)
}

func TestDestinationPort(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(9090, destinationPort(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9090}, 1))
	assert.Equal(1, destinationPort(nil, 1))

	ma := new(webtest.MockAddr)
	ma.ExpectString("example.com:7070")
	assert.Equal(7070, destinationPort(ma, 1))

	bad := new(webtest.MockAddr)
	bad.ExpectString("pipe")
	assert.Equal(1, destinationPort(bad, 1))

	ma.AssertExpectations(t)
	bad.AssertExpectations(t)
}

func TestReadOutcome(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(OutcomePeerClosed, readOutcome(webwire.ErrPeerClosed))
	assert.Equal(OutcomeParseError, readOutcome(&webwire.ParseError{Reason: "bad"}))
	assert.Equal(OutcomeTransportError, readOutcome(&webwire.TransportError{Op: "read", Err: io.ErrUnexpectedEOF}))
}

func TestDispatchRecovers(t *testing.T) {
	require := require.New(t)
	err := dispatch(panicky{}, &webwire.Request{Method: "GET", Path: "/"}, nil)
	require.Error(err)
	assert.Contains(t, err.Error(), "expected")
}
