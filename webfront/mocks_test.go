// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webfront

import (
	"sync"

	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webwire"
)

// text is a handler that writes a fixed plain text body
type text string

func (t text) ServeRequest(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, string(t))
}

// document answers GET and POST differently, and falls back for everything else
type document struct {
	name string
}

func (d document) ServeRequest(r *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, d.name+" "+r.Method)
}

func (d document) ServeGet(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, d.name+" get")
}

func (d document) ServePost(_ *webwire.Request, w webwire.ResponseWriter) {
	webwire.WriteText(w, d.name+" post")
}

type panicky struct{}

func (panicky) ServeRequest(*webwire.Request, webwire.ResponseWriter) {
	panic("expected")
}

// blocking signals entered and then waits on release before answering
type blocking struct {
	entered chan struct{}
	release chan struct{}
}

func newBlocking() *blocking {
	return &blocking{
		entered: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
}

func (b *blocking) ServeRequest(_ *webwire.Request, w webwire.ResponseWriter) {
	b.entered <- struct{}{}
	<-b.release
	webwire.WriteText(w, "released")
}

func newTable(routes map[string]webroute.Handler) *webroute.Table {
	tb := webroute.NewTableBuilder()
	for path, h := range routes {
		if err := tb.Add(webroute.Descriptor{Paths: []string{path}}, h, "test"); err != nil {
			panic(err)
		}
	}

	return tb.Build()
}

type eventRecorder struct {
	lock   sync.Mutex
	events []Event
	ch     chan Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{
		ch: make(chan Event, 100),
	}
}

func (er *eventRecorder) observe(e Event) {
	er.lock.Lock()
	er.events = append(er.events, e)
	er.lock.Unlock()
	er.ch <- e
}

type stateRecorder struct {
	lock   sync.Mutex
	states []State
}

func (sr *stateRecorder) observe(_ any, s State) {
	sr.lock.Lock()
	sr.states = append(sr.states, s)
	sr.lock.Unlock()
}

func (sr *stateRecorder) get() []State {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	return append([]State{}, sr.states...)
}
