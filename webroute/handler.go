// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webroute

import "github.com/xmidt-org/multiweb/webwire"

// Handler is implemented by every route target.  ServeRequest is the default
// behavior, used for any method the handler has no specific branch for.
//
// A single Handler instance serves every request routed to it, possibly
// concurrently, so implementations must not mutate shared state without
// synchronization.
type Handler interface {
	ServeRequest(*webwire.Request, webwire.ResponseWriter)
}

// HandlerFunc is a function type that implements Handler.
type HandlerFunc func(*webwire.Request, webwire.ResponseWriter)

// ServeRequest invokes this function.
func (hf HandlerFunc) ServeRequest(r *webwire.Request, w webwire.ResponseWriter) {
	hf(r, w)
}

// Getter is the optional GET branch of a Handler.
type Getter interface {
	ServeGet(*webwire.Request, webwire.ResponseWriter)
}

// Poster is the optional POST branch of a Handler.
type Poster interface {
	ServePost(*webwire.Request, webwire.ResponseWriter)
}

// Putter is the optional PUT branch of a Handler.
type Putter interface {
	ServePut(*webwire.Request, webwire.ResponseWriter)
}

// Deleter is the optional DELETE branch of a Handler.
type Deleter interface {
	ServeDelete(*webwire.Request, webwire.ResponseWriter)
}

// Header is the optional HEAD branch of a Handler.
type Header interface {
	ServeHead(*webwire.Request, webwire.ResponseWriter)
}

// Optioner is the optional OPTIONS branch of a Handler.
type Optioner interface {
	ServeOptions(*webwire.Request, webwire.ResponseWriter)
}

// Patcher is the optional PATCH branch of a Handler.
type Patcher interface {
	ServePatch(*webwire.Request, webwire.ResponseWriter)
}

// Dispatch runs the branch of h that matches the request method.  When h
// has no such branch, h.ServeRequest is used instead.
func Dispatch(h Handler, r *webwire.Request, w webwire.ResponseWriter) {
	switch r.Method {
	case MethodGet:
		if g, ok := h.(Getter); ok {
			g.ServeGet(r, w)
			return
		}

	case MethodPost:
		if p, ok := h.(Poster); ok {
			p.ServePost(r, w)
			return
		}

	case MethodPut:
		if p, ok := h.(Putter); ok {
			p.ServePut(r, w)
			return
		}

	case MethodDelete:
		if d, ok := h.(Deleter); ok {
			d.ServeDelete(r, w)
			return
		}

	case MethodHead:
		if hd, ok := h.(Header); ok {
			hd.ServeHead(r, w)
			return
		}

	case MethodOptions:
		if o, ok := h.(Optioner); ok {
			o.ServeOptions(r, w)
			return
		}

	case MethodPatch:
		if p, ok := h.(Patcher); ok {
			p.ServePatch(r, w)
			return
		}
	}

	h.ServeRequest(r, w)
}

// Silent is embeddable in handlers whose default behavior is to write nothing.
// A handler that only answers GET embeds Silent and implements Getter.
type Silent struct{}

// ServeRequest writes nothing.  The connection is still closed by the front end.
func (Silent) ServeRequest(*webwire.Request, webwire.ResponseWriter) {}
