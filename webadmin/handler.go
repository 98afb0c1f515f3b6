// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webadmin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/pprof"
	rpprof "runtime/pprof"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/multiweb/webroute"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/zap"
)

// DefaultPprofPrefix is where the pprof routes are mounted by default.
const DefaultPprofPrefix = "/debug/pprof"

// RouteView is the JSON form of one published route.
type RouteView struct {
	Path    string `json:"path"`
	Method  string `json:"method"`
	Source  string `json:"source,omitempty"`
	Handler string `json:"handler"`
}

// TableView is the JSON form of one port's table.
type TableView struct {
	Port   int         `json:"port"`
	Routes []RouteView `json:"routes"`
}

func newTableView(port int, t *webroute.Table) TableView {
	tv := TableView{
		Port:   port,
		Routes: []RouteView{},
	}

	for _, r := range t.Routes() {
		tv.Routes = append(tv.Routes, RouteView{
			Path:    r.Path,
			Method:  r.Method,
			Source:  r.Source,
			Handler: fmt.Sprintf("%T", r.Handler),
		})
	}

	return tv
}

// Handlers serves the admin endpoints.
type Handlers struct {
	Loader   *webtenant.Loader
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// Tenants writes the loaded tenants.
func (h Handlers) Tenants(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Loader.Tenants())
}

// Routes writes every published table.  In global mode the shared table is
// reported with port 0.
func (h Handlers) Routes(w http.ResponseWriter, _ *http.Request) {
	registry := h.Loader.Registry()
	views := []TableView{}
	if registry.Mode() == webroute.ModeGlobal {
		views = append(views, newTableView(0, registry.Global()))
	} else {
		for _, port := range registry.Ports() {
			t, _ := registry.Table(port)
			views = append(views, newTableView(port, t))
		}
	}

	h.writeJSON(w, http.StatusOK, views)
}

// PortRoutes writes the table for the port in the request path.
func (h Handlers) PortRoutes(w http.ResponseWriter, r *http.Request) {
	port, err := strconv.Atoi(mux.Vars(r)["port"])
	if err != nil {
		http.Error(w, "invalid port", http.StatusBadRequest)
		return
	}

	t, ok := h.Loader.Registry().Table(port)
	if !ok {
		http.Error(w, "no tenant for port", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, newTableView(port, t))
}

func (h Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && h.Logger != nil {
		h.Logger.Error("unable to write admin response", zap.Error(err))
	}
}

// ConfigurePprof adds the pprof routes to a *mux.Router, usually a subrouter.
func ConfigurePprof(r *mux.Router) {
	r.Path("/").HandlerFunc(pprof.Index)
	r.Path("/cmdline").HandlerFunc(pprof.Cmdline)
	r.Path("/profile").HandlerFunc(pprof.Profile)
	r.Path("/symbol").HandlerFunc(pprof.Symbol)
	r.Path("/trace").HandlerFunc(pprof.Trace)

	// pprof.Index only resolves profile names under /debug/pprof/, so each
	// profile is routed directly to keep any prefix working
	for _, p := range rpprof.Profiles() {
		r.Path("/" + p.Name()).Handler(pprof.Handler(p.Name()))
	}
}

// AccessLog is middleware that logs each admin request at debug level.
func AccessLog(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug(
				"admin request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// NewRouter creates the admin router.  The middleware chain wraps every route.
func NewRouter(c Config, h Handlers, chain alice.Chain) *mux.Router {
	router := mux.NewRouter()
	router.Use(chain.Then)

	router.Path("/tenants").Methods(http.MethodGet).HandlerFunc(h.Tenants)
	router.Path("/routes").Methods(http.MethodGet).HandlerFunc(h.Routes)
	router.Path("/routes/{port:[0-9]+}").Methods(http.MethodGet).HandlerFunc(h.PortRoutes)

	if h.Gatherer != nil {
		router.Path("/metrics").Methods(http.MethodGet).Handler(
			promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}),
		)
	}

	prefix := c.PprofPrefix
	if len(prefix) == 0 {
		prefix = DefaultPprofPrefix
	}

	if prefix != "-" {
		router.Path(prefix).Handler(http.RedirectHandler(prefix+"/", http.StatusMovedPermanently))
		ConfigurePprof(router.PathPrefix(prefix).Subrouter())
	}

	return router
}
