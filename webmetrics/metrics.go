// SPDX-FileCopyrightText: 2026 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package webmetrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/multiweb/webfront"
	"github.com/xmidt-org/multiweb/webtenant"
	"go.uber.org/multierr"
)

// DefaultNamespace is the metric namespace used when none is configured.
const DefaultNamespace = "multiweb"

// Tenant load outcomes.
const (
	TenantLoaded  = "loaded"
	TenantSkipped = "skipped"
	TenantFailed  = "failed"
)

// Metrics holds the collectors for one front end and its tenants.  Collectors are
// created per instance, so several instances can live in one process as long as they
// register with different registries or namespaces.
type Metrics struct {
	Requests          *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	Tenants           *prometheus.CounterVec
	DiscoveryFailures *prometheus.CounterVec
	Routes            *prometheus.GaugeVec
}

// New creates the collectors under a namespace.  DefaultNamespace is used if
// namespace is empty.
func New(namespace string) *Metrics {
	if len(namespace) == 0 {
		namespace = DefaultNamespace
	}

	return &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Connections served by the front end, by destination port and outcome",
			},
			[]string{"port", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time from accepting a connection to closing it",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"port"},
		),
		Tenants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tenant_loads_total",
				Help:      "Tenant load attempts, by port and outcome",
			},
			[]string{"port", "outcome"},
		),
		DiscoveryFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discovery_failures_total",
				Help:      "Manifest entries skipped during discovery, by port",
			},
			[]string{"port"},
		),
		Routes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "routes",
				Help:      "Routes currently published, by port",
			},
			[]string{"port"},
		),
	}
}

// Register registers every collector, returning all registration errors.
func (m *Metrics) Register(r prometheus.Registerer) (err error) {
	for _, c := range []prometheus.Collector{m.Requests, m.RequestDuration, m.Tenants, m.DiscoveryFailures, m.Routes} {
		err = multierr.Append(err, r.Register(c))
	}

	return
}

// RegisterActive registers a gauge that reports the connections a front end is serving.
func RegisterActive(r prometheus.Registerer, namespace string, f *webfront.Frontend) error {
	if len(namespace) == 0 {
		namespace = DefaultNamespace
	}

	return r.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Connections currently being served",
		},
		func() float64 {
			return float64(f.Active())
		},
	))
}

// ObserveRequest is a webfront.Observer.
func (m *Metrics) ObserveRequest(e webfront.Event) {
	port := strconv.Itoa(e.Port)
	m.Requests.WithLabelValues(port, string(e.Outcome)).Inc()
	m.RequestDuration.WithLabelValues(port).Observe(e.Duration.Seconds())
}

// ObserveTenant is a webtenant.Observer.
func (m *Metrics) ObserveTenant(e webtenant.Event) {
	port := strconv.Itoa(e.Port)
	switch {
	case e.Skipped:
		m.Tenants.WithLabelValues(port, TenantSkipped).Inc()

	case e.Err != nil:
		m.Tenants.WithLabelValues(port, TenantFailed).Inc()

	case e.Tenant != nil:
		m.Tenants.WithLabelValues(port, TenantLoaded).Inc()
		m.DiscoveryFailures.WithLabelValues(port).Add(float64(e.Tenant.Failures))
		m.Routes.WithLabelValues(port).Set(float64(e.Tenant.Routes))
	}
}
