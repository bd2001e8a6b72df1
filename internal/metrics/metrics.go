// Package metrics exposes Prometheus collectors for tenant switches, template
// resolution, sessions, product launches and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiranshivaraju/tenantportal/internal/templates"
)

const namespace = "tenantportal"

// Metrics groups every collector the portal records to.
type Metrics struct {
	tenantSwitches   *prometheus.CounterVec
	templateResolved *prometheus.CounterVec
	templateDuration *prometheus.HistogramVec
	activeSessions   prometheus.Gauge
	productOpens     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	gatherer         prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry.
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		tenantSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_switches_total",
			Help:      "Tenant activations by resolved tenant and whether the requested id fell back to default.",
		}, []string{"tenant", "fallback"}),
		templateResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_resolutions_total",
			Help:      "Settled custom template loads by outcome.",
		}, []string{"tenant", "state"}),
		templateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "template_fetch_duration_seconds",
			Help:      "Time from fetch start to settlement.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"state"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Portal sessions currently held in memory.",
		}),
		productOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_opens_total",
			Help:      "Product launch attempts by outcome.",
		}, []string{"product", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.tenantSwitches, m.templateResolved, m.templateDuration, m.activeSessions,
		m.productOpens, m.httpRequests, m.httpDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// TenantActivated records a Registry.SetTenant call.
func (m *Metrics) TenantActivated(requested, resolved string) {
	m.tenantSwitches.WithLabelValues(resolved, strconv.FormatBool(requested != resolved)).Inc()
}

// TemplateResolved records a settled template load.
func (m *Metrics) TemplateResolved(tenantID string, state templates.State, elapsed time.Duration) {
	m.templateResolved.WithLabelValues(tenantID, state.String()).Inc()
	m.templateDuration.WithLabelValues(state.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) SessionOpened() { m.activeSessions.Inc() }

func (m *Metrics) SessionClosed() { m.activeSessions.Dec() }

// ProductOpened records a product click; allowed is false for restricted
// products.
func (m *Metrics) ProductOpened(productID string, allowed bool) {
	result := "opened"
	if !allowed {
		result = "restricted"
	}
	m.productOpens.WithLabelValues(productID, result).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched
// pattern, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
