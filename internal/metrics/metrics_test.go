package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/tenantportal/internal/metrics"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
)

func newMetrics(t *testing.T) (*metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	return m, reg
}

func TestNew_DoubleRegistrationFails(t *testing.T) {
	_, reg := newMetrics(t)
	_, err := metrics.New(reg)
	assert.Error(t, err)
}

func TestTenantActivated_LabelsFallback(t *testing.T) {
	m, reg := newMetrics(t)
	m.TenantActivated("enterprise", "enterprise")
	m.TenantActivated("ghost", "default")
	m.TenantActivated("default", "default")

	n, err := testutil.GatherAndCount(reg, "tenantportal_tenant_switches_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m, _ := newMetrics(t)
	m.TemplateResolved("tech-startup", templates.StateBound, 20*time.Millisecond)
	m.ProductOpened("4", false)
	m.SessionOpened()
	m.ObserveRequest("GET", "/api/v1/me", 200, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `tenantportal_template_resolutions_total{state="bound",tenant="tech-startup"} 1`)
	assert.Contains(t, out, `tenantportal_product_opens_total{product="4",result="restricted"} 1`)
	assert.Contains(t, out, `tenantportal_active_sessions 1`)
	assert.Contains(t, out, `tenantportal_http_requests_total{method="GET",route="/api/v1/me",status="200"} 1`)
}

func TestSessionGauge(t *testing.T) {
	m, reg := newMetrics(t)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "tenantportal_active_sessions" {
			assert.Equal(t, 1.0, f.GetMetric()[0].GetGauge().GetValue())
			return
		}
	}
	t.Fatal("active_sessions not gathered")
}
