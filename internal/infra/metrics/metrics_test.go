package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AccountCounters(t *testing.T) {
	m := New()

	m.ObserveRegistration("success")
	m.ObserveRegistration("success")
	m.ObserveRegistration("conflict")
	m.ObserveAuthentication(service.AuthOutcomeInvalidCredentials)
	m.ObserveSlugCollision()

	assert.InDelta(t, 2, testutil.ToFloat64(m.registrationsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.registrationsTotal.WithLabelValues("conflict")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.authenticationsTotal.WithLabelValues(service.AuthOutcomeInvalidCredentials)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.slugCollisionsTotal), 0)
}

func TestMetrics_HTTPAndHandler(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/access/login", http.StatusCreated, 20*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/access/login", "201")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpRequestDuration))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "accounts_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestNewAccountMetrics(t *testing.T) {
	m := New()

	assert.IsType(t, service.NoopMetrics{}, NewAccountMetrics(&config.Config{}, m))
	assert.Same(t, m, NewAccountMetrics(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}}, m))
}
