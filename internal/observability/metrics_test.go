package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/v1/jobs", http.MethodPost, http.StatusCreated, 10*time.Millisecond)
	m.RecordRequest("/api/v1/jobs", http.MethodPost, http.StatusCreated, 20*time.Millisecond)
	m.RecordError("/api/v1/jobs/:id", http.MethodPatch, "PERMISSION_DENIED")
	m.RecordGateDecision("PATCH /api/v1/jobs/:id", "forbidden")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodPost, "/api/v1/jobs", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues(http.MethodPatch, "/api/v1/jobs/:id", "PERMISSION_DENIED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gateDecisions.WithLabelValues("PATCH /api/v1/jobs/:id", "forbidden")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
		m.RecordError("/", http.MethodGet, "X")
		m.RecordGateDecision("/", "public")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordGateDecision("GET /api/v1/jobs", "public")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "auth_gate_decisions_total")
}
