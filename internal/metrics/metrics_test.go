package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := New(Config{Namespace: "test"})
	require.NoError(t, err)
	return m
}

func TestNew_DefaultNamespace(t *testing.T) {
	m, err := New(Config{})
	require.NoError(t, err)
	m.ObserveCalculation("goal", time.Now(), nil)

	expected := `
# HELP finplan_engine_calculations_total Calculator invocations by operation and outcome.
# TYPE finplan_engine_calculations_total counter
finplan_engine_calculations_total{operation="goal",outcome="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "finplan_engine_calculations_total"))
}

func TestObserveCalculation(t *testing.T) {
	m := newTestMetrics(t)
	start := time.Now()

	m.ObserveCalculation("retirement", start, nil)
	m.ObserveCalculation("retirement", start, nil)
	m.ObserveCalculation("goal", start, errors.New("bad input"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("retirement", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("goal", OutcomeError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("goal", OutcomeOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CalculationDuration))
}

func TestObserveRequest(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveRequest("POST", "/v1/goal", 200, 5*time.Millisecond)
	m.ObserveRequest("POST", "/v1/goal", 400, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/v1/goal", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/v1/goal", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestHandler(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveRequest("GET", "/healthz", 200, time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}

func TestSeparateRegistries(t *testing.T) {
	a := newTestMetrics(t)
	b := newTestMetrics(t)
	a.ObserveCalculation("portfolio", time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CalculationsTotal.WithLabelValues("portfolio", OutcomeOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CalculationsTotal.WithLabelValues("portfolio", OutcomeOK)))
}
