package server

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const anaProfile = `{"name":"Ana","age":"30","monthlyIncome":"10000","riskTolerance":"moderado","dependents":"0"}`

type harness struct {
	server  *Server
	metrics *metrics.Metrics
	logs    *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	m, err := metrics.New(metrics.Config{Namespace: "test"})
	require.NoError(t, err)
	core, logs := observer.New(zap.InfoLevel)

	s, err := New(config.DefaultSettings().Server, nil, m, zap.New(core).Sugar())
	require.NoError(t, err)
	return &harness{server: s, metrics: m, logs: logs}
}

func (h *harness) do(method, uri, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.server.Handler()(ctx)
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &m))
	return m
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("GET", "/healthz", "")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "ok", decode(t, ctx)["status"])

	_, err := uuid.Parse(string(ctx.Response.Header.Peek(RequestIDHeader)))
	assert.NoError(t, err)
}

func TestRequestIDPropagated(t *testing.T) {
	h := newHarness(t)
	var req fasthttp.Request
	req.Header.SetMethod("GET")
	req.SetRequestURI("/healthz")
	req.Header.Set(RequestIDHeader, "abc-123")
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	h.server.Handler()(ctx)

	assert.Equal(t, "abc-123", string(ctx.Response.Header.Peek(RequestIDHeader)))
}

func TestPortfolio(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/portfolio", anaProfile)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	body := decode(t, ctx)
	assert.Equal(t, "balanced", body["kind"])
	assert.Equal(t, "Balanced Portfolio", body["name"])
	assert.Len(t, body["allocation"], 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CalculationsTotal.WithLabelValues("portfolio", metrics.OutcomeOK)))
}

func TestPortfolio_MissingProfile(t *testing.T) {
	h := newHarness(t)
	for _, body := range []string{"", "null"} {
		ctx := h.do("POST", "/v1/portfolio", body)
		assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
		resp := decode(t, ctx)
		assert.Equal(t, 422.0, resp["status"])
		assert.Equal(t, "complete your profile to see recommendations", resp["message"])
	}
}

func TestPortfolio_BadBody(t *testing.T) {
	h := newHarness(t)

	ctx := h.do("POST", "/v1/portfolio", "{not json")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = h.do("POST", "/v1/portfolio", `{"riskTolerance":"reckless"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decode(t, ctx)["message"], "unknown risk tolerance")
}

func TestRetirement(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/retirement", anaProfile)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := decode(t, ctx)
	assert.Equal(t, 65.0, body["retirementAge"])
	assert.Equal(t, "1500", body["monthlyContribution"])
	assert.Equal(t, "7392445", body["projectedNestEgg"])
	assert.Equal(t, "24641", body["monthlyRetirementIncome"])
	assert.Len(t, body["yearlyProjection"], 30)
}

func TestRetirement_NumericProfileFields(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/retirement", `{"age":30,"monthlyIncome":10000,"riskTolerance":"moderate","dependents":"0"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := decode(t, ctx)
	assert.Equal(t, "1500", body["monthlyContribution"])
	assert.Equal(t, "7392445", body["projectedNestEgg"])
	assert.Nil(t, body["usedDefaultAge"])
	assert.Nil(t, body["usedDefaultIncome"])
}

func TestRetirement_EmptyDependentsMeansNone(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/retirement", `{"age":"30","monthlyIncome":"10000","riskTolerance":"moderate","dependents":""}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "1500", decode(t, ctx)["monthlyContribution"])
}

func TestGoal(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/goal", `{"targetAmount":12000,"monthlyContribution":1000}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := decode(t, ctx)
	assert.Equal(t, 12.0, body["monthsToTarget"])
	assert.Equal(t, "330.02", body["totalInterestEarned"])
	assert.Equal(t, true, body["reached"])
}

func TestGoal_InvalidInput(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/goal", `{"targetAmount":12000,"monthlyContribution":0}`)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decode(t, ctx)["message"], "monthlyContribution must be positive")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.CalculationsTotal.WithLabelValues("goal", metrics.OutcomeError)))
}

func TestReport(t *testing.T) {
	h := newHarness(t)
	body := `{"profile":` + anaProfile + `,"goal":{"targetAmount":12000,"monthlyContribution":1000,"deadlineMonths":12}}`
	ctx := h.do("POST", "/v1/report", body)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	resp := decode(t, ctx)
	assert.Equal(t, "Ana", resp["name"])
	assert.NotNil(t, resp["portfolio"])
	assert.Equal(t, 12.0, resp["goal"].(map[string]any)["monthsToTarget"])
	assert.Equal(t, "974", resp["goalPlan"].(map[string]any)["requiredMonthlyContribution"])
}

func TestReport_Formats(t *testing.T) {
	h := newHarness(t)
	body := `{"profile":` + anaProfile + `}`

	ctx := h.do("POST", "/v1/report?format=md", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/markdown; charset=utf-8", string(ctx.Response.Header.ContentType()))
	assert.True(t, strings.HasPrefix(string(ctx.Response.Body()), "# Financial Plan: Ana"))

	ctx = h.do("POST", "/v1/report?format=xml", body)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestReport_Errors(t *testing.T) {
	h := newHarness(t)

	ctx := h.do("POST", "/v1/report", `{"goal":{"targetAmount":1,"monthlyContribution":1}}`)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = h.do("POST", "/v1/report", `{"profile":`+anaProfile+`,"goal":{"targetAmount":-5,"monthlyContribution":1}}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCompare(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("POST", "/v1/compare", `{"profile":`+anaProfile+`,"whatIf":["aggressive"]}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	resp := decode(t, ctx)
	assert.Equal(t, "Ana", resp["baseScenarioName"])
	assert.Len(t, resp["alternativeResults"], 3)

	ctx = h.do("POST", "/v1/compare", `{"profile":`+anaProfile+`,"whatIf":["nope"]}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestRouting(t *testing.T) {
	h := newHarness(t)

	ctx := h.do("GET", "/v1/portfolio", "")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.Equal(t, "POST", string(ctx.Response.Header.Peek("Allow")))

	ctx = h.do("GET", "/nowhere", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.HTTPRequestsTotal.WithLabelValues("GET", "other", "404")))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)
	h.do("POST", "/v1/retirement", anaProfile)

	ctx := h.do("GET", "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `test_engine_calculations_total{operation="retirement",outcome="ok"} 1`)
}

func TestRequestLogging(t *testing.T) {
	h := newHarness(t)
	ctx := h.do("GET", "/healthz", "")

	entries := h.logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
	assert.Equal(t, string(ctx.Response.Header.Peek(RequestIDHeader)), fields["request_id"])
	assert.IsType(t, time.Duration(0), fields["duration"])
}
