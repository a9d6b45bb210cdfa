package server

import (
	"bytes"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// GoalRequest is the /v1/goal body
type GoalRequest struct {
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
}

// ReportRequest is the /v1/report body
type ReportRequest struct {
	Profile *domain.Profile    `json:"profile"`
	Goal    *output.GoalRequest `json:"goal,omitempty"`
}

// CompareRequest is the /v1/compare body
type CompareRequest struct {
	Profile *domain.Profile `json:"profile"`
	WhatIf  []string        `json:"whatIf,omitempty"`
}

func (s *Server) handlePortfolio(ctx *fasthttp.RequestCtx) {
	profile, ok := decodeProfile(ctx)
	if !ok {
		return
	}
	start := time.Now()
	archetype := s.engine.ClassifyPortfolio(profile)
	s.metrics.ObserveCalculation("portfolio", start, nil)
	writeJSON(ctx, fasthttp.StatusOK, archetype)
}

func (s *Server) handleRetirement(ctx *fasthttp.RequestCtx) {
	profile, ok := decodeProfile(ctx)
	if !ok {
		return
	}
	start := time.Now()
	plan := s.engine.ProjectRetirement(profile)
	s.metrics.ObserveCalculation("retirement", start, nil)
	writeJSON(ctx, fasthttp.StatusOK, plan)
}

func (s *Server) handleGoal(ctx *fasthttp.RequestCtx) {
	var req GoalRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	start := time.Now()
	result, err := s.engine.SimulateGoal(req.TargetAmount, req.MonthlyContribution)
	s.metrics.ObserveCalculation("goal", start, err)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// handleReport answers JSON by default; ?format= picks any report formatter
func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	var req ReportRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, domain.ErrProfileIncomplete.Error())
		return
	}

	formatName := string(ctx.QueryArgs().Peek("format"))
	var formatter output.Formatter
	if formatName != "" {
		if formatter = output.GetFormatterByName(formatName); formatter == nil {
			writeError(ctx, fasthttp.StatusBadRequest, "unknown format: "+formatName)
			return
		}
	}

	start := time.Now()
	report, err := s.reports.Build(ctx, req.Profile, req.Goal)
	s.metrics.ObserveCalculation("report", start, err)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, calculation.ErrInvalidGoalInput) {
			status = fasthttp.StatusBadRequest
		}
		writeError(ctx, status, err.Error())
		return
	}

	if formatter == nil {
		writeJSON(ctx, fasthttp.StatusOK, report)
		return
	}
	data, err := formatter.Format(report)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(contentType(formatter.Name()))
	ctx.SetBody(data)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !decodeBody(ctx, &req) {
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, domain.ErrProfileIncomplete.Error())
		return
	}

	start := time.Now()
	set, err := s.compare.Compare(ctx, req.Profile, compare.CompareOptions{WhatIf: req.WhatIf})
	s.metrics.ObserveCalculation("compare", start, err)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

// decodeProfile reads a Profile body; an empty or null body is an incomplete profile
func decodeProfile(ctx *fasthttp.RequestCtx) (*domain.Profile, bool) {
	body := bytes.TrimSpace(ctx.PostBody())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, domain.ErrProfileIncomplete.Error())
		return nil, false
	}
	var profile domain.Profile
	if !decodeBody(ctx, &profile) {
		return nil, false
	}
	return &profile, true
}

func decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv; charset=utf-8"
	case "markdown":
		return "text/markdown; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
