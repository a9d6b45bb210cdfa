// Package server exposes the calculators as a JSON API over fasthttp.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/metrics"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id on every response
const RequestIDHeader = "X-Request-ID"

// Server routes API requests to the engine
type Server struct {
	settings config.ServerSettings
	engine   *calculation.Engine
	reports  *output.ReportGenerator
	compare  *compare.CompareEngine
	metrics  *metrics.Metrics
	logger   *zap.SugaredLogger

	metricsHandler fasthttp.RequestHandler
	srv            *fasthttp.Server
}

// New wires a server. Nil engine, metrics or logger get working defaults.
func New(settings config.ServerSettings, engine *calculation.Engine, m *metrics.Metrics, logger *zap.SugaredLogger) (*Server, error) {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if m == nil {
		var err error
		if m, err = metrics.New(metrics.Config{}); err != nil {
			return nil, err
		}
	}

	s := &Server{
		settings:       settings,
		engine:         engine,
		reports:        output.NewReportGenerator(engine),
		compare:        compare.NewCompareEngine(engine),
		metrics:        m,
		logger:         logger,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(m.Handler()),
	}
	s.srv = &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "finplan",
		ReadTimeout:        settings.ReadTimeout,
		WriteTimeout:       settings.WriteTimeout,
		MaxRequestBodySize: settings.MaxRequestBody,
	}
	return s, nil
}

// Handler returns the routed handler wrapped with request id, logging and metrics
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.observe(s.route)
}

// ListenAndServe serves on the configured address until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("server listening", "addr", s.settings.Addr)
		errCh <- s.srv.ListenAndServe(s.settings.Addr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Infow("server shutting down")
		if err := s.srv.Shutdown(); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/healthz":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/metrics":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		s.metricsHandler(ctx)
	case "/v1/portfolio":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handlePortfolio(ctx)
		}
	case "/v1/retirement":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleRetirement(ctx)
		}
	case "/v1/goal":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleGoal(ctx)
		}
	case "/v1/report":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleReport(ctx)
		}
	case "/v1/compare":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleCompare(ctx)
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

var knownPaths = map[string]bool{
	"/healthz": true, "/metrics": true,
	"/v1/portfolio": true, "/v1/retirement": true, "/v1/goal": true,
	"/v1/report": true, "/v1/compare": true,
}

func (s *Server) observe(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		requestID := string(ctx.Request.Header.Peek(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetUserValue("requestID", requestID)
		ctx.Response.Header.Set(RequestIDHeader, requestID)

		next(ctx)

		elapsed := time.Since(start)
		path := string(ctx.Path())
		if !knownPaths[path] {
			path = "other"
		}
		status := ctx.Response.StatusCode()
		s.metrics.ObserveRequest(string(ctx.Method()), path, status, elapsed)
		s.logger.Infow("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", status,
			"duration", elapsed,
			"request_id", requestID,
		)
	}
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}
