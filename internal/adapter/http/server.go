package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-station-bridge/internal/domain"
	"github.com/couchcryptid/weather-station-bridge/internal/pipeline"
)

// ReportProcessor handles one station report end to end.
type ReportProcessor interface {
	ProcessReport(ctx context.Context, report domain.Report) error
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the station ingest endpoint plus health, readiness, and
// metrics routes.
type Server struct {
	httpServer *http.Server
	processor  ReportProcessor
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /update_weather, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, processor ReportProcessor, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		processor: processor,
		logger:    logger,
	}

	// The WS-2902 console only speaks GET with query parameters.
	mux.HandleFunc("GET /update_weather", s.handleUpdateWeather)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleUpdateWeather(w http.ResponseWriter, r *http.Request) {
	report := make(domain.Report)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			report[key] = values[0]
		}
	}
	s.logger.Debug("incoming report", "params", len(report))

	err := s.processor.ProcessReport(r.Context(), report)
	switch {
	case errors.Is(err, pipeline.ErrBadCredentials):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
	case err != nil:
		s.logger.Error("report processing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
