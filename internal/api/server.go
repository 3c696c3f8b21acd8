// Package api exposes the HTTP surface: routed queries, direct agent
// invocation, agent listing, and the operational endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/logging"
	"github.com/tutormesh/tutormesh/internal/metrics"
)

// ServiceName is reported by the GET / info endpoint.
const ServiceName = "TutorMesh Multi-Agent Platform"

// TracerSource hands out named tracers. Satisfied by tracing.Provider.
type TracerSource interface {
	GetTracer(name string) trace.Tracer
	IsEnabled() bool
}

// Options configures the API server.
type Options struct {
	Host    string
	Port    int
	Version string

	Registry *agent.Registry
	Router   *agent.Router
	Metrics  *metrics.Metrics
	Tracing  TracerSource

	// MCPHandler, when set, is mounted at /v1/mcp.
	MCPHandler http.Handler
}

// Server handles HTTP API requests and implements lifecycle.Component.
type Server struct {
	addr     string
	version  string
	server   *http.Server
	router   *http.ServeMux
	registry *agent.Registry
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// New creates a new API server
func New(opts Options) *Server {
	s := &Server{
		addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		version:  opts.Version,
		router:   http.NewServeMux(),
		registry: opts.Registry,
		metrics:  opts.Metrics,
		logger:   logging.GetLogger("api"),
	}

	var tracer trace.Tracer
	if opts.Tracing != nil && opts.Tracing.IsEnabled() {
		tracer = opts.Tracing.GetTracer("tutormesh.api")
	} else {
		tracer = otel.GetTracerProvider().Tracer("tutormesh.api")
	}

	queryHandler := NewQueryHandler(opts.Registry, opts.Router, s.logger, tracer)
	agentHandler := NewAgentHandler(opts.Registry, s.logger, tracer)

	s.router.HandleFunc("/query", s.withMethod(http.MethodPost, queryHandler.Handle))
	s.router.HandleFunc("/agent/", s.withMethod(http.MethodPost, agentHandler.Handle))
	s.router.HandleFunc("/agents", s.withMethod(http.MethodGet, s.handleListAgents))
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)
	s.router.HandleFunc("/", s.handleInfo)

	if opts.Metrics != nil {
		s.router.Handle("/metrics", opts.Metrics.Handler())
	}
	if opts.MCPHandler != nil {
		s.router.Handle("/v1/mcp", opts.MCPHandler)
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.corsMiddleware(s.instrument(s.router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// withMethod wraps a handler to enforce HTTP method
func (s *Server) withMethod(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			s.handleMethodNotAllowed(w, r)
			return
		}
		handler(w, r)
	}
}

// corsMiddleware adds CORS headers to allow browser access
// For local development only - allows all origins
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// instrument counts requests per endpoint and status code.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(endpointLabel(r.URL.Path), fmt.Sprintf("%d", rec.status)).Inc()
	})
}

// endpointLabel collapses per-agent paths to keep metric cardinality bounded.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, "/agent/") {
		return "/agent/{name}"
	}
	return path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Start implements the lifecycle.Component interface
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.logger.Info("Starting API server on %s", s.addr)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()
	return nil
}

// Stop implements the lifecycle.Component interface and drains in-flight
// requests before returning.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")

	done := make(chan error, 1)
	go func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- s.server.Shutdown(shutdownCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error("HTTP server shutdown error: %v", err)
			return err
		}
		s.logger.Info("HTTP server stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("HTTP server shutdown timeout")
		return ctx.Err()
	}
}

// Name implements the lifecycle.Component interface
func (s *Server) Name() string {
	return "API Server"
}

// handleInfo handles the GET / info endpoint. The ServeMux pattern "/" is a
// catch-all, so unknown paths answer 404 here.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Endpoint not found: %s", r.URL.Path))
		return
	}
	if r.Method != http.MethodGet {
		s.handleMethodNotAllowed(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, InfoResponse{
		Status:          "active",
		Service:         ServiceName,
		Version:         s.version,
		Message:         "Backend is running",
		AvailableAgents: s.registry.Names(),
	})
}

// handleListAgents handles GET /agents. The listing is static for the life
// of the process and never touches the model.
func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	defs := s.registry.List()
	resp := AgentListResponse{Agents: make([]AgentSummary, 0, len(defs))}
	for _, def := range defs {
		resp.Agents = append(resp.Agents, AgentSummary{Name: def.Name, Description: def.Description})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, resp)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, map[string]interface{}{"status": "healthy"})
}

// handleReady handles readiness check requests. The agent registry is built
// before the server starts, so readiness follows liveness.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, map[string]interface{}{"ready": true})
}

// handleMethodNotAllowed handles 405 responses
func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path))
}
