package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/logging"
)

// QueryHandler handles /query requests: one routing decision followed by one
// answer from the selected agent.
type QueryHandler struct {
	registry *agent.Registry
	router   *agent.Router
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(registry *agent.Registry, router *agent.Router, logger *logging.Logger, tracer trace.Tracer) *QueryHandler {
	return &QueryHandler{
		registry: registry,
		router:   router,
		logger:   logger,
		tracer:   tracer,
	}
}

// Handle handles routed query requests
func (qh *QueryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	requestStart := time.Now()
	requestID := uuid.NewString()
	ctx := r.Context()

	ctx, span := qh.tracer.Start(ctx, "query.Handle",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", "/query"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	// Whatever goes wrong past request parsing, the caller gets the
	// conversational error envelope rather than a bare 500.
	defer func() {
		if rec := recover(); rec != nil {
			qh.logger.Error("Panic while processing query %s: %v", requestID, rec)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = writeJSON(w, AgentReply{
				AgentName: "error",
				Response:  fmt.Sprintf("An error occurred: %v", rec),
				Status:    "error",
			})
		}
	}()

	req, err := qh.parseRequest(r)
	if err != nil {
		span.RecordError(err)
		qh.logger.Warn("Invalid request: %v", err)
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	logger := qh.logger.WithFields(
		logging.Field("request_id", requestID),
		logging.Field("user_id", req.UserID),
	)
	logger.Info("Received query (%d bytes)", len(req.Query))

	selected := qh.router.Route(ctx, req.Query)
	logger.Info("Routed to: %s", selected)
	span.SetAttributes(attribute.String("routing.agent", selected))

	// Route always returns a registry key; the fallback covers a registry
	// that was built without the router's enumeration.
	a, ok := qh.registry.Lookup(selected)
	if !ok {
		logger.Warn("Routed agent %s not registered, using default", selected)
		a = qh.registry.Default()
		selected = a.Name()
	}

	response := a.Answer(ctx, req.Query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, AgentReply{
		AgentName: selected,
		Response:  response,
		Status:    "success",
	})

	logger.Debug("Query completed: agent=%s, duration=%s", selected, time.Since(requestStart))
}

// parseRequest decodes and validates the request body. The user identifier
// defaults when absent; the query must be non-empty.
func (qh *QueryHandler) parseRequest(r *http.Request) (*QueryRequest, error) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if req.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}
	return &req, nil
}
