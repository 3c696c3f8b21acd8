package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/logging"
)

// AgentHandler handles /agent/{name} requests: a direct invocation of one
// named agent with no routing call.
type AgentHandler struct {
	registry *agent.Registry
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewAgentHandler creates a new direct invocation handler
func NewAgentHandler(registry *agent.Registry, logger *logging.Logger, tracer trace.Tracer) *AgentHandler {
	return &AgentHandler{
		registry: registry,
		logger:   logger,
		tracer:   tracer,
	}
}

// Handle handles direct agent requests
func (ah *AgentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := strings.TrimPrefix(r.URL.Path, "/agent/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Agent name is required")
		return
	}

	ctx, span := ah.tracer.Start(ctx, "agent.Handle",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.route", "/agent/{name}"),
			attribute.String("agent.name", name),
		),
	)
	defer span.End()

	// The existence check comes before body parsing so an unknown name
	// never costs a model call.
	a, ok := ah.registry.Lookup(name)
	if !ok {
		ah.logger.Warn("Unknown agent requested: %s", name)
		writeError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Agent '%s' not found", name))
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		ah.logger.Warn("Invalid request: %v", err)
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}

	response := a.Answer(ctx, req.Query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = writeJSON(w, AgentReply{
		AgentName: name,
		Response:  response,
		Status:    "success",
	})
}
