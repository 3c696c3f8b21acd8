package agent

import (
	"context"
	"strings"

	"github.com/tutormesh/tutormesh/internal/logging"
	"github.com/tutormesh/tutormesh/internal/metrics"
	"github.com/tutormesh/tutormesh/internal/model"
)

// Router is the distinguished agent whose output is constrained to the
// routing enumeration. Route never fails and always returns a valid
// registry key: any invalid model output or model failure collapses to
// DefaultAgent.
type Router struct {
	client   model.Client
	routable map[string]struct{}
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewRouter creates a router over the registry's routing enumeration.
// Metrics may be nil.
func NewRouter(registry *Registry, client model.Client, m *metrics.Metrics) *Router {
	routable := make(map[string]struct{})
	for _, name := range registry.RoutableNames() {
		routable[name] = struct{}{}
	}
	return &Router{
		client:   client,
		routable: routable,
		metrics:  m,
		logger:   logging.GetLogger("router"),
	}
}

// Route classifies the query into one of the routable agent names.
// The raw model output is trimmed and lowercased, then checked for exact
// membership in the enumeration; no fuzzy or containment matching. Unknown
// words, multi-word output, empty output and hard model failures all yield
// DefaultAgent.
func (r *Router) Route(ctx context.Context, query string) string {
	prompt := strings.ReplaceAll(routingPromptTemplate, QuerySlot, query)

	raw, err := r.client.Generate(ctx, prompt)
	if err != nil {
		r.logger.Error("routing call failed, using default %s: %v", DefaultAgent, err)
		r.countFallback("model_error")
		r.countDecision(DefaultAgent)
		return DefaultAgent
	}

	label := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := r.routable[label]; !ok {
		r.logger.Warn("router produced invalid label %q, using default %s", label, DefaultAgent)
		r.countFallback("invalid_label")
		label = DefaultAgent
	}
	r.countDecision(label)
	return label
}

func (r *Router) countDecision(agent string) {
	if r.metrics != nil {
		r.metrics.RoutingDecisions.WithLabelValues(agent).Inc()
	}
}

func (r *Router) countFallback(reason string) {
	if r.metrics != nil {
		r.metrics.RoutingFallbacks.WithLabelValues(reason).Inc()
	}
}
