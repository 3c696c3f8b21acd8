package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tutormesh/tutormesh/internal/logging"
	"github.com/tutormesh/tutormesh/internal/model"
)

// Agent pairs a definition with the shared model client. Its one operation,
// Answer, is total: model failures are converted to apology text instead of
// being returned as errors, so conversational callers never see a transport
// fault.
type Agent struct {
	def    Definition
	client model.Client
	logger *logging.Logger
}

func newAgent(def Definition, client model.Client) *Agent {
	return &Agent{
		def:    def,
		client: client,
		logger: logging.GetLogger("agent").WithField("agent", def.Name),
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.def.Name
}

// Description returns the agent's one-line description.
func (a *Agent) Description() string {
	return a.def.Description
}

// Answer substitutes the query into the agent's template and runs one model
// call. A failed call yields an apologetic message as an ordinary return
// value; Answer never propagates the failure.
func (a *Agent) Answer(ctx context.Context, query string) string {
	prompt := a.buildPrompt(query)

	text, err := a.client.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("model call failed: %v", err)
		return fmt.Sprintf("I apologize, but I encountered an error: %v", err)
	}
	return text
}

// buildPrompt fills the template's query slot. Templates without a slot
// (the greeting agent) are used as-is.
func (a *Agent) buildPrompt(query string) string {
	return strings.ReplaceAll(a.def.Template, QuerySlot, query)
}
