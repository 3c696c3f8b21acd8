package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tutormesh/tutormesh/internal/agent"
)

// Tool defines the interface for tool implementations registered with the
// MCP server.
type Tool interface {
	Execute(ctx context.Context, input json.RawMessage) (interface{}, error)
}

// AskInput represents the input for the ask tool
type AskInput struct {
	Query string `json:"query"`
}

// AskResult is the output of the ask and ask_agent tools.
type AskResult struct {
	AgentName string `json:"agent_name"`
	Response  string `json:"response"`
}

// AskTool implements the ask MCP tool: route the query, then answer with the
// selected agent.
type AskTool struct {
	registry *agent.Registry
	router   *agent.Router
}

// NewAskTool creates a new ask tool
func NewAskTool(registry *agent.Registry, router *agent.Router) *AskTool {
	return &AskTool{registry: registry, router: router}
}

// Execute implements Tool
func (t *AskTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in AskInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	name := t.router.Route(ctx, in.Query)
	a, ok := t.registry.Lookup(name)
	if !ok {
		a = t.registry.Default()
		name = a.Name()
	}

	return AskResult{AgentName: name, Response: a.Answer(ctx, in.Query)}, nil
}

// AskAgentInput represents the input for the ask_agent tool
type AskAgentInput struct {
	Agent string `json:"agent"`
	Query string `json:"query"`
}

// AskAgentTool implements the ask_agent MCP tool: direct invocation of one
// named agent, no routing call.
type AskAgentTool struct {
	registry *agent.Registry
}

// NewAskAgentTool creates a new ask_agent tool
func NewAskAgentTool(registry *agent.Registry) *AskAgentTool {
	return &AskAgentTool{registry: registry}
}

// Execute implements Tool
func (t *AskAgentTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var in AskAgentInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	a, ok := t.registry.Lookup(in.Agent)
	if !ok {
		return nil, fmt.Errorf("agent '%s' not found", in.Agent)
	}

	return AskResult{AgentName: in.Agent, Response: a.Answer(ctx, in.Query)}, nil
}

// AgentListing is one entry of the list_agents result.
type AgentListing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListAgentsTool implements the list_agents MCP tool.
type ListAgentsTool struct {
	registry *agent.Registry
}

// NewListAgentsTool creates a new list_agents tool
func NewListAgentsTool(registry *agent.Registry) *ListAgentsTool {
	return &ListAgentsTool{registry: registry}
}

// Execute implements Tool
func (t *ListAgentsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	defs := t.registry.List()
	listing := make([]AgentListing, 0, len(defs))
	for _, def := range defs {
		listing = append(listing, AgentListing{Name: def.Name, Description: def.Description})
	}
	return map[string]interface{}{"agents": listing}, nil
}
