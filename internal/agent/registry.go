// Package agent implements the named prompt-template agents, the registry
// they live in, and the router that picks one per query.
package agent

import (
	"fmt"
	"strings"

	"github.com/tutormesh/tutormesh/internal/model"
)

const (
	// DefaultAgent is the fallback whenever routing cannot produce a valid
	// agent name. It is always a registry key.
	DefaultAgent = "tutor_agent"

	// GreetingAgent is registered but excluded from the routing enumeration;
	// it is only reachable via direct invocation.
	GreetingAgent = "greeting_agent"
)

// Definition is an immutable (name, description, template) triple. The
// template carries at most one QuerySlot.
type Definition struct {
	Name        string
	Description string
	Template    string
}

// DefaultDefinitions returns the built-in agent table in listing order.
func DefaultDefinitions() []Definition {
	return []Definition{
		{GreetingAgent, "Welcomes users and introduces the platform", greetingPrompt},
		{"tutor_agent", "Explains concepts step-by-step", tutorPrompt},
		{"code_analyzer", "Reviews and provides feedback on code", codeAnalyzerPrompt},
		{"exam_prep", "Generates quizzes and study materials", examPrepPrompt},
		{"language_agent", "Helps with grammar, vocabulary, and translations", languagePrompt},
		{"career_agent", "Provides career guidance and course recommendations", careerPrompt},
		{"analytics_agent", "Tracks progress and provides performance insights", analyticsPrompt},
	}
}

// Registry maps agent names to agents. It is built once at startup and
// read-only afterwards, so concurrent request handling needs no locking.
type Registry struct {
	agents map[string]*Agent
	order  []string
}

// NewRegistry builds a registry over the given definitions, all sharing one
// model client. The default agent and the greeting agent must be present.
func NewRegistry(defs []Definition, client model.Client) (*Registry, error) {
	r := &Registry{agents: make(map[string]*Agent, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("agent definition with empty name")
		}
		if _, exists := r.agents[def.Name]; exists {
			return nil, fmt.Errorf("duplicate agent name: %s", def.Name)
		}
		if def.Name != GreetingAgent && !strings.Contains(def.Template, QuerySlot) {
			return nil, fmt.Errorf("agent %s: template is missing the %s slot", def.Name, QuerySlot)
		}
		r.agents[def.Name] = newAgent(def, client)
		r.order = append(r.order, def.Name)
	}

	if _, ok := r.agents[DefaultAgent]; !ok {
		return nil, fmt.Errorf("registry is missing the default agent %s", DefaultAgent)
	}
	if _, ok := r.agents[GreetingAgent]; !ok {
		return nil, fmt.Errorf("registry is missing the greeting agent %s", GreetingAgent)
	}
	return r, nil
}

// Lookup returns the agent with the given name.
func (r *Registry) Lookup(name string) (*Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Default returns the fallback agent.
func (r *Registry) Default() *Agent {
	return r.agents[DefaultAgent]
}

// Names returns all agent names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// List returns all agent definitions in registration order.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.agents[name].def)
	}
	return defs
}

// RoutableNames returns the routing enumeration: every registered name
// except the greeting agent, in registration order.
func (r *Registry) RoutableNames() []string {
	names := make([]string, 0, len(r.order)-1)
	for _, name := range r.order {
		if name != GreetingAgent {
			names = append(names, name)
		}
	}
	return names
}
