package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutormesh/tutormesh/internal/model"
)

func TestRouteValidLabel(t *testing.T) {
	client := model.NewMockClient("").EnqueueResponse("code_analyzer")
	r := newTestRegistry(t, client)
	router := NewRouter(r, client, nil)

	got := router.Route(context.Background(), "def foo(): return 1/0 - review this")
	assert.Equal(t, "code_analyzer", got)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "def foo(): return 1/0")
}

func TestRouteNormalizesWhitespaceAndCase(t *testing.T) {
	client := model.NewMockClient("").EnqueueResponse("  Exam_Prep \n")
	r := newTestRegistry(t, client)
	router := NewRouter(r, client, nil)

	assert.Equal(t, "exam_prep", router.Route(context.Background(), "quiz me on SQL"))
}

func TestRouteInvalidOutputsDefault(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"librarian_agent",
		"tutor_agent is the best choice",
		"tutor_agent.",
		"I think you should use the tutor agent",
	}

	for _, output := range invalid {
		client := model.NewMockClient("").EnqueueResponse(output)
		r := newTestRegistry(t, client)
		router := NewRouter(r, client, nil)

		got := router.Route(context.Background(), "anything")
		assert.Equalf(t, DefaultAgent, got, "model output %q", output)
	}
}

func TestRouteModelFailureReturnsDefault(t *testing.T) {
	client := model.NewMockClient("").EnqueueError(errors.New("connection refused"))
	r := newTestRegistry(t, client)
	router := NewRouter(r, client, nil)

	assert.Equal(t, DefaultAgent, router.Route(context.Background(), "anything"))
}

func TestRouteNeverSelectsGreetingAgent(t *testing.T) {
	client := model.NewMockClient("").EnqueueResponse(GreetingAgent)
	r := newTestRegistry(t, client)
	router := NewRouter(r, client, nil)

	// greeting_agent is a registry key but not part of the routing
	// enumeration, so it counts as an invalid label.
	assert.Equal(t, DefaultAgent, router.Route(context.Background(), "hello"))
}

func TestRouteAlwaysYieldsRegistryKey(t *testing.T) {
	outputs := []string{"tutor_agent", "garbage", "", "analytics_agent", "CAREER_AGENT"}
	for _, output := range outputs {
		client := model.NewMockClient("").EnqueueResponse(output)
		r := newTestRegistry(t, client)
		router := NewRouter(r, client, nil)

		got := router.Route(context.Background(), "q")
		_, ok := r.Lookup(got)
		assert.Truef(t, ok, "Route returned %q for model output %q, not a registry key", got, output)
	}
}
