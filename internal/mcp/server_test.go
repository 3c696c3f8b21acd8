package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/model"
)

func newTestMCPServer(t *testing.T, client *model.MockClient) *Server {
	t.Helper()
	registry, err := agent.NewRegistry(agent.DefaultDefinitions(), client)
	require.NoError(t, err)
	return NewServer(registry, agent.NewRouter(registry, client, nil), "test")
}

func TestToolRegistration(t *testing.T) {
	srv := newTestMCPServer(t, model.NewMockClient(""))
	assert.ElementsMatch(t, []string{"ask", "ask_agent", "list_agents"}, srv.ToolNames())
}

func TestAskToolRoutesAndAnswers(t *testing.T) {
	client := model.NewMockClient("")
	client.EnqueueResponse("exam_prep").EnqueueResponse("question 1: define entropy")
	srv := newTestMCPServer(t, client)

	raw, err := srv.ExecuteTool(context.Background(), "ask", json.RawMessage(`{"query":"quiz me on thermodynamics"}`))
	require.NoError(t, err)

	result, ok := raw.(AskResult)
	require.True(t, ok)
	assert.Equal(t, "exam_prep", result.AgentName)
	assert.Equal(t, "question 1: define entropy", result.Response)
	assert.Equal(t, 2, client.CallCount())
}

func TestAskToolRejectsEmptyQuery(t *testing.T) {
	client := model.NewMockClient("")
	srv := newTestMCPServer(t, client)

	_, err := srv.ExecuteTool(context.Background(), "ask", json.RawMessage(`{"query":""}`))
	require.Error(t, err)
	assert.Zero(t, client.CallCount())
}

func TestAskAgentTool(t *testing.T) {
	client := model.NewMockClient("")
	client.EnqueueResponse("bonjour means hello")
	srv := newTestMCPServer(t, client)

	raw, err := srv.ExecuteTool(context.Background(), "ask_agent",
		json.RawMessage(`{"agent":"language_agent","query":"translate bonjour"}`))
	require.NoError(t, err)

	result := raw.(AskResult)
	assert.Equal(t, "language_agent", result.AgentName)
	assert.Equal(t, "bonjour means hello", result.Response)
	assert.Equal(t, 1, client.CallCount(), "direct invocation skips routing")
}

func TestAskAgentToolUnknownAgent(t *testing.T) {
	client := model.NewMockClient("")
	srv := newTestMCPServer(t, client)

	_, err := srv.ExecuteTool(context.Background(), "ask_agent",
		json.RawMessage(`{"agent":"mystery_agent","query":"hi"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery_agent")
	assert.Zero(t, client.CallCount())
}

func TestListAgentsTool(t *testing.T) {
	client := model.NewMockClient("")
	srv := newTestMCPServer(t, client)

	raw, err := srv.ExecuteTool(context.Background(), "list_agents", json.RawMessage(`{}`))
	require.NoError(t, err)

	result := raw.(map[string]interface{})
	listing := result["agents"].([]AgentListing)
	assert.Len(t, listing, 7)
	assert.Zero(t, client.CallCount())
}

func TestUnknownTool(t *testing.T) {
	srv := newTestMCPServer(t, model.NewMockClient(""))
	_, err := srv.ExecuteTool(context.Background(), "nope", json.RawMessage(`{}`))
	require.Error(t, err)
}

func TestHTTPHandlerIsMountable(t *testing.T) {
	srv := newTestMCPServer(t, model.NewMockClient(""))
	assert.NotNil(t, srv.HTTPHandler())
}
