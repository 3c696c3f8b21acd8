// Package mcp exposes the agent platform over the Model Context Protocol,
// both as a streamable HTTP endpoint and over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/logging"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/v1/mcp"

// Server wraps the mcp-go server with the platform's tool set.
type Server struct {
	mcpServer *server.MCPServer
	tools     map[string]Tool
	logger    *logging.Logger
}

// NewServer creates an MCP server exposing ask, ask_agent and list_agents.
func NewServer(registry *agent.Registry, router *agent.Router, version string) *Server {
	mcpServer := server.NewMCPServer(
		"TutorMesh MCP Server",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		tools:     make(map[string]Tool),
		logger:    logging.GetLogger("mcp"),
	}

	s.registerTool(
		"ask",
		"Ask the tutoring platform a question; it is routed to the best-suited agent",
		NewAskTool(registry, router),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question or request to answer",
				},
			},
			"required": []string{"query"},
		},
	)

	s.registerTool(
		"ask_agent",
		"Ask one specific agent directly, bypassing routing",
		NewAskAgentTool(registry),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"agent": map[string]interface{}{
					"type":        "string",
					"description": "Agent name, one of the names returned by list_agents",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question or request to answer",
				},
			},
			"required": []string{"agent", "query"},
		},
	)

	s.registerTool(
		"list_agents",
		"List all available agents with their descriptions",
		NewListAgentsTool(registry),
		map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	)

	return s
}

func (s *Server) registerTool(name, description string, tool Tool, inputSchema map[string]interface{}) {
	s.tools[name] = tool

	schemaJSON, err := json.Marshal(inputSchema)
	if err != nil {
		// This should never happen with well-formed schemas
		panic(fmt.Sprintf("Failed to marshal schema for tool %s: %v", name, err))
	}

	mcpTool := mcp.NewToolWithRawSchema(name, description, schemaJSON)
	s.mcpServer.AddTool(mcpTool, s.createToolHandler(name, tool))
}

func (s *Server) createToolHandler(name string, tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		s.logger.Debug("Executing tool %s", name)
		result, err := tool.Execute(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}

		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

// ExecuteTool runs a registered tool directly, bypassing the MCP transport.
// Used by tests and internal callers.
func (s *Server) ExecuteTool(ctx context.Context, name string, input json.RawMessage) (interface{}, error) {
	tool, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return tool.Execute(ctx, input)
}

// ToolNames returns the registered tool names.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	return names
}

// HTTPHandler returns a stateless streamable HTTP handler for mounting into
// an existing mux.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath(EndpointPath),
		server.WithStateLess(true),
	)
}

// ServeStdio blocks serving the MCP protocol over stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
