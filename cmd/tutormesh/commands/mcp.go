package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/logging"
	"github.com/tutormesh/tutormesh/internal/mcp"
	"github.com/tutormesh/tutormesh/internal/model"
)

var (
	mcpTransport    string
	mcpHTTPAddr     string
	mcpProvider     string
	mcpModelName    string
	mcpMaxTokens    int
	mcpModelTimeout time.Duration
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start a standalone MCP server",
	Long: `Start a standalone Model Context Protocol server exposing the agents
as tools, over stdio or streamable HTTP.`,
	Run: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport type: 'stdio' or 'http'")
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http-addr", ":8001", "Listen address for the http transport")
	mcpCmd.Flags().StringVar(&mcpProvider, "provider", "gemini", "Model backend: gemini, anthropic or mock")
	mcpCmd.Flags().StringVar(&mcpModelName, "model", "gemini-2.0-flash", "Model identifier passed to the provider")
	mcpCmd.Flags().IntVar(&mcpMaxTokens, "max-tokens", 1024, "Generation length cap for providers that require it")
	mcpCmd.Flags().DurationVar(&mcpModelTimeout, "model-timeout", 60*time.Second, "Upper bound for each model call (0 disables)")
}

func runMCP(cmd *cobra.Command, args []string) {
	if err := setupLog(logLevelFlags); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("mcp-server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := model.New(ctx, model.Config{
		Provider:  mcpProvider,
		Model:     mcpModelName,
		MaxTokens: mcpMaxTokens,
		Timeout:   mcpModelTimeout,
	})
	if err != nil {
		HandleError(err, "Model client initialization error")
	}

	registry, err := agent.NewRegistry(agent.DefaultDefinitions(), client)
	if err != nil {
		HandleError(err, "Agent registry initialization error")
	}
	router := agent.NewRouter(registry, client, nil)

	mcpServer := mcp.NewServer(registry, router, Version)

	switch mcpTransport {
	case "http":
		logger.Info("Starting MCP HTTP server on %s (endpoint: %s)", mcpHTTPAddr, mcp.EndpointPath)

		handler := mcpServer.HTTPHandler()
		httpSrv := &http.Server{
			Addr:              mcpHTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case sig := <-sigCh:
			logger.Info("Received signal: %v, shutting down...", sig)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error during shutdown: %v", err)
			}
		case err := <-errCh:
			HandleError(err, "MCP HTTP server error")
		}

	case "stdio":
		logger.Info("Starting stdio transport")
		if err := mcpServer.ServeStdio(); err != nil {
			logger.Error("Stdio transport error: %v", err)
		}

	default:
		logger.Fatal("Invalid transport type: %s (must be 'http' or 'stdio')", mcpTransport)
	}

	logger.Info("Server stopped")
}
