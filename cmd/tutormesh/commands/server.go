package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutormesh/tutormesh/internal/agent"
	"github.com/tutormesh/tutormesh/internal/api"
	"github.com/tutormesh/tutormesh/internal/config"
	"github.com/tutormesh/tutormesh/internal/lifecycle"
	"github.com/tutormesh/tutormesh/internal/logging"
	"github.com/tutormesh/tutormesh/internal/mcp"
	"github.com/tutormesh/tutormesh/internal/metrics"
	"github.com/tutormesh/tutormesh/internal/model"
	"github.com/tutormesh/tutormesh/internal/tracing"
)

var (
	configPath         string
	host               string
	apiPort            int
	provider           string
	modelName          string
	maxTokens          int
	modelTimeout       time.Duration
	promptsPath        string
	tracingEnabled     bool
	tracingEndpoint    string
	tracingTLSInsecure bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the TutorMesh server",
	Long: `Start the TutorMesh server which routes incoming queries to the
best-suited agent and answers them with the configured model backend.`,
	Run: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file (optional; flags override it)")
	serverCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Address the API server binds to")
	serverCmd.Flags().IntVar(&apiPort, "api-port", 8000, "Port the API server listens on")
	serverCmd.Flags().StringVar(&provider, "provider", "gemini", "Model backend: gemini, anthropic or mock")
	serverCmd.Flags().StringVar(&modelName, "model", "gemini-2.0-flash", "Model identifier passed to the provider")
	serverCmd.Flags().IntVar(&maxTokens, "max-tokens", 1024, "Generation length cap for providers that require it")
	serverCmd.Flags().DurationVar(&modelTimeout, "model-timeout", 60*time.Second, "Upper bound for each model call (0 disables)")
	serverCmd.Flags().StringVar(&promptsPath, "prompts-config", "", "Path to a YAML file with prompt template overrides (optional)")
	serverCmd.Flags().BoolVar(&tracingEnabled, "tracing-enabled", false, "Enable OpenTelemetry tracing (default: false)")
	serverCmd.Flags().StringVar(&tracingEndpoint, "tracing-endpoint", "", "OTLP gRPC endpoint for traces (e.g., collector:4317)")
	serverCmd.Flags().BoolVar(&tracingTLSInsecure, "tracing-tls-insecure", false, "Skip TLS certificate verification (insecure, use only for testing)")
}

// loadConfig merges the optional config file with CLI flags. A flag the user
// set explicitly wins over the file value.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	flagSet := func(name string) bool { return cmd.Flags().Changed(name) }
	if configPath == "" || flagSet("host") {
		cfg.Host = host
	}
	if configPath == "" || flagSet("api-port") {
		cfg.APIPort = apiPort
	}
	if configPath == "" || flagSet("provider") {
		cfg.Provider = provider
	}
	if configPath == "" || flagSet("model") {
		cfg.Model = modelName
	}
	if configPath == "" || flagSet("max-tokens") {
		cfg.MaxTokens = maxTokens
	}
	if configPath == "" || flagSet("model-timeout") {
		cfg.ModelTimeout = modelTimeout
	}
	if flagSet("prompts-config") {
		cfg.PromptsPath = promptsPath
	}
	if flagSet("tracing-enabled") {
		cfg.TracingEnabled = tracingEnabled
	}
	if flagSet("tracing-endpoint") {
		cfg.TracingEndpoint = tracingEndpoint
	}
	if flagSet("tracing-tls-insecure") {
		cfg.TracingTLSInsecure = tracingTLSInsecure
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		HandleError(err, "Configuration error")
	}
	if err := cfg.Validate(); err != nil {
		HandleError(err, "Configuration error")
	}

	if err := setupLog(logLevelFlags); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("server")

	logger.Info("Starting TutorMesh v%s", Version)
	logger.Debug("Configuration loaded: Host=%s, APIPort=%d, Provider=%s, Model=%s",
		cfg.Host, cfg.APIPort, cfg.Provider, cfg.Model)

	manager := lifecycle.NewManager()

	m := metrics.New()

	tracingProvider, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.TracingEnabled,
		Endpoint:    cfg.TracingEndpoint,
		TLSInsecure: cfg.TracingTLSInsecure,
		ServiceName: "tutormesh",
		Version:     Version,
	})
	if err != nil {
		logger.Warn("Failed to initialize tracing (continuing without tracing): %v", err)
		tracingProvider, _ = tracing.NewProvider(tracing.Config{})
	}
	if err := manager.Register(tracingProvider); err != nil {
		HandleError(err, "Tracing registration error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := model.New(ctx, model.Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.ModelTimeout,
	})
	if err != nil {
		HandleError(err, "Model client initialization error")
	}
	client = model.WithMetrics(client, m)
	logger.Info("Model client created: provider=%s, model=%s", client.Name(), client.Model())

	defs := agent.DefaultDefinitions()
	if cfg.PromptsPath != "" {
		defs, err = agent.LoadOverrides(cfg.PromptsPath, defs)
		if err != nil {
			HandleError(err, "Prompt overrides error")
		}
		logger.Info("Prompt overrides loaded from %s", cfg.PromptsPath)
	}

	registry, err := agent.NewRegistry(defs, client)
	if err != nil {
		HandleError(err, "Agent registry initialization error")
	}
	router := agent.NewRouter(registry, client, m)
	logger.Info("Agent registry created with %d agents", len(registry.Names()))

	mcpServer := mcp.NewServer(registry, router, Version)

	apiServer := api.New(api.Options{
		Host:       cfg.Host,
		Port:       cfg.APIPort,
		Version:    Version,
		Registry:   registry,
		Router:     router,
		Metrics:    m,
		Tracing:    tracingProvider,
		MCPHandler: mcpServer.HTTPHandler(),
	})
	if err := manager.Register(apiServer, tracingProvider); err != nil {
		HandleError(err, "API server registration error")
	}

	if err := manager.Start(ctx); err != nil {
		HandleError(err, "Startup error")
	}
	logger.Info("TutorMesh started, listening on %s:%d", cfg.Host, cfg.APIPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received signal: %v, shutting down gracefully...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := manager.Stop(shutdownCtx); err != nil {
		logger.Error("Shutdown error: %v", err)
	}
	logger.Info("Shutdown complete")
}
