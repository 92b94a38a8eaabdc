package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/server/middleware"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/catalog"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// shutdownTimeout bounds graceful shutdown of the HTTP listeners.
const shutdownTimeout = 30 * time.Second

// addNDBFlags registers the connection flags shared by serve, check and tools.
func addNDBFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("base-url", "", "NDB server URL, e.g. https://ndb.example.com (env NDB_BASE_URL)")
	f.String("username", "", "NDB username (env NDB_USERNAME)")
	f.String("password", "", "NDB password (env NDB_PASSWORD)")
	f.String("token", "", "NDB API token, takes precedence over username and password (env NDB_TOKEN)")
	f.String("timeout", "30s", "Request timeout in milliseconds or as a duration (env NDB_TIMEOUT)")
	f.Bool("verify-ssl", true, "Verify the NDB server certificate (env NDB_VERIFY_SSL)")
	f.Bool("session-tokens", false, "Exchange username and password for a session token (env NDB_SESSION_TOKENS)")
	f.String("allowed-tools", "", "Comma separated tools to expose; empty exposes all (env NDB_ALLOWED_TOOLS)")
	f.String("denied-tools", "", "Comma separated tools to hide; wins over --allowed-tools (env NDB_DENIED_TOOLS)")
	f.Bool("read-only", false, "Refuse every tool that changes NDB state (env NDB_READ_ONLY)")
	f.String("log-level", "info", "Log level: debug, info, warn, error (env NDB_LOG_LEVEL)")
	f.String("log-format", logging.FormatText, "Log format: text or json (env NDB_LOG_FORMAT)")
}

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP NDB server",
		Long: `Start the MCP NDB server to provide tools for Nutanix Database Service
via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Every flag can also be set through an NDB_ prefixed environment variable
(--base-url as NDB_BASE_URL) or a YAML file passed with --config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("password") {
				fmt.Fprintln(os.Stderr, "WARNING: NDB password provided via CLI flag - it may be visible in process listings (ps aux)")
				fmt.Fprintln(os.Stderr, "         For better security, use the NDB_PASSWORD environment variable instead")
			}

			config, err := loadServeConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(config)
		},
	}

	addNDBFlags(cmd)

	// Transport flags
	cmd.Flags().String("transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().String("http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().String("sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().String("message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().String("http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// HTTP hardening flags
	cmd.Flags().String("allowed-origins", "", "Comma separated CORS origins for HTTP transports; empty disables CORS")
	cmd.Flags().Bool("enable-hsts", false, "Send Strict-Transport-Security (only behind TLS)")
	cmd.Flags().Int64("max-request-bytes", middleware.DefaultMaxRequestBytes, "Maximum request body size for HTTP transports; 0 disables the limit")

	// Output flags
	cmd.Flags().Int("max-items", output.DefaultMaxItems, "Maximum records returned by a list tool")
	cmd.Flags().Int("max-response-bytes", output.DefaultMaxResponseBytes, "Maximum size of a tool response in bytes")
	cmd.Flags().Bool("project", true, "Trim records to their summary fields")
	cmd.Flags().Bool("mask-secrets", true, "Redact password, secret and token values in responses")

	// Metrics flags
	cmd.Flags().Bool("metrics", true, "Serve Prometheus metrics on a dedicated listener when instrumentation is enabled")
	cmd.Flags().String("metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

// newLogger builds the process logger on stderr so stdio transport output stays clean.
func newLogger(level, format string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(os.Stderr, lvl, format), nil
}

// newGateway builds the NDB API gateway from the connection settings.
func newGateway(cfg NDBConfig, logger *slog.Logger, metrics *instrumentation.Metrics) (*ndb.Gateway, error) {
	credential, err := cfg.Credential()
	if err != nil {
		return nil, err
	}
	gateway, err := ndb.NewGateway(ndb.Config{
		BaseURL:       cfg.BaseURL,
		Credential:    credential,
		Timeout:       cfg.Timeout,
		VerifySSL:     cfg.VerifySSL,
		SessionTokens: cfg.SessionTokens,
		UserAgent:     "mcp-ndb/" + rootCmd.Version,
		Logger:        logger,
		Metrics:       metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create NDB client: %w", err)
	}
	return gateway, nil
}

// newDispatcher wires the tool catalogue to a server context.
func newDispatcher(ctx context.Context, config ServeConfig, client ndb.Client, logger *slog.Logger, provider *instrumentation.Provider) (*server.ServerContext, *tools.Dispatcher, error) {
	opts := []server.Option{
		server.WithNDBClient(client),
		server.WithLogger(logger),
		server.WithConfig(config.ServerConfig(rootCmd.Version)),
		server.WithOutputConfig(&config.Output),
	}
	if provider != nil {
		opts = append(opts, server.WithInstrumentationProvider(provider))
	}

	sc, err := server.NewServerContext(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create server context: %w", err)
	}

	dispatcher, err := tools.NewDispatcher(sc, catalog.All()...)
	if err != nil {
		_ = sc.Shutdown()
		return nil, nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return sc, dispatcher, nil
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig) error {
	logger, err := newLogger(config.LogLevel, config.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := instrumentationProvider.Shutdown(context.Background()); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	gateway, err := newGateway(config.NDB, logger, instrumentationProvider.Metrics())
	if err != nil {
		return err
	}

	serverContext, dispatcher, err := newDispatcher(shutdownCtx, config, gateway, logger, instrumentationProvider)
	if err != nil {
		return err
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("mcp-ndb", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)
	dispatcher.Register(mcpSrv)

	logger.Info("NDB tools registered",
		logging.Host(config.NDB.BaseURL),
		"tools", len(dispatcher.Tools()),
		"read_only", config.ReadOnly,
		"credential", mustCredentialKind(config.NDB))

	switch config.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportSSE:
		return runSSEServer(shutdownCtx, mcpSrv, config, serverContext, instrumentationProvider)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config, serverContext, instrumentationProvider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}

func mustCredentialKind(cfg NDBConfig) string {
	c, err := cfg.Credential()
	if err != nil {
		return "none"
	}
	return c.Kind()
}
