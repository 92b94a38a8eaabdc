package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	ndbClient ndb.Client
	logger    *slog.Logger
	config    *Config

	outputProcessor         *output.Processor
	instrumentationProvider *instrumentation.Provider
	auditLogger             *instrumentation.AuditLogger

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	if sc.outputProcessor == nil {
		sc.outputProcessor = output.NewProcessor(output.DefaultConfig(), nil)
	}
	sc.auditLogger = instrumentation.NewAuditLogger(sc.logger)

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// NDBClient returns the NDB API client shared by all tool invocations.
func (sc *ServerContext) NDBClient() ndb.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ndbClient
}

// Logger returns the logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// OutputProcessor returns the processor applied to tool results.
func (sc *ServerContext) OutputProcessor() *output.Processor {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.outputProcessor
}

// InstrumentationProvider returns the OpenTelemetry provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Metrics returns the metric instruments, or nil when instrumentation is not configured.
// All recording methods on a nil *Metrics are no-ops.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.InstrumentationProvider().Metrics()
}

// AuditLogger returns the tool invocation audit logger.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// ReadOnly reports whether mutating tools are refused.
func (sc *ServerContext) ReadOnly() bool {
	return sc.Config().ReadOnly
}

// Shutdown gracefully shuts down the server context.
// This cancels the context, which abandons in-flight NDB calls.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.ndbClient == nil {
		return ErrMissingNDBClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// NDBHost is the sanitized NDB server address, reported by health checks.
	NDBHost string `json:"ndbHost"`

	// ReadOnly refuses every mutating tool.
	ReadOnly bool `json:"readOnly"`

	// AllowedTools, when non-empty, is the only set of tools exposed.
	// DeniedTools are never exposed and take precedence.
	AllowedTools []string `json:"allowedTools,omitempty"`
	DeniedTools  []string `json:"deniedTools,omitempty"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "mcp-ndb",
		Version:    "dev",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.AllowedTools != nil {
		clone.AllowedTools = make([]string, len(c.AllowedTools))
		copy(clone.AllowedTools, c.AllowedTools)
	}
	if c.DeniedTools != nil {
		clone.DeniedTools = make([]string, len(c.DeniedTools))
		copy(clone.DeniedTools, c.DeniedTools)
	}

	return &clone
}
