// Package server provides the ServerContext pattern and related infrastructure
// for the MCP NDB server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - Health checks: /healthz, /readyz and /healthz/detailed for HTTP transports
//   - MetricsServer: a dedicated Prometheus scrape listener
//
// The ServerContext holds the NDB client, the slog logger, the output processor
// and the instrumentation provider. It is constructed once at startup and shared
// by every tool invocation:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithNDBClient(gateway),
//		server.WithLogger(logger),
//		server.WithReadOnly(true),
//		server.WithToolFilter(allowed, denied),
//	)
//	if err != nil {
//		return err
//	}
//	defer sc.Shutdown()
//
// Shutdown cancels the server context, which abandons in-flight NDB requests.
package server
