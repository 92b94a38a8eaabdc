package cmd

import (
	"context"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/server"
)

// runSSEServer runs the server with SSE transport
func runSSEServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, config ServeConfig, sc *server.ServerContext, provider *instrumentation.Provider) error {
	sseServer := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint(config.SSEEndpoint),
		mcpserver.WithMessageEndpoint(config.MessageEndpoint),
	)

	mux := http.NewServeMux()
	mux.Handle(config.SSEEndpoint, sseServer)
	mux.Handle(config.MessageEndpoint, sseServer)

	sc.Logger().Debug("SSE server configured",
		"sse_endpoint", config.SSEEndpoint,
		"message_endpoint", config.MessageEndpoint)
	sc.Logger().Info("SSE server starting", "addr", config.HTTPAddr)

	return serveHTTP(ctx, mux, config, sc, provider, sseServer.Shutdown)
}
