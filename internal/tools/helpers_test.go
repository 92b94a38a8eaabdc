package tools

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

func newTestServerContext(t *testing.T, client ndb.Client, opts ...server.Option) (*server.ServerContext, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	base := []server.Option{server.WithNDBClient(client), server.WithLogger(logger)}
	sc, err := server.NewServerContext(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc, &buf
}

type listClustersArgs struct {
	ListArgs
}

func listClustersTool() Tool {
	return Tool{
		Definition: mcp.NewTool("ndb_list_clusters", mcp.WithDescription("List clusters")),
		Entity:     output.EntityCluster,
		Handler: Bind(func(ctx context.Context, sc *server.ServerContext, args *listClustersArgs) (any, error) {
			return List(ctx, sc, output.EntityCluster, ndb.Get("/clusters"), args.ListArgs)
		}),
	}
}

func deleteCloneTool() Tool {
	return Tool{
		Definition: mcp.NewTool("ndb_delete_clone", mcp.WithDescription("Delete a clone")),
		Entity:     output.EntityClone,
		Mutating:   true,
		Handler: Bind(func(ctx context.Context, sc *server.ServerContext, args *GetArgs) (any, error) {
			return Mutate(ctx, sc, ndb.Delete("/clones/"+ndb.PathID(args.ID), Payload{}.Set("delete", true)))
		}),
	}
}

func clusterFixture() []any {
	return []any{
		map[string]any{"id": "c1", "name": "alpha", "status": "UP", "hypervisorType": "AHV", "internal": "x"},
		map[string]any{"id": "c2", "name": "beta", "status": "DOWN", "hypervisorType": "AHV", "internal": "y"},
	}
}
