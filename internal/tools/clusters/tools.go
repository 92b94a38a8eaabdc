// Package clusters provides the Nutanix cluster tools.
package clusters

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListClustersArgs defines the arguments for ndb_list_clusters.
type ListClustersArgs struct {
	tools.ListArgs
	IncludeManagementServerInfo *bool `json:"includeManagementServerInfo,omitempty"`
}

// GetClusterArgs defines the arguments for ndb_get_cluster.
type GetClusterArgs struct {
	tools.IdentifiedArgs
}

// Tools returns the cluster tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_clusters",
				"List Nutanix clusters registered with NDB.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("includeManagementServerInfo", mcp.Description("Include management server details")),
				},
			),
			Entity:  output.EntityCluster,
			Handler: tools.Bind(handleListClusters),
		},
		{
			Definition: tools.NewTool("ndb_get_cluster",
				"Get a Nutanix cluster by ID or name.",
				tools.GetParams("cluster", true),
			),
			Entity:  output.EntityCluster,
			Handler: tools.Bind(handleGetCluster),
		},
	}
}

func handleListClusters(ctx context.Context, sc *server.ServerContext, args *ListClustersArgs) (any, error) {
	req := ndb.Get("/clusters").
		WithBoolQuery("include-management-server-info", args.IncludeManagementServerInfo)
	return tools.List(ctx, sc, output.EntityCluster, req, args.ListArgs)
}

func handleGetCluster(ctx context.Context, sc *server.ServerContext, args *GetClusterArgs) (any, error) {
	return tools.Get(ctx, sc, output.EntityCluster, ndb.Get(args.Path("/clusters")))
}
