// Package alerts provides the alert tools.
package alerts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListAlertsArgs defines the arguments for ndb_list_alerts.
type ListAlertsArgs struct {
	tools.ListArgs
	Resolved *bool  `json:"resolved,omitempty"`
	EntityID string `json:"entityId,omitempty"`
}

// Tools returns the alert tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_alerts",
				"List NDB alerts.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("resolved", mcp.Description("Only resolved (true) or unresolved (false) alerts")),
					mcp.WithString("entityId", mcp.Description("Only alerts raised for this entity")),
				},
			),
			Entity:  output.EntityAlert,
			Handler: tools.Bind(handleListAlerts),
		},
		{
			Definition: tools.NewTool("ndb_get_alert",
				"Get an alert by ID.",
				tools.GetParams("alert", false),
			),
			Entity:  output.EntityAlert,
			Handler: tools.Bind(handleGetAlert),
		},
	}
}

func handleListAlerts(ctx context.Context, sc *server.ServerContext, args *ListAlertsArgs) (any, error) {
	req := ndb.Get("/alerts").
		WithBoolQuery("resolved", args.Resolved).
		WithQuery("entity-id", args.EntityID)
	return tools.List(ctx, sc, output.EntityAlert, req, args.ListArgs)
}

func handleGetAlert(ctx context.Context, sc *server.ServerContext, args *tools.GetArgs) (any, error) {
	return tools.Get(ctx, sc, output.EntityAlert, ndb.Get("/alerts/"+ndb.PathID(args.ID)))
}
