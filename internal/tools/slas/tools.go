// Package slas provides the SLA tools. An SLA sets how long a time machine
// keeps continuous logs and daily through yearly snapshots.
package slas

import (
	"context"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Tools returns the SLA tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_slas",
				"List SLAs and their retention settings.",
				tools.ListParams(),
			),
			Entity:  output.EntitySLA,
			Handler: tools.Bind(handleListSLAs),
		},
		{
			Definition: tools.NewTool("ndb_get_sla",
				"Get an SLA by ID or name.",
				tools.GetParams("SLA", true),
			),
			Entity:  output.EntitySLA,
			Handler: tools.Bind(handleGetSLA),
		},
	}
}

func handleListSLAs(ctx context.Context, sc *server.ServerContext, args *tools.ListArgs) (any, error) {
	return tools.List(ctx, sc, output.EntitySLA, ndb.Get("/slas"), *args)
}

func handleGetSLA(ctx context.Context, sc *server.ServerContext, args *tools.IdentifiedArgs) (any, error) {
	return tools.Get(ctx, sc, output.EntitySLA, ndb.Get(args.Path("/slas")))
}
