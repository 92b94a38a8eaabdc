// Package users provides read access to NDB users.
package users

import (
	"context"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Tools returns the user tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_users", "List NDB users.", tools.ListParams()),
			Entity:     output.EntityUser,
			Handler:    tools.Bind(handleListUsers),
		},
		{
			Definition: tools.NewTool("ndb_get_user", "Get an NDB user by ID.", tools.GetParams("user", false)),
			Entity:     output.EntityUser,
			Handler:    tools.Bind(handleGetUser),
		},
	}
}

func handleListUsers(ctx context.Context, sc *server.ServerContext, args *tools.ListArgs) (any, error) {
	return tools.List(ctx, sc, output.EntityUser, ndb.Get("/users"), *args)
}

func handleGetUser(ctx context.Context, sc *server.ServerContext, args *tools.GetArgs) (any, error) {
	return tools.Get(ctx, sc, output.EntityUser, ndb.Get("/users/"+ndb.PathID(args.ID)))
}
