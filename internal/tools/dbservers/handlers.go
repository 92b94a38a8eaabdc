package dbservers

import (
	"context"
	"strings"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Validate implements tools.Validator.
func (a *GetDBServerArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return tools.Missing("id")
	}
	if a.ValueType == "" {
		a.ValueType = "id"
		return nil
	}
	vt, err := tools.OneOf("valueType", a.ValueType, "id", "name", "ip")
	a.ValueType = vt
	return err
}

func (a *GetDBServerArgs) path() string {
	if a.ValueType == "id" {
		return "/dbservers/" + ndb.PathID(a.ID)
	}
	return "/dbservers/" + a.ValueType + "/" + ndb.PathID(a.ID)
}

func handleListDBServers(ctx context.Context, sc *server.ServerContext, args *ListDBServersArgs) (any, error) {
	req := ndb.Get("/dbservers").
		WithBoolQuery("load-databases", args.LoadDatabases).
		WithBoolQuery("load-clones", args.LoadClones).
		WithBoolQuery("detailed", args.Detailed)
	return tools.List(ctx, sc, output.EntityDBServer, req, args.ListArgs)
}

func handleGetDBServer(ctx context.Context, sc *server.ServerContext, args *GetDBServerArgs) (any, error) {
	req := ndb.Get(args.path()).
		WithBoolQuery("load-databases", args.LoadDatabases).
		WithBoolQuery("load-clones", args.LoadClones).
		WithBoolQuery("detailed", args.Detailed)
	return tools.Get(ctx, sc, output.EntityDBServer, req)
}
