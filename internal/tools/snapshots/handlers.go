package snapshots

import (
	"context"
	"errors"
	"strings"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Validate implements tools.Validator.
func (a *TakeSnapshotArgs) Validate() error {
	if strings.TrimSpace(a.TimeMachineID) == "" {
		return tools.Missing("timeMachineId")
	}
	if a.ExpireInDays != nil && *a.ExpireInDays < 1 {
		return errors.New("expireInDays must be at least 1")
	}
	return nil
}

func handleListSnapshots(ctx context.Context, sc *server.ServerContext, args *ListSnapshotsArgs) (any, error) {
	req := ndb.Get("/snapshots").
		WithQuery("database-ids", args.DatabaseIDs).
		WithQuery("time-machine-id", args.TimeMachineID).
		WithBoolQuery("all", args.All)
	return tools.List(ctx, sc, output.EntitySnapshot, req, args.ListArgs)
}

func handleGetSnapshot(ctx context.Context, sc *server.ServerContext, args *GetSnapshotArgs) (any, error) {
	req := ndb.Get("/snapshots/"+ndb.PathID(args.ID)).
		WithQuery("time-zone", args.TimeZone)
	return tools.Get(ctx, sc, output.EntitySnapshot, req)
}

func handleTakeSnapshot(ctx context.Context, sc *server.ServerContext, args *TakeSnapshotArgs) (any, error) {
	p := tools.Payload{}.SetString("name", args.Name)
	if args.ExpireInDays != nil {
		p.Set("lcmConfig", map[string]any{
			"snapshotLCMConfig": map[string]any{
				"expiryDetails": map[string]any{"expireInDays": *args.ExpireInDays},
			},
		})
	}
	return tools.Mutate(ctx, sc, ndb.Post("/tms/"+ndb.PathID(args.TimeMachineID)+"/snapshots", p))
}

func handleDeleteSnapshot(ctx context.Context, sc *server.ServerContext, args *DeleteSnapshotArgs) (any, error) {
	return tools.Mutate(ctx, sc, ndb.Delete("/snapshots/"+ndb.PathID(args.ID), nil))
}
