package clones

import (
	"context"
	"errors"
	"strings"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

var errPointInTime = errors.New("exactly one of snapshotId, userPitrTimestamp or latestSnapshot must be set")

// Validate implements tools.Validator.
func (a *CreateCloneArgs) Validate() error {
	if strings.TrimSpace(a.TimeMachineID) == "" {
		return tools.Missing("timeMachineId")
	}
	if strings.TrimSpace(a.Name) == "" {
		return tools.Missing("name")
	}

	n := 0
	if a.SnapshotID != "" {
		n++
	}
	if a.UserPitrTimestamp != "" {
		n++
	}
	if a.LatestSnapshot != nil && *a.LatestSnapshot {
		n++
	}
	if n != 1 {
		return errPointInTime
	}

	if a.CreateDBServer != nil && !*a.CreateDBServer && a.DBServerID == "" {
		return errors.New("dbserverId is required when createDbserver is false")
	}
	return nil
}

// Validate implements tools.Validator.
func (a *RefreshCloneArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return tools.Missing("id")
	}
	if (a.SnapshotID == "") == (a.UserPitrTimestamp == "") {
		return errors.New("exactly one of snapshotId or userPitrTimestamp must be set")
	}
	return nil
}

// Validate implements tools.Validator.
func (a *DeleteCloneArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return tools.Missing("id")
	}
	return nil
}

func handleListClones(ctx context.Context, sc *server.ServerContext, args *ListClonesArgs) (any, error) {
	req := ndb.Get("/clones").
		WithBoolQuery("detailed", args.Detailed).
		WithQuery("time-zone", args.TimeZone)
	return tools.List(ctx, sc, output.EntityClone, req, args.ListArgs)
}

func handleGetClone(ctx context.Context, sc *server.ServerContext, args *GetCloneArgs) (any, error) {
	req := ndb.Get(args.Path("/clones")).
		WithBoolQuery("detailed", args.Detailed).
		WithQuery("time-zone", args.TimeZone)
	return tools.Get(ctx, sc, output.EntityClone, req)
}

func handleCreateClone(ctx context.Context, sc *server.ServerContext, args *CreateCloneArgs) (any, error) {
	p := tools.Payload{}.
		SetString("name", args.Name).
		SetString("description", args.Description).
		SetString("timeMachineId", args.TimeMachineID).
		SetString("snapshotId", args.SnapshotID).
		SetString("userPitrTimestamp", args.UserPitrTimestamp).
		SetBool("latestSnapshot", args.LatestSnapshot).
		SetString("timeZone", args.TimeZone).
		SetString("nxClusterId", args.NxClusterID).
		SetBool("createDbserver", args.CreateDBServer).
		SetString("dbserverId", args.DBServerID).
		SetString("computeProfileId", args.ComputeProfileID).
		SetString("networkProfileId", args.NetworkProfileID).
		SetString("databaseParameterProfileId", args.DBParameterProfileID).
		SetString("sshPublicKey", args.SSHPublicKey).
		SetString("vmPassword", args.VMPassword).
		SetBool("clustered", args.Clustered).
		SetInt("nodeCount", args.NodeCount)

	if len(args.Nodes) > 0 {
		p.Set("nodes", args.Nodes)
	}
	if len(args.ActionArguments) > 0 {
		p.Set("actionArguments", args.ActionArguments)
	}
	if len(args.Tags) > 0 {
		p.Set("tags", args.Tags)
	}

	return tools.Mutate(ctx, sc, ndb.Post("/tms/"+ndb.PathID(args.TimeMachineID)+"/clones", p))
}

func handleRefreshClone(ctx context.Context, sc *server.ServerContext, args *RefreshCloneArgs) (any, error) {
	p := tools.Payload{}.
		SetString("snapshotId", args.SnapshotID).
		SetString("userPitrTimestamp", args.UserPitrTimestamp).
		SetString("timeZone", args.TimeZone)
	return tools.Mutate(ctx, sc, ndb.Post("/clones/"+ndb.PathID(args.ID)+"/refresh", p))
}

func handleDeleteClone(ctx context.Context, sc *server.ServerContext, args *DeleteCloneArgs) (any, error) {
	p := tools.Payload{}.
		SetBool("delete", args.Delete).
		SetBool("remove", args.Remove).
		SetBool("softRemove", args.SoftRemove).
		SetBool("forced", args.Forced).
		SetBool("deleteDataDrives", args.DeleteDataDrives).
		SetBool("deleteLogicalCluster", args.DeleteLogicalCluster)

	if args.Delete == nil && args.Remove == nil {
		p.Set("remove", true)
	}

	return tools.Mutate(ctx, sc, ndb.Delete("/clones/"+ndb.PathID(args.ID), p))
}
