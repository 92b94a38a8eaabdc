package timemachines

import (
	"context"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

func tmPath(id, action string) string {
	return "/tms/" + ndb.PathID(id) + "/" + action
}

func handleListTimeMachines(ctx context.Context, sc *server.ServerContext, args *ListTimeMachinesArgs) (any, error) {
	req := ndb.Get("/tms").
		WithBoolQuery("detailed", args.Detailed).
		WithBoolQuery("load-database", args.LoadDatabase).
		WithBoolQuery("load-clones", args.LoadClones)
	return tools.List(ctx, sc, output.EntityTimeMachine, req, args.ListArgs)
}

func handleGetTimeMachine(ctx context.Context, sc *server.ServerContext, args *GetTimeMachineArgs) (any, error) {
	req := ndb.Get(args.Path("/tms")).
		WithBoolQuery("detailed", args.Detailed).
		WithBoolQuery("load-database", args.LoadDatabase).
		WithBoolQuery("load-clones", args.LoadClones)
	return tools.Get(ctx, sc, output.EntityTimeMachine, req)
}

// The capability document has no fixed shape worth projecting.
func handleGetCapability(ctx context.Context, sc *server.ServerContext, args *CapabilityArgs) (any, error) {
	req := ndb.Get(tmPath(args.ID, "capability")).
		WithQuery("time-zone", args.TimeZone).
		WithBoolQuery("load-health", args.LoadHealth)
	return tools.Fetch(ctx, sc, req)
}

func handlePause(ctx context.Context, sc *server.ServerContext, args *PauseArgs) (any, error) {
	p := tools.Payload{}.
		SetBool("forced", args.Forced).
		SetString("reason", args.Reason)
	return tools.Mutate(ctx, sc, ndb.Patch(tmPath(args.ID, "pause"), p))
}

func handleResume(ctx context.Context, sc *server.ServerContext, args *ResumeArgs) (any, error) {
	p := tools.Payload{}.SetBool("resetCapability", args.ResetCapability)
	return tools.Mutate(ctx, sc, ndb.Patch(tmPath(args.ID, "resume"), p))
}
