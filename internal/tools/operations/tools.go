// Package operations provides tools for NDB operations, the asynchronous
// tasks that every mutating call starts. A mutating tool returns an
// operationId that ndb_get_operation can poll.
package operations

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListOperationsArgs defines the arguments for ndb_list_operations.
type ListOperationsArgs struct {
	tools.ListArgs
	Days       *int   `json:"days,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
	Status     string `json:"status,omitempty"`
	DBServerID string `json:"dbserverId,omitempty"`
	Type       string `json:"type,omitempty"`
	TimeZone   string `json:"timeZone,omitempty"`
}

// Validate implements tools.Validator.
func (a *ListOperationsArgs) Validate() error {
	if err := a.ListArgs.Validate(); err != nil {
		return err
	}
	if a.Days != nil && *a.Days < 0 {
		return errors.New("days must not be negative")
	}
	return nil
}

// GetOperationArgs defines the arguments for ndb_get_operation.
type GetOperationArgs struct {
	tools.GetArgs
	TimeZone string `json:"timeZone,omitempty"`
}

// Tools returns the operation tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_operations",
				"List NDB operations, most recent first.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithNumber("days", mcp.Description("Only operations from the last N days")),
					mcp.WithString("entityId", mcp.Description("Only operations on this entity")),
					mcp.WithString("status", mcp.Description("Only operations in this status")),
					mcp.WithString("dbserverId", mcp.Description("Only operations on this database server")),
					mcp.WithString("type", mcp.Description("Only operations of this type, e.g. provision_database")),
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityOperation,
			Handler: tools.Bind(handleListOperations),
		},
		{
			Definition: tools.NewTool("ndb_get_operation",
				"Get an operation by ID, including its progress.",
				tools.GetParams("operation", false),
				[]mcp.ToolOption{
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityOperation,
			Handler: tools.Bind(handleGetOperation),
		},
	}
}

func handleListOperations(ctx context.Context, sc *server.ServerContext, args *ListOperationsArgs) (any, error) {
	req := ndb.Get("/operations").
		WithQuery("entity-id", args.EntityID).
		WithQuery("status", args.Status).
		WithQuery("dbserver-id", args.DBServerID).
		WithQuery("type", args.Type).
		WithQuery("time-zone", args.TimeZone)
	if args.Days != nil {
		req.WithIntQuery("days", *args.Days)
	}
	return tools.List(ctx, sc, output.EntityOperation, req, args.ListArgs)
}

func handleGetOperation(ctx context.Context, sc *server.ServerContext, args *GetOperationArgs) (any, error) {
	req := ndb.Get("/operations/"+ndb.PathID(args.ID)).
		WithQuery("time-zone", args.TimeZone)
	return tools.Get(ctx, sc, output.EntityOperation, req)
}
