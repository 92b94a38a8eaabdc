package snapshots

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListSnapshotsArgs defines the arguments for ndb_list_snapshots.
type ListSnapshotsArgs struct {
	tools.ListArgs
	// DatabaseIDs is a comma separated list of database IDs.
	DatabaseIDs   string `json:"databaseIds,omitempty"`
	TimeMachineID string `json:"timeMachineId,omitempty"`
	All           *bool  `json:"all,omitempty"`
}

// GetSnapshotArgs defines the arguments for ndb_get_snapshot.
type GetSnapshotArgs struct {
	tools.GetArgs
	TimeZone string `json:"timeZone,omitempty"`
}

// TakeSnapshotArgs defines the arguments for ndb_take_snapshot.
type TakeSnapshotArgs struct {
	TimeMachineID string `json:"timeMachineId"`
	Name          string `json:"name,omitempty"`
	ExpireInDays  *int   `json:"expireInDays,omitempty"`
}

// DeleteSnapshotArgs defines the arguments for ndb_delete_snapshot.
type DeleteSnapshotArgs struct {
	tools.GetArgs
}

// Tools returns the snapshot tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_snapshots",
				"List snapshots, optionally for specific databases or a time machine.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithString("databaseIds", mcp.Description("Comma separated database IDs")),
					mcp.WithString("timeMachineId", mcp.Description("Only snapshots of this time machine")),
					mcp.WithBoolean("all", mcp.Description("Include snapshots of every time machine")),
				},
			),
			Entity:  output.EntitySnapshot,
			Handler: tools.Bind(handleListSnapshots),
		},
		{
			Definition: tools.NewTool("ndb_get_snapshot",
				"Get a snapshot by ID.",
				tools.GetParams("snapshot", false),
				[]mcp.ToolOption{
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntitySnapshot,
			Handler: tools.Bind(handleGetSnapshot),
		},
		{
			Definition: tools.NewTool("ndb_take_snapshot",
				"Take a manual snapshot of a time machine.",
				tools.Creating(),
				[]mcp.ToolOption{
					mcp.WithString("timeMachineId", mcp.Required(), mcp.Description("Time machine ID")),
					mcp.WithString("name", mcp.Description("Snapshot name")),
					mcp.WithNumber("expireInDays", mcp.Description("Delete the snapshot after this many days")),
				},
			),
			Entity:   output.EntitySnapshot,
			Mutating: true,
			Handler:  tools.Bind(handleTakeSnapshot),
		},
		{
			Definition: tools.NewTool("ndb_delete_snapshot",
				"Delete a snapshot.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Snapshot ID")),
				},
			),
			Entity:   output.EntitySnapshot,
			Mutating: true,
			Handler:  tools.Bind(handleDeleteSnapshot),
		},
	}
}
