// Package timemachines provides the time machine tools. A time machine holds
// the snapshots and transaction logs of one database and is the source of
// clones and point-in-time restores.
package timemachines

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListTimeMachinesArgs defines the arguments for ndb_list_time_machines.
type ListTimeMachinesArgs struct {
	tools.ListArgs
	Detailed     *bool `json:"detailed,omitempty"`
	LoadDatabase *bool `json:"loadDatabase,omitempty"`
	LoadClones   *bool `json:"loadClones,omitempty"`
}

// GetTimeMachineArgs defines the arguments for ndb_get_time_machine.
type GetTimeMachineArgs struct {
	tools.IdentifiedArgs
	Detailed     *bool `json:"detailed,omitempty"`
	LoadDatabase *bool `json:"loadDatabase,omitempty"`
	LoadClones   *bool `json:"loadClones,omitempty"`
}

// CapabilityArgs defines the arguments for ndb_get_time_machine_capability.
type CapabilityArgs struct {
	tools.GetArgs
	TimeZone   string `json:"timeZone,omitempty"`
	LoadHealth *bool  `json:"loadHealth,omitempty"`
}

// PauseArgs defines the arguments for ndb_pause_time_machine.
type PauseArgs struct {
	tools.GetArgs
	Forced *bool  `json:"forced,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ResumeArgs defines the arguments for ndb_resume_time_machine.
type ResumeArgs struct {
	tools.GetArgs
	ResetCapability *bool `json:"resetCapability,omitempty"`
}

// Tools returns the time machine tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_time_machines",
				"List time machines. Supports client-side filtering with valueType/value.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for detailed records")),
					mcp.WithBoolean("loadDatabase", mcp.Description("Include the source database")),
					mcp.WithBoolean("loadClones", mcp.Description("Include clones created from the time machine")),
				},
			),
			Entity:  output.EntityTimeMachine,
			Handler: tools.Bind(handleListTimeMachines),
		},
		{
			Definition: tools.NewTool("ndb_get_time_machine",
				"Get a time machine by ID or name.",
				tools.GetParams("time machine", true),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for the detailed record")),
					mcp.WithBoolean("loadDatabase", mcp.Description("Include the source database")),
					mcp.WithBoolean("loadClones", mcp.Description("Include clones created from the time machine")),
				},
			),
			Entity:  output.EntityTimeMachine,
			Handler: tools.Bind(handleGetTimeMachine),
		},
		{
			Definition: tools.NewTool("ndb_get_time_machine_capability",
				"Get the recoverable time ranges and snapshots of a time machine.",
				tools.GetParams("time machine", false),
				[]mcp.ToolOption{
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
					mcp.WithBoolean("loadHealth", mcp.Description("Include log catch-up health")),
				},
			),
			Handler: tools.Bind(handleGetCapability),
		},
		{
			Definition: tools.NewTool("ndb_pause_time_machine",
				"Pause a time machine. Snapshots and log catch-ups stop until it is resumed.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Time machine ID")),
					mcp.WithBoolean("forced", mcp.Description("Force the pause")),
					mcp.WithString("reason", mcp.Description("Reason recorded with the pause")),
				},
			),
			Entity:   output.EntityTimeMachine,
			Mutating: true,
			Handler:  tools.Bind(handlePause),
		},
		{
			Definition: tools.NewTool("ndb_resume_time_machine",
				"Resume a paused time machine.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Time machine ID")),
					mcp.WithBoolean("resetCapability", mcp.Description("Reset the recoverable range on resume")),
				},
			),
			Entity:   output.EntityTimeMachine,
			Mutating: true,
			Handler:  tools.Bind(handleResume),
		},
	}
}
