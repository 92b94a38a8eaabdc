package clones

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListClonesArgs defines the arguments for ndb_list_clones.
type ListClonesArgs struct {
	tools.ListArgs
	Detailed *bool  `json:"detailed,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// GetCloneArgs defines the arguments for ndb_get_clone.
type GetCloneArgs struct {
	tools.IdentifiedArgs
	Detailed *bool  `json:"detailed,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// CreateCloneArgs defines the arguments for ndb_create_clone.
type CreateCloneArgs struct {
	TimeMachineID        string           `json:"timeMachineId"`
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	SnapshotID           string           `json:"snapshotId,omitempty"`
	UserPitrTimestamp    string           `json:"userPitrTimestamp,omitempty"`
	LatestSnapshot       *bool            `json:"latestSnapshot,omitempty"`
	TimeZone             string           `json:"timeZone,omitempty"`
	NxClusterID          string           `json:"nxClusterId,omitempty"`
	CreateDBServer       *bool            `json:"createDbserver,omitempty"`
	DBServerID           string           `json:"dbserverId,omitempty"`
	ComputeProfileID     string           `json:"computeProfileId,omitempty"`
	NetworkProfileID     string           `json:"networkProfileId,omitempty"`
	DBParameterProfileID string           `json:"databaseParameterProfileId,omitempty"`
	SSHPublicKey         string           `json:"sshPublicKey,omitempty"`
	VMPassword           string           `json:"vmPassword,omitempty"`
	Clustered            *bool            `json:"clustered,omitempty"`
	NodeCount            *int             `json:"nodeCount,omitempty"`
	Nodes                []map[string]any `json:"nodes,omitempty"`
	ActionArguments      []map[string]any `json:"actionArguments,omitempty"`
	Tags                 []map[string]any `json:"tags,omitempty"`
}

// RefreshCloneArgs defines the arguments for ndb_refresh_clone.
type RefreshCloneArgs struct {
	ID                string `json:"id"`
	SnapshotID        string `json:"snapshotId,omitempty"`
	UserPitrTimestamp string `json:"userPitrTimestamp,omitempty"`
	TimeZone          string `json:"timeZone,omitempty"`
}

// DeleteCloneArgs defines the arguments for ndb_delete_clone.
type DeleteCloneArgs struct {
	ID                   string `json:"id"`
	Delete               *bool  `json:"delete,omitempty"`
	Remove               *bool  `json:"remove,omitempty"`
	SoftRemove           *bool  `json:"softRemove,omitempty"`
	Forced               *bool  `json:"forced,omitempty"`
	DeleteDataDrives     *bool  `json:"deleteDataDrives,omitempty"`
	DeleteLogicalCluster *bool  `json:"deleteLogicalCluster,omitempty"`
}

// Tools returns the clone tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_clones",
				"List database clones. Supports client-side filtering with valueType/value.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for detailed records")),
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityClone,
			Handler: tools.Bind(handleListClones),
		},
		{
			Definition: tools.NewTool("ndb_get_clone",
				"Get a clone by ID or name.",
				tools.GetParams("clone", true),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for the detailed record")),
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityClone,
			Handler: tools.Bind(handleGetClone),
		},
		{
			Definition: tools.NewTool("ndb_create_clone",
				"Create a clone from a time machine at a snapshot, a point in time, or the latest snapshot.",
				tools.Creating(),
				[]mcp.ToolOption{
					mcp.WithString("timeMachineId", mcp.Required(), mcp.Description("Source time machine ID")),
					mcp.WithString("name", mcp.Required(), mcp.Description("Name of the clone")),
					mcp.WithString("description", mcp.Description("Description of the clone")),
					mcp.WithString("snapshotId", mcp.Description("Clone from this snapshot")),
					mcp.WithString("userPitrTimestamp", mcp.Description(`Clone from this point in time, "yyyy-MM-dd HH:mm:ss"`)),
					mcp.WithBoolean("latestSnapshot", mcp.Description("Clone from the latest snapshot")),
					mcp.WithString("timeZone", mcp.Description("Time zone of userPitrTimestamp")),
					mcp.WithString("nxClusterId", mcp.Description("Target Nutanix cluster ID")),
					mcp.WithBoolean("createDbserver", mcp.Description("Create a new database server VM for the clone")),
					mcp.WithString("dbserverId", mcp.Description("Existing database server ID")),
					mcp.WithString("computeProfileId", mcp.Description("Compute profile ID")),
					mcp.WithString("networkProfileId", mcp.Description("Network profile ID")),
					mcp.WithString("databaseParameterProfileId", mcp.Description("Database parameter profile ID")),
					mcp.WithString("sshPublicKey", mcp.Description("SSH public key for the VM")),
					mcp.WithString("vmPassword", mcp.Description("Password for the VM")),
					mcp.WithBoolean("clustered", mcp.Description("Create a clustered clone")),
					mcp.WithNumber("nodeCount", mcp.Description("Number of nodes")),
					mcp.WithArray("nodes", mcp.Description("Node definitions")),
					mcp.WithArray("actionArguments", mcp.Description("Engine arguments as [{name, value}]")),
					mcp.WithArray("tags", mcp.Description("Tags as [{tagId, tagName, value}]")),
				},
			),
			Entity:   output.EntityClone,
			Mutating: true,
			Handler:  tools.Bind(handleCreateClone),
		},
		{
			Definition: tools.NewTool("ndb_refresh_clone",
				"Refresh a clone to a snapshot or point in time of its source time machine.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Clone ID")),
					mcp.WithString("snapshotId", mcp.Description("Refresh to this snapshot")),
					mcp.WithString("userPitrTimestamp", mcp.Description(`Refresh to this point in time, "yyyy-MM-dd HH:mm:ss"`)),
					mcp.WithString("timeZone", mcp.Description("Time zone of userPitrTimestamp")),
				},
			),
			Entity:   output.EntityClone,
			Mutating: true,
			Handler:  tools.Bind(handleRefreshClone),
		},
		{
			Definition: tools.NewTool("ndb_delete_clone",
				"Delete or remove a clone.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Clone ID")),
					mcp.WithBoolean("delete", mcp.Description("Delete the clone database")),
					mcp.WithBoolean("remove", mcp.Description("Remove the clone from NDB (default when delete is not set)")),
					mcp.WithBoolean("softRemove", mcp.Description("Soft remove")),
					mcp.WithBoolean("forced", mcp.Description("Force the operation")),
					mcp.WithBoolean("deleteDataDrives", mcp.Description("Delete the data drives")),
					mcp.WithBoolean("deleteLogicalCluster", mcp.Description("Also delete the logical cluster")),
				},
			),
			Entity:   output.EntityClone,
			Mutating: true,
			Handler:  tools.Bind(handleDeleteClone),
		},
	}
}
