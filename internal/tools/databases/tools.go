package databases

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListDatabasesArgs defines the arguments for ndb_list_databases.
type ListDatabasesArgs struct {
	tools.ListArgs
	Detailed            *bool  `json:"detailed,omitempty"`
	LoadDBServerCluster *bool  `json:"loadDbserverCluster,omitempty"`
	TimeZone            string `json:"timeZone,omitempty"`
}

// GetDatabaseArgs defines the arguments for ndb_get_database.
type GetDatabaseArgs struct {
	tools.IdentifiedArgs
	Detailed *bool  `json:"detailed,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ActionArgument is one engine-specific provisioning input.
type ActionArgument struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ProvisionDatabaseArgs defines the arguments for ndb_provision_database.
type ProvisionDatabaseArgs struct {
	DatabaseType             string           `json:"databaseType"`
	Name                     string           `json:"name"`
	Description              string           `json:"description,omitempty"`
	NxClusterID              string           `json:"nxClusterId,omitempty"`
	SoftwareProfileID        string           `json:"softwareProfileId,omitempty"`
	SoftwareProfileVersionID string           `json:"softwareProfileVersionId,omitempty"`
	ComputeProfileID         string           `json:"computeProfileId,omitempty"`
	NetworkProfileID         string           `json:"networkProfileId,omitempty"`
	DBParameterProfileID     string           `json:"dbParameterProfileId,omitempty"`
	TimeMachineInfo          map[string]any   `json:"timeMachineInfo,omitempty"`
	ActionArguments          []ActionArgument `json:"actionArguments,omitempty"`
	Nodes                    []map[string]any `json:"nodes,omitempty"`
	NodeCount                *int             `json:"nodeCount,omitempty"`
	CreateDBServer           *bool            `json:"createDbserver,omitempty"`
	DBServerID               string           `json:"dbserverId,omitempty"`
	Clustered                *bool            `json:"clustered,omitempty"`
	AutoTuneStagingDrive     *bool            `json:"autoTuneStagingDrive,omitempty"`
	SSHPublicKey             string           `json:"sshPublicKey,omitempty"`
	VMPassword               string           `json:"vmPassword,omitempty"`
	Tags                     []map[string]any `json:"tags,omitempty"`
	// SkipValidation sends the request without the pre-flight check.
	SkipValidation bool `json:"skipValidation,omitempty"`
}

// RegisterDatabaseArgs defines the arguments for ndb_register_database.
type RegisterDatabaseArgs struct {
	DatabaseType    string           `json:"databaseType"`
	DatabaseName    string           `json:"databaseName"`
	VMIP            string           `json:"vmIp"`
	Description     string           `json:"description,omitempty"`
	NxClusterID     string           `json:"nxClusterId,omitempty"`
	VMUsername      string           `json:"vmUsername,omitempty"`
	VMPassword      string           `json:"vmPassword,omitempty"`
	Clustered       *bool            `json:"clustered,omitempty"`
	ForcedInstall   *bool            `json:"forcedInstall,omitempty"`
	TimeMachineInfo map[string]any   `json:"timeMachineInfo,omitempty"`
	ActionArguments []ActionArgument `json:"actionArguments,omitempty"`
	Tags            []map[string]any `json:"tags,omitempty"`
}

// UpdateDatabaseArgs defines the arguments for ndb_update_database.
type UpdateDatabaseArgs struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	Description      string           `json:"description,omitempty"`
	Tags             []map[string]any `json:"tags,omitempty"`
	ResetName        *bool            `json:"resetName,omitempty"`
	ResetDescription *bool            `json:"resetDescription,omitempty"`
	ResetTags        *bool            `json:"resetTags,omitempty"`
}

// DeregisterDatabaseArgs defines the arguments for ndb_deregister_database.
type DeregisterDatabaseArgs struct {
	ID                   string `json:"id"`
	Delete               *bool  `json:"delete,omitempty"`
	Remove               *bool  `json:"remove,omitempty"`
	SoftRemove           *bool  `json:"softRemove,omitempty"`
	Forced               *bool  `json:"forced,omitempty"`
	DeleteTimeMachine    *bool  `json:"deleteTimeMachine,omitempty"`
	DeleteLogicalCluster *bool  `json:"deleteLogicalCluster,omitempty"`
}

// ProvisionInputsArgs defines the arguments for ndb_get_provision_inputs.
type ProvisionInputsArgs struct {
	DatabaseType string `json:"databaseType"`
	Category     string `json:"category,omitempty"`
}

// Tools returns the database tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_databases",
				"List databases registered with NDB. Supports client-side filtering with valueType/value.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for detailed records")),
					mcp.WithBoolean("loadDbserverCluster", mcp.Description("Include the database server cluster")),
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityDatabase,
			Handler: tools.Bind(handleListDatabases),
		},
		{
			Definition: tools.NewTool("ndb_get_database",
				"Get a database by ID or name.",
				tools.GetParams("database", true),
				[]mcp.ToolOption{
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for the detailed record")),
					mcp.WithString("timeZone", mcp.Description("Time zone for timestamps, e.g. UTC")),
				},
			),
			Entity:  output.EntityDatabase,
			Handler: tools.Bind(handleGetDatabase),
		},
		{
			Definition: tools.NewTool("ndb_provision_database",
				`Provision a new database.

Before sending the request the server checks that a cluster, software, compute,
network and database parameter profile and an SLA (timeMachineInfo.slaId) are
set, along with every engine-specific argument NDB marks as required. If any
are missing nothing is provisioned; the result lists what is missing with
candidate values for each. Set skipValidation to send the request as is.`,
				tools.Creating(),
				[]mcp.ToolOption{
					mcp.WithString("databaseType", mcp.Required(),
						mcp.Description("Engine, e.g. postgres_database, oracle_database, mssql_database, mysql_database, mongodb_database")),
					mcp.WithString("name", mcp.Required(), mcp.Description("Name of the database instance")),
					mcp.WithString("description", mcp.Description("Description of the database")),
					mcp.WithString("nxClusterId", mcp.Description("Target Nutanix cluster ID")),
					mcp.WithString("softwareProfileId", mcp.Description("Software profile ID")),
					mcp.WithString("softwareProfileVersionId", mcp.Description("Software profile version ID")),
					mcp.WithString("computeProfileId", mcp.Description("Compute profile ID")),
					mcp.WithString("networkProfileId", mcp.Description("Network profile ID")),
					mcp.WithString("dbParameterProfileId", mcp.Description("Database parameter profile ID")),
					mcp.WithObject("timeMachineInfo", mcp.Description("Time machine settings; slaId is required")),
					mcp.WithArray("actionArguments", mcp.Description("Engine arguments as [{name, value}]")),
					mcp.WithArray("nodes", mcp.Description("Database server nodes")),
					mcp.WithNumber("nodeCount", mcp.Description("Number of nodes")),
					mcp.WithBoolean("createDbserver", mcp.Description("Create a new database server VM")),
					mcp.WithString("dbserverId", mcp.Description("Existing database server ID when createDbserver is false")),
					mcp.WithBoolean("clustered", mcp.Description("Provision a clustered database")),
					mcp.WithBoolean("autoTuneStagingDrive", mcp.Description("Let NDB size the staging drive")),
					mcp.WithString("sshPublicKey", mcp.Description("SSH public key for the database server VM")),
					mcp.WithString("vmPassword", mcp.Description("Password for the database server VM")),
					mcp.WithArray("tags", mcp.Description("Tags as [{tagId, tagName, value}]")),
					mcp.WithBoolean("skipValidation", mcp.Description("Skip the pre-flight check")),
				},
			),
			Entity:   output.EntityDatabase,
			Mutating: true,
			Handler:  tools.Bind(handleProvisionDatabase),
		},
		{
			Definition: tools.NewTool("ndb_register_database",
				"Register an existing database running on a VM with NDB.",
				tools.Creating(),
				[]mcp.ToolOption{
					mcp.WithString("databaseType", mcp.Required(), mcp.Description("Engine, e.g. postgres_database")),
					mcp.WithString("databaseName", mcp.Required(), mcp.Description("Name of the database to register")),
					mcp.WithString("vmIp", mcp.Required(), mcp.Description("IP address of the VM hosting the database")),
					mcp.WithString("description", mcp.Description("Description of the database")),
					mcp.WithString("nxClusterId", mcp.Description("Nutanix cluster ID")),
					mcp.WithString("vmUsername", mcp.Description("VM username")),
					mcp.WithString("vmPassword", mcp.Description("VM password")),
					mcp.WithBoolean("clustered", mcp.Description("Whether the database is clustered")),
					mcp.WithBoolean("forcedInstall", mcp.Description("Force the NDB agent installation")),
					mcp.WithObject("timeMachineInfo", mcp.Description("Time machine settings")),
					mcp.WithArray("actionArguments", mcp.Description("Engine arguments as [{name, value}]")),
					mcp.WithArray("tags", mcp.Description("Tags as [{tagId, tagName, value}]")),
				},
			),
			Entity:   output.EntityDatabase,
			Mutating: true,
			Handler:  tools.Bind(handleRegisterDatabase),
		},
		{
			Definition: tools.NewTool("ndb_update_database",
				"Update the name, description or tags of a database.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Database ID")),
					mcp.WithString("name", mcp.Description("New name")),
					mcp.WithString("description", mcp.Description("New description")),
					mcp.WithArray("tags", mcp.Description("Tags as [{tagId, tagName, value}]")),
					mcp.WithBoolean("resetName", mcp.Description("Apply the name field")),
					mcp.WithBoolean("resetDescription", mcp.Description("Apply the description field")),
					mcp.WithBoolean("resetTags", mcp.Description("Replace the tags")),
				},
			),
			Entity:   output.EntityDatabase,
			Mutating: true,
			Handler:  tools.Bind(handleUpdateDatabase),
		},
		{
			Definition: tools.NewTool("ndb_deregister_database",
				"Deregister a database from NDB, optionally deleting it and its time machine.",
				tools.Destructive(),
				[]mcp.ToolOption{
					mcp.WithString("id", mcp.Required(), mcp.Description("Database ID")),
					mcp.WithBoolean("delete", mcp.Description("Delete the database from the VM")),
					mcp.WithBoolean("remove", mcp.Description("Remove the database from NDB (default when delete is not set)")),
					mcp.WithBoolean("softRemove", mcp.Description("Soft remove")),
					mcp.WithBoolean("forced", mcp.Description("Force the operation")),
					mcp.WithBoolean("deleteTimeMachine", mcp.Description("Also delete the time machine")),
					mcp.WithBoolean("deleteLogicalCluster", mcp.Description("Also delete the logical cluster")),
				},
			),
			Entity:   output.EntityDatabase,
			Mutating: true,
			Handler:  tools.Bind(handleDeregisterDatabase),
		},
		{
			Definition: tools.NewTool("ndb_get_provision_inputs",
				"Get the engine-specific provisioning inputs NDB accepts for a database type, including which are required.",
				[]mcp.ToolOption{
					mcp.WithReadOnlyHintAnnotation(true),
					mcp.WithString("databaseType", mcp.Required(), mcp.Description("Engine, e.g. postgres_database")),
					mcp.WithString("category", mcp.Description(`Input category (default "db_server;database")`)),
				},
			),
			Handler: tools.Bind(handleGetProvisionInputs),
		},
	}
}
