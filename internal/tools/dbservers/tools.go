// Package dbservers provides the database server VM tools.
package dbservers

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListDBServersArgs defines the arguments for ndb_list_dbservers.
type ListDBServersArgs struct {
	tools.ListArgs
	LoadDatabases *bool `json:"loadDatabases,omitempty"`
	LoadClones    *bool `json:"loadClones,omitempty"`
	Detailed      *bool `json:"detailed,omitempty"`
}

// GetDBServerArgs defines the arguments for ndb_get_dbserver.
type GetDBServerArgs struct {
	ID string `json:"id"`
	// ValueType is id, name or ip.
	ValueType     string `json:"valueType,omitempty"`
	LoadDatabases *bool  `json:"loadDatabases,omitempty"`
	LoadClones    *bool  `json:"loadClones,omitempty"`
	Detailed      *bool  `json:"detailed,omitempty"`
}

// Tools returns the database server tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_dbservers",
				"List database server VMs managed by NDB.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithBoolean("loadDatabases", mcp.Description("Include hosted databases")),
					mcp.WithBoolean("loadClones", mcp.Description("Include hosted clones")),
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for detailed records")),
				},
			),
			Entity:  output.EntityDBServer,
			Handler: tools.Bind(handleListDBServers),
		},
		{
			Definition: tools.NewTool("ndb_get_dbserver",
				"Get a database server VM by ID, name or IP address.",
				[]mcp.ToolOption{
					mcp.WithReadOnlyHintAnnotation(true),
					mcp.WithString("id", mcp.Required(), mcp.Description("ID, name or IP of the database server, see valueType")),
					mcp.WithString("valueType",
						mcp.Description(`How to interpret id: "id" (default), "name" or "ip"`),
						mcp.Enum("id", "name", "ip"),
					),
					mcp.WithBoolean("loadDatabases", mcp.Description("Include hosted databases")),
					mcp.WithBoolean("loadClones", mcp.Description("Include hosted clones")),
					mcp.WithBoolean("detailed", mcp.Description("Ask NDB for the detailed record")),
				},
			),
			Entity:  output.EntityDBServer,
			Handler: tools.Bind(handleGetDBServer),
		},
	}
}
