// Package profiles provides the profile tools. Profiles are the reusable
// software, compute, network and database parameter templates that
// provisioning and cloning refer to by ID.
package profiles

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Profile types accepted by NDB.
var profileTypes = []string{"Software", "Compute", "Network", "Database_Parameter", "Storage", "WindowsDomain"}

// ListProfilesArgs defines the arguments for ndb_list_profiles.
type ListProfilesArgs struct {
	tools.ListArgs
	Type   string `json:"type,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// Validate implements tools.Validator and canonicalizes Type.
func (a *ListProfilesArgs) Validate() error {
	if err := a.ListArgs.Validate(); err != nil {
		return err
	}
	if a.Type == "" {
		return nil
	}
	t, err := tools.OneOf("type", a.Type, profileTypes...)
	if err != nil {
		return err
	}
	a.Type = t
	return nil
}

// GetProfileArgs defines the arguments for ndb_get_profile.
type GetProfileArgs struct {
	tools.GetArgs
}

// Tools returns the profile tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		{
			Definition: tools.NewTool("ndb_list_profiles",
				"List profiles, optionally of one type or engine.",
				tools.ListParams(),
				[]mcp.ToolOption{
					mcp.WithString("type", mcp.Description("Profile type"), mcp.Enum(profileTypes...)),
					mcp.WithString("engine", mcp.Description("Database engine, e.g. postgres_database")),
				},
			),
			Entity:  output.EntityProfile,
			Handler: tools.Bind(handleListProfiles),
		},
		{
			Definition: tools.NewTool("ndb_get_profile",
				"Get a profile by ID, including its versions.",
				tools.GetParams("profile", false),
			),
			Entity:  output.EntityProfile,
			Handler: tools.Bind(handleGetProfile),
		},
	}
}

func handleListProfiles(ctx context.Context, sc *server.ServerContext, args *ListProfilesArgs) (any, error) {
	req := ndb.Get("/profiles").
		WithQuery("type", args.Type).
		WithQuery("engine", args.Engine)
	return tools.List(ctx, sc, output.EntityProfile, req, args.ListArgs)
}

func handleGetProfile(ctx context.Context, sc *server.ServerContext, args *GetProfileArgs) (any, error) {
	return tools.Get(ctx, sc, output.EntityProfile, ndb.Get("/profiles/"+ndb.PathID(args.ID)))
}
