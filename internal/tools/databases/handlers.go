package databases

import (
	"context"
	"errors"
	"strings"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/provision"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

const defaultInputCategory = "db_server;database"

// Validate implements tools.Validator.
func (a *ProvisionDatabaseArgs) Validate() error {
	if strings.TrimSpace(a.DatabaseType) == "" {
		return tools.Missing("databaseType")
	}
	if strings.TrimSpace(a.Name) == "" {
		return tools.Missing("name")
	}
	if err := validateActionArguments(a.ActionArguments); err != nil {
		return err
	}
	if a.CreateDBServer != nil && !*a.CreateDBServer && a.DBServerID == "" {
		return errors.New("dbserverId is required when createDbserver is false")
	}
	return nil
}

// Validate implements tools.Validator.
func (a *RegisterDatabaseArgs) Validate() error {
	switch {
	case strings.TrimSpace(a.DatabaseType) == "":
		return tools.Missing("databaseType")
	case strings.TrimSpace(a.DatabaseName) == "":
		return tools.Missing("databaseName")
	case strings.TrimSpace(a.VMIP) == "":
		return tools.Missing("vmIp")
	}
	return validateActionArguments(a.ActionArguments)
}

// Validate implements tools.Validator.
func (a *UpdateDatabaseArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return tools.Missing("id")
	}
	if a.Name == "" && a.Description == "" && a.Tags == nil &&
		a.ResetName == nil && a.ResetDescription == nil && a.ResetTags == nil {
		return errors.New("at least one of name, description or tags must be set")
	}
	return nil
}

// Validate implements tools.Validator.
func (a *DeregisterDatabaseArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return tools.Missing("id")
	}
	return nil
}

// Validate implements tools.Validator.
func (a *ProvisionInputsArgs) Validate() error {
	if strings.TrimSpace(a.DatabaseType) == "" {
		return tools.Missing("databaseType")
	}
	return nil
}

func validateActionArguments(args []ActionArgument) error {
	for _, arg := range args {
		if strings.TrimSpace(arg.Name) == "" {
			return errors.New("every actionArguments entry needs a name")
		}
	}
	return nil
}

func handleListDatabases(ctx context.Context, sc *server.ServerContext, args *ListDatabasesArgs) (any, error) {
	req := ndb.Get("/databases").
		WithBoolQuery("detailed", args.Detailed).
		WithBoolQuery("load-dbserver-cluster", args.LoadDBServerCluster).
		WithQuery("time-zone", args.TimeZone)
	return tools.List(ctx, sc, output.EntityDatabase, req, args.ListArgs)
}

func handleGetDatabase(ctx context.Context, sc *server.ServerContext, args *GetDatabaseArgs) (any, error) {
	req := ndb.Get(args.Path("/databases")).
		WithBoolQuery("detailed", args.Detailed).
		WithQuery("time-zone", args.TimeZone)
	return tools.Get(ctx, sc, output.EntityDatabase, req)
}

// incompleteProvision is returned instead of provisioning when the pre-flight
// check finds missing fields.
type incompleteProvision struct {
	Provisioned bool   `json:"provisioned"`
	Message     string `json:"message"`
	*provision.Result
}

func handleProvisionDatabase(ctx context.Context, sc *server.ServerContext, args *ProvisionDatabaseArgs) (any, error) {
	payload := provisionPayload(args)

	if !args.SkipValidation {
		advisor := provision.NewAdvisor(sc.NDBClient(),
			provision.WithLogger(sc.Logger()),
			provision.WithMetrics(sc.Metrics()),
		)
		result, err := advisor.Validate(ctx, provision.Request{
			DatabaseType: args.DatabaseType,
			Payload:      payload,
		})
		if err != nil {
			return nil, tools.InvalidArguments(err)
		}
		if !result.Complete() {
			return &incompleteProvision{
				Message: "provisioning request is incomplete; supply the missing fields (suggested values are listed) or set skipValidation",
				Result:  result,
			}, nil
		}
	}

	return tools.Mutate(ctx, sc, ndb.Post("/databases/provision", payload))
}

func provisionPayload(args *ProvisionDatabaseArgs) tools.Payload {
	p := tools.Payload{}.
		SetString("databaseType", args.DatabaseType).
		SetString("name", args.Name).
		SetString("databaseDescription", args.Description).
		SetString("nxClusterId", args.NxClusterID).
		SetString("softwareProfileId", args.SoftwareProfileID).
		SetString("softwareProfileVersionId", args.SoftwareProfileVersionID).
		SetString("computeProfileId", args.ComputeProfileID).
		SetString("networkProfileId", args.NetworkProfileID).
		SetString("dbParameterProfileId", args.DBParameterProfileID).
		SetInt("nodeCount", args.NodeCount).
		SetBool("createDbserver", args.CreateDBServer).
		SetString("dbserverId", args.DBServerID).
		SetBool("clustered", args.Clustered).
		SetBool("autoTuneStagingDrive", args.AutoTuneStagingDrive).
		SetString("sshPublicKey", args.SSHPublicKey).
		SetString("vmPassword", args.VMPassword)

	if args.TimeMachineInfo != nil {
		p.Set("timeMachineInfo", args.TimeMachineInfo)
	}
	if len(args.ActionArguments) > 0 {
		p.Set("actionArguments", args.ActionArguments)
	}
	if len(args.Nodes) > 0 {
		p.Set("nodes", args.Nodes)
	}
	if len(args.Tags) > 0 {
		p.Set("tags", args.Tags)
	}
	return p
}

func handleRegisterDatabase(ctx context.Context, sc *server.ServerContext, args *RegisterDatabaseArgs) (any, error) {
	p := tools.Payload{}.
		SetString("databaseType", args.DatabaseType).
		SetString("databaseName", args.DatabaseName).
		SetString("vmIp", args.VMIP).
		SetString("description", args.Description).
		SetString("nxClusterId", args.NxClusterID).
		SetString("vmUsername", args.VMUsername).
		SetString("vmPassword", args.VMPassword).
		SetBool("clustered", args.Clustered).
		SetBool("forcedInstall", args.ForcedInstall)

	if args.TimeMachineInfo != nil {
		p.Set("timeMachineInfo", args.TimeMachineInfo)
	}
	if len(args.ActionArguments) > 0 {
		p.Set("actionArguments", args.ActionArguments)
	}
	if len(args.Tags) > 0 {
		p.Set("tags", args.Tags)
	}

	return tools.Mutate(ctx, sc, ndb.Post("/databases/register", p))
}

func handleUpdateDatabase(ctx context.Context, sc *server.ServerContext, args *UpdateDatabaseArgs) (any, error) {
	p := tools.Payload{}.
		SetString("name", args.Name).
		SetString("description", args.Description).
		SetBool("resetName", args.ResetName).
		SetBool("resetDescription", args.ResetDescription).
		SetBool("resetTags", args.ResetTags)
	if args.Tags != nil {
		p.Set("tags", args.Tags)
	}

	// NDB only applies fields whose reset flag is set.
	if args.Name != "" && args.ResetName == nil {
		p.Set("resetName", true)
	}
	if args.Description != "" && args.ResetDescription == nil {
		p.Set("resetDescription", true)
	}
	if args.Tags != nil && args.ResetTags == nil {
		p.Set("resetTags", true)
	}

	return tools.Mutate(ctx, sc, ndb.Patch("/databases/"+ndb.PathID(args.ID), p))
}

func handleDeregisterDatabase(ctx context.Context, sc *server.ServerContext, args *DeregisterDatabaseArgs) (any, error) {
	p := tools.Payload{}.
		SetBool("delete", args.Delete).
		SetBool("remove", args.Remove).
		SetBool("softRemove", args.SoftRemove).
		SetBool("forced", args.Forced).
		SetBool("deleteTimeMachine", args.DeleteTimeMachine).
		SetBool("deleteLogicalCluster", args.DeleteLogicalCluster)

	if args.Delete == nil && args.Remove == nil {
		p.Set("remove", true)
	}

	return tools.Mutate(ctx, sc, ndb.Delete("/databases/"+ndb.PathID(args.ID), p))
}

func handleGetProvisionInputs(ctx context.Context, sc *server.ServerContext, args *ProvisionInputsArgs) (any, error) {
	category := args.Category
	if category == "" {
		category = defaultInputCategory
	}
	req := ndb.Get("/app_types/"+ndb.PathID(args.DatabaseType)+"/provision/input-file").
		WithQuery("category", category)
	return tools.Fetch(ctx, sc, req)
}
