package databases

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func databaseFixture() []any {
	return []any{
		map[string]any{
			"id": "db-1", "name": "orders", "type": "postgres_database", "status": "READY",
			"timeMachineId": "tm-1", "properties": []any{map[string]any{"name": "x"}},
		},
		map[string]any{
			"id": "db-2", "name": "billing", "type": "postgres_database", "status": "PROVISIONING",
			"timeMachineId": "tm-2", "properties": []any{},
		},
		map[string]any{
			"id": "db-3", "name": "ledger", "type": "oracle_database", "status": "FAILED",
			"timeMachineId": "tm-3", "properties": []any{},
		},
	}
}

func TestTools(t *testing.T) {
	assert.Equal(t, []string{
		"ndb_list_databases",
		"ndb_get_database",
		"ndb_provision_database",
		"ndb_register_database",
		"ndb_update_database",
		"ndb_deregister_database",
		"ndb_get_provision_inputs",
	}, toolstest.Names(Tools()))

	for _, tool := range Tools() {
		mutating := tool.Name() != "ndb_list_databases" && tool.Name() != "ndb_get_database" && tool.Name() != "ndb_get_provision_inputs"
		assert.Equal(t, mutating, tool.Mutating, tool.Name())
	}
}

func TestListDatabases_FilterAndProjection(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/databases", databaseFixture())
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_databases", map[string]any{
		"valueType": "type,status",
		"value":     "postgres_database,!READY",
	})

	require.Len(t, result.Items, 1)
	assert.Equal(t, map[string]any{
		"id":            "db-2",
		"name":          "billing",
		"type":          "postgres_database",
		"status":        "PROVISIONING",
		"timeMachineId": "tm-2",
	}, result.Items[0])
	assert.Equal(t, 1, result.Total)
}

func TestListDatabases_QueryParameters(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/databases", []any{})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_databases", map[string]any{
		"detailed":            true,
		"loadDbserverCluster": false,
		"timeZone":            "UTC",
	})
	assert.Empty(t, result.Items)

	call := client.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, "true", call.Query.Get("detailed"))
	assert.Equal(t, "false", call.Query.Get("load-dbserver-cluster"))
	assert.Equal(t, "UTC", call.Query.Get("time-zone"))
}

func TestGetDatabase(t *testing.T) {
	record := map[string]any{"id": "db-1", "name": "orders", "status": "READY", "internalField": "x"}
	client := ndbtest.NewMockClient().
		OnGet("/databases/db-1", record).
		OnGet("/databases/name/orders", record)
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_database", map[string]any{"id": "db-1"})
	assert.Equal(t, "orders", got["name"])
	assert.NotContains(t, got, "internalField")

	got = toolstest.Record(t, d, "ndb_get_database", map[string]any{"id": "orders", "valueType": "name"})
	assert.Equal(t, "db-1", got["id"])

	te := toolstest.ToolError(t, d, "ndb_get_database", map[string]any{"id": "orders", "valueType": "ip"})
	assert.Equal(t, tools.StageValidation, te.Stage)
}

func TestGetDatabase_NotFound(t *testing.T) {
	d := toolstest.NewDispatcher(t, ndbtest.NewMockClient(), Tools())

	te := toolstest.ToolError(t, d, "ndb_get_database", map[string]any{"id": "nope"})
	assert.Equal(t, tools.StageRemote, te.Stage)
	assert.Equal(t, "NotFound", te.Kind)
}

func provisionArgs() map[string]any {
	return map[string]any{
		"databaseType":         "postgres_database",
		"name":                 "orders",
		"nxClusterId":          "cluster-1",
		"softwareProfileId":    "sw-1",
		"computeProfileId":     "cp-1",
		"networkProfileId":     "net-1",
		"dbParameterProfileId": "param-1",
		"timeMachineInfo":      map[string]any{"slaId": "sla-1", "name": "orders_TM"},
		"actionArguments": []any{
			map[string]any{"name": "listener_port", "value": "5432"},
		},
	}
}

const schemaEndpoint = "/app_types/postgres_database/provision/input-file"

func postgresSchema() map[string]any {
	return map[string]any{"properties": []any{
		map[string]any{"name": "listener_port", "required": "true"},
	}}
}

func TestProvisionDatabase_Complete(t *testing.T) {
	client := ndbtest.NewMockClient().
		OnGet(schemaEndpoint, postgresSchema()).
		On(http.MethodPost, "/databases/provision", map[string]any{"operationId": "op-1", "entityId": "db-9"})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_provision_database", provisionArgs())
	assert.Equal(t, "op-1", got["operationId"])

	posts := client.CallsTo("/databases/provision")
	require.Len(t, posts, 1)
	body, ok := posts[0].Body.(tools.Payload)
	require.True(t, ok)
	assert.Equal(t, "orders", body["name"])
	assert.Equal(t, "postgres_database", body["databaseType"])
	assert.NotContains(t, body, "databaseDescription", "unset optional fields are omitted")
	assert.NotContains(t, body, "skipValidation")
}

func TestProvisionDatabase_IncompleteReturnsSuggestions(t *testing.T) {
	client := ndbtest.NewMockClient().
		OnGet(schemaEndpoint, postgresSchema()).
		OnGet("/slas", []any{map[string]any{"id": "sla-gold", "name": "GOLD", "dailyRetention": 7}})
	d := toolstest.NewDispatcher(t, client, Tools())

	args := provisionArgs()
	delete(args, "timeMachineInfo")
	delete(args, "actionArguments")

	result, err := d.Dispatch(context.Background(), "ndb_provision_database", args)
	require.NoError(t, err)

	incomplete, ok := result.(*incompleteProvision)
	require.True(t, ok, "got %T", result)
	assert.False(t, incomplete.Provisioned)
	assert.Equal(t, []string{"timeMachineInfo.slaId", "listener_port"}, incomplete.Missing)
	require.Len(t, incomplete.Suggestions["timeMachineInfo.slaId"], 1)
	assert.Equal(t, "sla-gold", incomplete.Suggestions["timeMachineInfo.slaId"][0]["id"])
	assert.Empty(t, client.CallsTo("/databases/provision"), "nothing is provisioned")
}

func TestProvisionDatabase_SkipValidation(t *testing.T) {
	client := ndbtest.NewMockClient().
		On(http.MethodPost, "/databases/provision", map[string]any{"operationId": "op-2"})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_provision_database", map[string]any{
		"databaseType":   "postgres_database",
		"name":           "scratch",
		"skipValidation": true,
	})

	assert.Equal(t, "op-2", got["operationId"])
	assert.Equal(t, 1, client.CallCount(), "no schema or suggestion lookups")
}

func TestProvisionDatabase_Validation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing database type", args: map[string]any{"name": "x"}},
		{name: "missing name", args: map[string]any{"databaseType": "postgres_database"}},
		{name: "unnamed action argument", args: map[string]any{
			"databaseType": "postgres_database", "name": "x",
			"actionArguments": []any{map[string]any{"value": "1"}},
		}},
		{name: "existing server without id", args: map[string]any{
			"databaseType": "postgres_database", "name": "x", "createDbserver": false,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := ndbtest.NewMockClient()
			d := toolstest.NewDispatcher(t, client, Tools())

			te := toolstest.ToolError(t, d, "ndb_provision_database", tt.args)
			assert.Equal(t, tools.StageValidation, te.Stage)
			assert.Equal(t, 0, client.CallCount())
		})
	}
}

func TestProvisionDatabase_ReadOnly(t *testing.T) {
	client := ndbtest.NewMockClient()
	d := toolstest.NewDispatcher(t, client, Tools(), server.WithReadOnly(true))

	te := toolstest.ToolError(t, d, "ndb_provision_database", provisionArgs())
	assert.Equal(t, tools.StagePolicy, te.Stage)
	assert.Equal(t, 0, client.CallCount())
}

func TestRegisterDatabase(t *testing.T) {
	client := ndbtest.NewMockClient().
		On(http.MethodPost, "/databases/register", map[string]any{"operationId": "op-3"})
	d := toolstest.NewDispatcher(t, client, Tools())

	toolstest.Record(t, d, "ndb_register_database", map[string]any{
		"databaseType": "postgres_database",
		"databaseName": "legacy",
		"vmIp":         "10.0.0.5",
		"clustered":    false,
	})

	body := client.LastCall().Body.(tools.Payload)
	assert.Equal(t, tools.Payload{
		"databaseType": "postgres_database",
		"databaseName": "legacy",
		"vmIp":         "10.0.0.5",
		"clustered":    false,
	}, body)

	te := toolstest.ToolError(t, d, "ndb_register_database", map[string]any{"databaseType": "postgres_database", "databaseName": "x"})
	assert.Contains(t, te.Message, "vmIp")
}

func TestUpdateDatabase(t *testing.T) {
	client := ndbtest.NewMockClient().
		On(http.MethodPatch, "/databases/db-1", map[string]any{"id": "db-1", "name": "orders-v2"})
	d := toolstest.NewDispatcher(t, client, Tools())

	toolstest.Record(t, d, "ndb_update_database", map[string]any{"id": "db-1", "name": "orders-v2"})

	body := client.LastCall().Body.(tools.Payload)
	assert.Equal(t, tools.Payload{"name": "orders-v2", "resetName": true}, body)

	te := toolstest.ToolError(t, d, "ndb_update_database", map[string]any{"id": "db-1"})
	assert.Equal(t, tools.StageValidation, te.Stage)
}

func TestDeregisterDatabase(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		wantBody tools.Payload
	}{
		{
			name:     "defaults to remove",
			args:     map[string]any{"id": "db-1"},
			wantBody: tools.Payload{"remove": true},
		},
		{
			name:     "delete with time machine",
			args:     map[string]any{"id": "db-1", "delete": true, "deleteTimeMachine": true},
			wantBody: tools.Payload{"delete": true, "deleteTimeMachine": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := ndbtest.NewMockClient().
				On(http.MethodDelete, "/databases/db-1", map[string]any{"operationId": "op-4"})
			d := toolstest.NewDispatcher(t, client, Tools())

			toolstest.Record(t, d, "ndb_deregister_database", tt.args)
			assert.Equal(t, tt.wantBody, client.LastCall().Body)
		})
	}
}

func TestGetProvisionInputs(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet(schemaEndpoint, postgresSchema())
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_provision_inputs", map[string]any{"databaseType": "postgres_database"})
	assert.Contains(t, got, "properties")
	assert.Equal(t, defaultInputCategory, client.LastCall().Query.Get("category"))
}
