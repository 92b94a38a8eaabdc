package timemachines

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func TestListTimeMachines(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/tms", []any{
		map[string]any{"id": "tm-1", "name": "orders_TM", "status": "READY", "slaId": "gold"},
		map[string]any{"id": "tm-2", "name": "billing_TM", "status": "PAUSED", "slaId": "bronze"},
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_time_machines", map[string]any{
		"valueType":    "status",
		"value":        "PAUSED",
		"loadDatabase": true,
	})

	require.Len(t, result.Items, 1)
	assert.Equal(t, "tm-2", result.Items[0]["id"])
	assert.Equal(t, "true", client.LastCall().Query.Get("load-database"))
}

func TestGetTimeMachine(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/tms/name/orders_TM", map[string]any{"id": "tm-1", "name": "orders_TM"})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_time_machine", map[string]any{"id": "orders_TM", "valueType": "name"})
	assert.Equal(t, "tm-1", got["id"])
}

func TestGetCapability(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/tms/tm-1/capability", map[string]any{
		"timeMachineId": "tm-1",
		"capability": []any{
			map[string]any{"mode": "PITR", "from": "2024-05-01 00:00:00", "to": "2024-05-02 00:00:00"},
		},
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_time_machine_capability", map[string]any{"id": "tm-1", "loadHealth": true})
	assert.Len(t, got["capability"], 1)
	assert.Equal(t, "true", client.LastCall().Query.Get("load-health"))
}

func TestPauseResume(t *testing.T) {
	client := ndbtest.NewMockClient().
		On(http.MethodPatch, "/tms/tm-1/pause", map[string]any{"operationId": "op-1"}).
		On(http.MethodPatch, "/tms/tm-1/resume", map[string]any{"operationId": "op-2"})
	d := toolstest.NewDispatcher(t, client, Tools())

	toolstest.Record(t, d, "ndb_pause_time_machine", map[string]any{"id": "tm-1", "forced": true, "reason": "maintenance"})
	assert.Equal(t, tools.Payload{"forced": true, "reason": "maintenance"}, client.LastCall().Body)

	toolstest.Record(t, d, "ndb_resume_time_machine", map[string]any{"id": "tm-1", "resetCapability": false})
	assert.Equal(t, tools.Payload{"resetCapability": false}, client.LastCall().Body)
}

func TestPause_RemoteFailure(t *testing.T) {
	client := ndbtest.NewMockClient().Fail(http.MethodPatch, "/tms/tm-1/pause", &ndb.APIError{
		Kind:       ndb.KindUnknown,
		StatusCode: http.StatusConflict,
		Message:    "time machine is already paused",
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	te := toolstest.ToolError(t, d, "ndb_pause_time_machine", map[string]any{"id": "tm-1"})
	assert.Equal(t, tools.StageRemote, te.Stage)

	var apiErr *ndb.APIError
	require.True(t, errors.As(te, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestPause_ReadOnly(t *testing.T) {
	client := ndbtest.NewMockClient()
	d := toolstest.NewDispatcher(t, client, Tools(), server.WithReadOnly(true))

	te := toolstest.ToolError(t, d, "ndb_pause_time_machine", map[string]any{"id": "tm-1"})
	assert.ErrorIs(t, te, tools.ErrReadOnly)

	// Reads stay available.
	client.OnGet("/tms", []any{})
	toolstest.List(t, d, "ndb_list_time_machines", nil)
}
