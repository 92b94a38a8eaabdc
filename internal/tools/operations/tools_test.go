package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func TestListOperations(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/operations", map[string]any{
		"operations": []any{
			map[string]any{"id": "op-1", "type": "provision_database", "status": "5", "percentageComplete": "100"},
			map[string]any{"id": "op-2", "type": "create_snapshot", "status": "1", "percentageComplete": "40"},
		},
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_operations", map[string]any{
		"days":      2,
		"entityId":  "db-1",
		"valueType": "percentageComplete",
		"value":     "<100",
	})

	require.Len(t, result.Items, 1)
	assert.Equal(t, "op-2", result.Items[0]["id"])

	q := client.LastCall().Query
	assert.Equal(t, "2", q.Get("days"))
	assert.Equal(t, "db-1", q.Get("entity-id"))
	assert.False(t, q.Has("status"))
}

func TestListOperations_NegativeDays(t *testing.T) {
	d := toolstest.NewDispatcher(t, ndbtest.NewMockClient(), Tools())

	te := toolstest.ToolError(t, d, "ndb_list_operations", map[string]any{"days": -1})
	assert.Equal(t, tools.StageValidation, te.Stage)
}

func TestGetOperation(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/operations/op-1", map[string]any{"id": "op-1", "percentageComplete": "100", "work": map[string]any{}})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_operation", map[string]any{"id": "op-1"})
	assert.Equal(t, map[string]any{"id": "op-1", "percentageComplete": "100"}, got)
}
