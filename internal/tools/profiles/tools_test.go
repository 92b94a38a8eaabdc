package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func TestListProfiles(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/profiles", []any{
		map[string]any{"id": "p1", "name": "PG 15", "type": "Software", "engineType": "postgres_database", "systemProfile": false},
		map[string]any{"id": "p2", "name": "DEFAULT_OOB_POSTGRESQL", "type": "Software", "engineType": "postgres_database", "systemProfile": true},
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_profiles", map[string]any{
		"type":      "software",
		"engine":    "postgres_database",
		"valueType": "systemProfile",
		"value":     "!true",
	})

	require.Len(t, result.Items, 1)
	assert.Equal(t, "p1", result.Items[0]["id"])

	q := client.LastCall().Query
	assert.Equal(t, "Software", q.Get("type"))
	assert.Equal(t, "postgres_database", q.Get("engine"))
}

func TestListProfiles_InvalidType(t *testing.T) {
	client := ndbtest.NewMockClient()
	d := toolstest.NewDispatcher(t, client, Tools())

	te := toolstest.ToolError(t, d, "ndb_list_profiles", map[string]any{"type": "Disk"})
	assert.Equal(t, tools.StageValidation, te.Stage)
	assert.Zero(t, client.CallCount())
}

func TestGetProfile(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/profiles/p1", map[string]any{"id": "p1", "latestVersion": "2.0"})
	d := toolstest.NewDispatcher(t, client, Tools())

	got := toolstest.Record(t, d, "ndb_get_profile", map[string]any{"id": "p1"})
	assert.Equal(t, "2.0", got["latestVersion"])
}
