package clusters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func TestListClusters(t *testing.T) {
	client := ndbtest.NewMockClient().OnGet("/clusters", []any{
		map[string]any{"id": "c1", "name": "prod-ahv", "status": "UP", "healthy": true, "version": "6.5", "managementServerInfo": map[string]any{}},
		map[string]any{"id": "c2", "name": "dr-ahv", "status": "UP", "healthy": false, "version": "6.1"},
	})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_clusters", map[string]any{"valueType": "healthy", "value": "true"})
	require.Len(t, result.Items, 1)
	assert.Equal(t, "c1", result.Items[0]["id"])
	assert.NotContains(t, result.Items[0], "managementServerInfo")

	result = toolstest.List(t, d, "ndb_list_clusters", map[string]any{"valueType": "version", "value": "<6.5"})
	require.Len(t, result.Items, 1)
	assert.Equal(t, "c2", result.Items[0]["id"])
}

func TestGetCluster(t *testing.T) {
	client := ndbtest.NewMockClient().
		OnGet("/clusters/c1", map[string]any{"id": "c1", "name": "prod-ahv"}).
		OnGet("/clusters/name/prod-ahv", map[string]any{"id": "c1", "name": "prod-ahv"})
	d := toolstest.NewDispatcher(t, client, Tools())

	assert.Equal(t, "prod-ahv", toolstest.Record(t, d, "ndb_get_cluster", map[string]any{"id": "c1"})["name"])
	assert.Equal(t, "c1", toolstest.Record(t, d, "ndb_get_cluster", map[string]any{"id": "prod-ahv", "valueType": "name"})["id"])
}
