package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb/ndbtest"
	"github.com/giantswarm/mcp-ndb/internal/tools/toolstest"
)

func TestUsers(t *testing.T) {
	client := ndbtest.NewMockClient().
		OnGet("/users", []any{
			map[string]any{"id": "u1", "username": "admin", "roles": []any{"Super Admin"}, "password": "x"},
			map[string]any{"id": "u2", "username": "dba", "roles": []any{"Database Admin"}, "isExternalAuth": true},
		}).
		OnGet("/users/u2", map[string]any{"id": "u2", "username": "dba"})
	d := toolstest.NewDispatcher(t, client, Tools())

	result := toolstest.List(t, d, "ndb_list_users", map[string]any{"valueType": "isExternalAuth", "value": "true"})
	require.Len(t, result.Items, 1)
	assert.Equal(t, "dba", result.Items[0]["username"])

	all := toolstest.List(t, d, "ndb_list_users", nil)
	require.Len(t, all.Items, 2)
	assert.NotContains(t, all.Items[0], "password")

	assert.Equal(t, "dba", toolstest.Record(t, d, "ndb_get_user", map[string]any{"id": "u2"})["username"])
}
