// Package toolstest provides helpers for testing tool packages against an
// ndbtest.MockClient.
package toolstest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
)

// NewDispatcher builds a Dispatcher over set, backed by client.
func NewDispatcher(t *testing.T, client ndb.Client, set []tools.Tool, opts ...server.Option) *tools.Dispatcher {
	t.Helper()

	base := []server.Option{
		server.WithNDBClient(client),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	sc, err := server.NewServerContext(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	d, err := tools.NewDispatcher(sc, set...)
	require.NoError(t, err)
	return d
}

// List dispatches a list tool and returns its result.
func List(t *testing.T, d *tools.Dispatcher, name string, args map[string]any) *tools.ListResult {
	t.Helper()
	result, err := d.Dispatch(context.Background(), name, args)
	require.NoError(t, err)
	lr, ok := result.(*tools.ListResult)
	require.True(t, ok, "expected *tools.ListResult, got %T", result)
	return lr
}

// Record dispatches a tool that returns a single record.
func Record(t *testing.T, d *tools.Dispatcher, name string, args map[string]any) map[string]any {
	t.Helper()
	result, err := d.Dispatch(context.Background(), name, args)
	require.NoError(t, err)
	m, ok := result.(map[string]any)
	require.True(t, ok, "expected map[string]any, got %T", result)
	return m
}

// ToolError dispatches a tool that is expected to fail.
func ToolError(t *testing.T, d *tools.Dispatcher, name string, args map[string]any) *tools.ToolError {
	t.Helper()
	_, err := d.Dispatch(context.Background(), name, args)
	require.Error(t, err)
	te, ok := tools.AsToolError(err)
	require.True(t, ok, "expected *tools.ToolError, got %T", err)
	return te
}

// Names returns the tool names in set.
func Names(set []tools.Tool) []string {
	names := make([]string, len(set))
	for i, tool := range set {
		names[i] = tool.Name()
	}
	return names
}
