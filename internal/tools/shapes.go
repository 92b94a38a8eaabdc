package tools

import (
	"context"

	"github.com/giantswarm/mcp-ndb/internal/filter"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// ListResult is returned by every list tool.
type ListResult struct {
	Items []map[string]any `json:"items"`
	// Count is the number of items returned.
	Count int `json:"count"`
	// Total is the number of records that matched the filter.
	Total    int                        `json:"total"`
	Warnings []output.TruncationWarning `json:"warnings,omitempty"`
}

// List runs the list shape: fetch, filter, project, truncate. The filter is
// parsed before the request is sent.
func List(ctx context.Context, sc *server.ServerContext, entity output.EntityType, req *ndb.Request, args ListArgs) (*ListResult, error) {
	spec, err := filter.Parse(args.ValueType, args.Value)
	if err != nil {
		return nil, FilterError(err)
	}

	resp, err := sc.NDBClient().Do(ctx, req)
	if err != nil {
		return nil, RemoteError(err)
	}
	records, err := ndb.Collection(resp)
	if err != nil {
		return nil, RemoteError(err)
	}

	matched := filter.Apply(records, spec)
	processed := sc.OutputProcessor().ProcessList(entity, matched, args.Limit)

	result := &ListResult{
		Items: processed.Items,
		Count: len(processed.Items),
		Total: len(matched),
	}
	if len(processed.Warnings) > 0 {
		result.Warnings = processed.Warnings
	}
	return result, nil
}

// Get runs the get shape: fetch one record and project it. An empty entity
// type returns the record unprojected.
func Get(ctx context.Context, sc *server.ServerContext, entity output.EntityType, req *ndb.Request) (map[string]any, error) {
	resp, err := sc.NDBClient().Do(ctx, req)
	if err != nil {
		return nil, RemoteError(err)
	}
	record, err := ndb.Object(resp)
	if err != nil {
		return nil, RemoteError(err)
	}
	return sc.OutputProcessor().ProcessSingle(entity, record), nil
}

// Fetch returns a raw, masked response for endpoints that have no projection
// rule and may answer with either an object or a list.
func Fetch(ctx context.Context, sc *server.ServerContext, req *ndb.Request) (any, error) {
	resp, err := sc.NDBClient().Do(ctx, req)
	if err != nil {
		return nil, RemoteError(err)
	}
	return sc.OutputProcessor().ProcessRaw(resp), nil
}

// Mutate runs the mutating shape. The response, usually an operation
// descriptor, is returned unprojected with secrets masked.
func Mutate(ctx context.Context, sc *server.ServerContext, req *ndb.Request) (any, error) {
	return Fetch(ctx, sc, req)
}
