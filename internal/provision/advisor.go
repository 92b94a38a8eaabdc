package provision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// DefaultFetchConcurrency bounds concurrent suggestion lookups.
const DefaultFetchConcurrency = 4

// Structurally required provisioning fields. Nested fields use dot notation.
const (
	FieldCluster          = "nxClusterId"
	FieldSoftwareProfile  = "softwareProfileId"
	FieldComputeProfile   = "computeProfileId"
	FieldNetworkProfile   = "networkProfileId"
	FieldParameterProfile = "dbParameterProfileId"
	FieldSLA              = "timeMachineInfo.slaId"
)

// RequiredFields lists the structurally required fields in the order they are reported.
var RequiredFields = []string{
	FieldCluster,
	FieldSoftwareProfile,
	FieldComputeProfile,
	FieldNetworkProfile,
	FieldParameterProfile,
	FieldSLA,
}

// ErrMissingDatabaseType is returned when a request names no engine.
var ErrMissingDatabaseType = errors.New("databaseType is required")

// suggestionRule trims suggestion records to what a caller needs to pick one.
var suggestionRule = output.Rule{"id", "name", "description", "status", "engineType", "type"}

// Request is a provisioning request to validate.
type Request struct {
	// DatabaseType is the NDB engine, e.g. "postgres_database".
	DatabaseType string

	// Payload is the body that will be sent to /databases/provision.
	Payload map[string]any
}

// Result reports what a provisioning request is missing.
type Result struct {
	Missing     []string                    `json:"missing"`
	Suggestions map[string][]map[string]any `json:"suggestions,omitempty"`
	Warnings    []string                    `json:"warnings,omitempty"`
}

// Complete reports whether nothing is missing.
func (r *Result) Complete() bool {
	return len(r.Missing) == 0
}

// Advisor validates provisioning requests against NDB.
type Advisor struct {
	client      ndb.Client
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
	concurrency int
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Advisor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records suggestion lookups.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(a *Advisor) { a.metrics = m }
}

// WithConcurrency overrides DefaultFetchConcurrency.
func WithConcurrency(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAdvisor creates an Advisor that queries client.
func NewAdvisor(client ndb.Client, opts ...Option) *Advisor {
	a := &Advisor{
		client:      client,
		logger:      slog.Default(),
		concurrency: DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Validate checks req. The returned error is only non-nil for an unusable request;
// remote failures while fetching the schema or suggestions become warnings.
func (a *Advisor) Validate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.DatabaseType) == "" {
		return nil, ErrMissingDatabaseType
	}

	payload := plain(req.Payload)
	result := &Result{Missing: []string{}}

	for _, field := range RequiredFields {
		if !hasValue(payload, field) {
			result.Missing = append(result.Missing, field)
		}
	}

	schema, err := a.fetchSchema(ctx, req.DatabaseType)
	if err != nil {
		a.logger.Warn("failed to fetch provisioning schema",
			slog.String("database_type", req.DatabaseType),
			logging.Err(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("engine schema unavailable: %v", err))
	}

	present := actionArgumentNames(payload)
	var missingArgs []schemaProperty
	for _, prop := range schema {
		if prop.Required && !present[prop.Name] {
			result.Missing = append(result.Missing, prop.Name)
			missingArgs = append(missingArgs, prop)
		}
	}

	if result.Complete() {
		return result, nil
	}

	result.Suggestions = a.suggest(ctx, req.DatabaseType, result.Missing)
	for _, prop := range missingArgs {
		result.Suggestions[prop.Name] = []map[string]any{prop.suggestion()}
	}

	return result, nil
}

// lookup describes where candidate values for a missing field come from.
type lookup struct {
	endpoint    string
	profileType string
	byEngine    bool
}

var lookups = map[string]lookup{
	FieldCluster:          {endpoint: "/clusters"},
	FieldSoftwareProfile:  {endpoint: "/profiles", profileType: "Software", byEngine: true},
	FieldComputeProfile:   {endpoint: "/profiles", profileType: "Compute"},
	FieldNetworkProfile:   {endpoint: "/profiles", profileType: "Network", byEngine: true},
	FieldParameterProfile: {endpoint: "/profiles", profileType: "Database_Parameter", byEngine: true},
	FieldSLA:              {endpoint: "/slas"},
}

func (l lookup) request(databaseType string) *ndb.Request {
	req := ndb.Get(l.endpoint).WithQuery("type", l.profileType)
	if l.byEngine {
		req = req.WithQuery("engine", databaseType)
	}
	return req
}

// suggest fetches candidates for every missing field with a known lookup. Each
// fetch is isolated: its failure is logged and the field is left without suggestions.
func (a *Advisor) suggest(ctx context.Context, databaseType string, missing []string) map[string][]map[string]any {
	var (
		mu          sync.Mutex
		suggestions = make(map[string][]map[string]any)
		g           errgroup.Group
	)
	g.SetLimit(a.concurrency)

	for _, field := range missing {
		l, ok := lookups[field]
		if !ok {
			continue
		}
		g.Go(func() error {
			records, err := a.fetchCandidates(ctx, l.request(databaseType))
			if err != nil {
				a.metrics.RecordSuggestionFetch(ctx, field, instrumentation.StatusError)
				a.logger.Warn("failed to fetch provisioning suggestions",
					slog.String("field", field),
					logging.Endpoint(l.endpoint),
					logging.Err(err))
				return nil
			}
			a.metrics.RecordSuggestionFetch(ctx, field, instrumentation.StatusSuccess)

			mu.Lock()
			suggestions[field] = records
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return suggestions
}

func (a *Advisor) fetchCandidates(ctx context.Context, req *ndb.Request) ([]map[string]any, error) {
	raw, err := a.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	records, err := ndb.Collection(raw)
	if err != nil {
		return nil, err
	}
	return output.ProjectAll(records, suggestionRule), nil
}

// schemaProperty is one engine-specific provisioning input.
type schemaProperty struct {
	Name         string
	Required     bool
	Description  string
	DefaultValue any
}

func (p schemaProperty) suggestion() map[string]any {
	s := map[string]any{"name": p.Name}
	if p.Description != "" {
		s["description"] = p.Description
	}
	if p.DefaultValue != nil && p.DefaultValue != "" {
		s["defaultValue"] = p.DefaultValue
	}
	return s
}

func (a *Advisor) fetchSchema(ctx context.Context, databaseType string) ([]schemaProperty, error) {
	req := ndb.Get("/app_types/"+ndb.PathID(databaseType)+"/provision/input-file").
		WithQuery("category", "db_server;database")

	raw, err := a.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseSchema(raw), nil
}

// parseSchema accepts either {"properties": [...]} or a bare array of properties.
// Properties are sorted by name so missing fields are reported deterministically.
func parseSchema(raw any) []schemaProperty {
	var items []any
	switch t := raw.(type) {
	case map[string]any:
		items, _ = t["properties"].([]any)
	case []any:
		items = t
	}

	props := make([]schemaProperty, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		desc, _ := m["description"].(string)
		props = append(props, schemaProperty{
			Name:         name,
			Required:     truthy(m["required"]),
			Description:  desc,
			DefaultValue: m["default_value"],
		})
	}

	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}

// plain converts typed payload values, such as structs and named map types,
// into the generic JSON shapes that hasValue and actionArgumentNames walk.
func plain(payload map[string]any) map[string]any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return payload
	}
	return out
}

// hasValue reports whether a dotted path resolves to a non-empty value in payload.
func hasValue(payload map[string]any, path string) bool {
	var current any = payload
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = m[part]
		if !ok {
			return false
		}
	}

	switch t := current.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	}
	return true
}

// actionArgumentNames collects the names of the {"name", "value"} pairs in
// payload.actionArguments that carry a value.
func actionArgumentNames(payload map[string]any) map[string]bool {
	names := make(map[string]bool)
	args, _ := payload["actionArguments"].([]any)
	for _, arg := range args {
		m, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		if v, ok := m["value"]; ok && v != nil && v != "" {
			names[name] = true
		}
	}
	return names
}
