package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod   = "method"
	attrPath     = "path"
	attrStatus   = "status"
	attrEndpoint = "endpoint"
	attrTool     = "tool"
	attrKind     = "kind"
	attrResult   = "result"
	attrField    = "field"
)

var durationBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Inbound HTTP (SSE and streamable HTTP transports)
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Outbound NDB API
	apiRequestsTotal   metric.Int64Counter
	apiRequestDuration metric.Float64Histogram
	authRetriesTotal   metric.Int64Counter
	tokenAcquisitions  metric.Int64Counter

	// MCP tools
	toolCallsTotal   metric.Int64Counter
	toolCallDuration metric.Float64Histogram

	// Provisioning advice
	suggestionFetches metric.Int64Counter

	// detailedLabels adds the error kind to tool call metrics.
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.apiRequestsTotal, err = meter.Int64Counter(
		"ndb_api_requests_total",
		metric.WithDescription("Total number of requests sent to the NDB API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ndb_api_requests_total counter: %w", err)
	}

	m.apiRequestDuration, err = meter.Float64Histogram(
		"ndb_api_request_duration_seconds",
		metric.WithDescription("NDB API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ndb_api_request_duration_seconds histogram: %w", err)
	}

	m.authRetriesTotal, err = meter.Int64Counter(
		"ndb_auth_retries_total",
		metric.WithDescription("Requests re-issued after the NDB API reported an expired token"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ndb_auth_retries_total counter: %w", err)
	}

	m.tokenAcquisitions, err = meter.Int64Counter(
		"ndb_session_token_acquisitions_total",
		metric.WithDescription("Session token exchanges against the NDB API"),
		metric.WithUnit("{acquisition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ndb_session_token_acquisitions_total counter: %w", err)
	}

	m.toolCallsTotal, err = meter.Int64Counter(
		"mcp_tool_calls_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_calls_total counter: %w", err)
	}

	m.toolCallDuration, err = meter.Float64Histogram(
		"mcp_tool_call_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_call_duration_seconds histogram: %w", err)
	}

	m.suggestionFetches, err = meter.Int64Counter(
		"ndb_provision_suggestion_fetches_total",
		metric.WithDescription("Suggestion lookups performed for incomplete provisioning requests"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ndb_provision_suggestion_fetches_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an inbound HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)

	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAPIRequest records one exchange with the NDB API. The endpoint must
// already be normalized with NormalizeEndpoint. statusCode 0 means no response
// was received.
func (m *Metrics) RecordAPIRequest(ctx context.Context, method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil || m.apiRequestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrEndpoint, endpoint),
		attribute.String(attrStatus, StatusClass(statusCode)),
	)

	m.apiRequestsTotal.Add(ctx, 1, attrs)
	m.apiRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAuthRetry records the outcome of a request re-issued after token expiry.
// Result should be RetryResultRecovered or RetryResultExpired.
func (m *Metrics) RecordAuthRetry(ctx context.Context, result string) {
	if m == nil || m.authRetriesTotal == nil {
		return
	}
	m.authRetriesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordTokenAcquisition records a session token exchange.
func (m *Metrics) RecordTokenAcquisition(ctx context.Context, result string) {
	if m == nil || m.tokenAcquisitions == nil {
		return
	}
	m.tokenAcquisitions.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolCall records an MCP tool invocation. errorKind is only attached when
// detailed labels are enabled.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status, errorKind string, duration time.Duration) {
	if m == nil || m.toolCallsTotal == nil {
		return
	}

	kv := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && errorKind != "" {
		kv = append(kv, attribute.String(attrKind, errorKind))
	}
	attrs := metric.WithAttributes(kv...)

	m.toolCallsTotal.Add(ctx, 1, attrs)
	m.toolCallDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSuggestionFetch records one suggestion lookup for a missing provisioning field.
func (m *Metrics) RecordSuggestionFetch(ctx context.Context, field, status string) {
	if m == nil || m.suggestionFetches == nil {
		return
	}
	m.suggestionFetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrField, field),
		attribute.String(attrStatus, status),
	))
}
