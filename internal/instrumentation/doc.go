// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for mcp-ndb.
//
// # Metrics
//
// Inbound HTTP (SSE and streamable HTTP transports):
//   - http_requests_total, http_request_duration_seconds
//
// Outbound NDB API:
//   - ndb_api_requests_total, ndb_api_request_duration_seconds (method, endpoint, status class)
//   - ndb_auth_retries_total: requests re-issued after token expiry, by result
//   - ndb_session_token_acquisitions_total: session token exchanges, by result
//
// Tools:
//   - mcp_tool_calls_total, mcp_tool_call_duration_seconds (tool, status)
//   - ndb_provision_suggestion_fetches_total (field, status)
//
// Endpoint labels always go through NormalizeEndpoint; NDB entity UUIDs and
// names are replaced by placeholders.
//
// # Tracing
//
// Tool invocations open a server span (StartToolSpan) and every NDB API
// exchange a client span (StartAPISpan). The W3C trace context is injected
// into outbound requests.
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED: enable metrics and tracing (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG: sampling rate (default: 0.1)
//   - OTEL_SERVICE_NAME (default: mcp-ndb)
//
// # Example
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordAPIRequest(ctx, "GET", "/databases", 200, time.Since(start))
package instrumentation
