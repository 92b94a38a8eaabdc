package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the mcp-ndb module.
const TracerName = "github.com/giantswarm/mcp-ndb"

// Span attribute keys.
const (
	// SpanAttrTool is the MCP tool name.
	SpanAttrTool = "mcp.tool"

	// SpanAttrMutating marks tools that change remote state.
	SpanAttrMutating = "mcp.mutating"

	// SpanAttrEntityType is the NDB entity type (database, clone, ...).
	SpanAttrEntityType = "ndb.entity_type"

	// SpanAttrEntityID is the identifier of the addressed entity.
	SpanAttrEntityID = "ndb.entity_id"

	// SpanAttrMethod is the HTTP method of an NDB API call.
	SpanAttrMethod = "http.request.method"

	// SpanAttrEndpoint is the normalized NDB API endpoint.
	SpanAttrEndpoint = "ndb.endpoint"

	// SpanAttrStatusCode is the HTTP status returned by NDB.
	SpanAttrStatusCode = "http.response.status_code"

	// SpanAttrRequestID is the X-Request-ID sent to NDB.
	SpanAttrRequestID = "ndb.request_id"

	// SpanAttrAttempt is the 1-based attempt number of an NDB API call.
	SpanAttrAttempt = "ndb.attempt"

	// SpanAttrResultCount is the number of records returned by a list tool.
	SpanAttrResultCount = "mcp.result_count"
)

// SpanAttributeBuilder helps construct span attributes with consistent naming.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 6),
	}
}

// WithTool adds the MCP tool name attribute.
func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

// WithEntity adds entity type and identifier attributes. Empty values are skipped.
func (b *SpanAttributeBuilder) WithEntity(entityType, id string) *SpanAttributeBuilder {
	if entityType != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrEntityType, entityType))
	}
	if id != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrEntityID, id))
	}
	return b
}

// WithMutating adds the mutating indicator attribute.
func (b *SpanAttributeBuilder) WithMutating(mutating bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrMutating, mutating))
	return b
}

// WithResultCount adds the number of returned records.
func (b *SpanAttributeBuilder) WithResultCount(n int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Int(SpanAttrResultCount, n))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartSpan starts a new span with the given name and attributes.
// The caller ends the span.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartToolSpan starts a server span for an MCP tool invocation.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartAPISpan starts a client span for one NDB API exchange. endpoint must be normalized.
func StartAPISpan(ctx context.Context, method, endpoint string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+2)
	allAttrs = append(allAttrs,
		attribute.String(SpanAttrMethod, method),
		attribute.String(SpanAttrEndpoint, endpoint),
	)
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "ndb."+method+" "+endpoint,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// TraceIDFromContext returns the trace ID of the span in ctx, or "" when there is none.
func TraceIDFromContext(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}

// SpanIDFromContext returns the span ID of the span in ctx, or "" when there is none.
func SpanIDFromContext(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		return sc.SpanID().String()
	}
	return ""
}
