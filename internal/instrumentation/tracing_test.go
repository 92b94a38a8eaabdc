package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func attrsToMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestSpanAttributeBuilder(t *testing.T) {
	t.Run("empty builder", func(t *testing.T) {
		if attrs := NewSpanAttributeBuilder().Build(); len(attrs) != 0 {
			t.Errorf("Empty builder should return 0 attributes, got %d", len(attrs))
		}
	})

	t.Run("entity skips empty values", func(t *testing.T) {
		attrs := NewSpanAttributeBuilder().WithEntity("database", "").Build()
		if len(attrs) != 1 {
			t.Fatalf("Expected 1 attribute, got %d", len(attrs))
		}
		if attrs[0].Key != SpanAttrEntityType {
			t.Errorf("Expected key %q, got %q", SpanAttrEntityType, attrs[0].Key)
		}
	})

	t.Run("chained", func(t *testing.T) {
		attrs := NewSpanAttributeBuilder().
			WithTool("ndb_delete_clone").
			WithEntity("clone", "c-1").
			WithMutating(true).
			WithResultCount(0).
			Build()

		m := attrsToMap(attrs)
		if m[SpanAttrTool].AsString() != "ndb_delete_clone" {
			t.Errorf("unexpected tool %q", m[SpanAttrTool].AsString())
		}
		if m[SpanAttrEntityID].AsString() != "c-1" {
			t.Errorf("unexpected entity id %q", m[SpanAttrEntityID].AsString())
		}
		if !m[SpanAttrMutating].AsBool() {
			t.Error("expected mutating to be true")
		}
	})
}

func TestStartAPISpan(t *testing.T) {
	recorder := installRecorder(t)

	_, span := StartAPISpan(context.Background(), "GET", "/databases/:uuid",
		attribute.String(SpanAttrRequestID, "req-1"))
	SetSpanError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != "ndb.GET /databases/:uuid" {
		t.Errorf("unexpected span name %q", s.Name())
	}
	if s.SpanKind() != trace.SpanKindClient {
		t.Errorf("expected client span, got %v", s.SpanKind())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}
	m := attrsToMap(s.Attributes())
	if m[SpanAttrRequestID].AsString() != "req-1" {
		t.Errorf("missing request id attribute")
	}
}

func TestStartToolSpan(t *testing.T) {
	recorder := installRecorder(t)

	ctx, span := StartToolSpan(context.Background(), "ndb_list_clusters")
	if TraceIDFromContext(ctx) == "" || SpanIDFromContext(ctx) == "" {
		t.Error("expected trace and span IDs inside a recorded span")
	}
	SetSpanSuccess(span)
	AddSpanEvent(span, "filtered", attribute.Int(SpanAttrResultCount, 2))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].SpanKind() != trace.SpanKindServer {
		t.Errorf("expected server span, got %v", spans[0].SpanKind())
	}
	if len(spans[0].Events()) != 1 {
		t.Errorf("expected 1 event, got %d", len(spans[0].Events()))
	}
}

func TestSetSpanError_NilIsNoop(t *testing.T) {
	recorder := installRecorder(t)

	_, span := StartSpan(context.Background(), "noop")
	SetSpanError(span, nil)
	span.End()

	if code := recorder.Ended()[0].Status().Code; code != codes.Unset {
		t.Errorf("expected unset status, got %v", code)
	}
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	if id := TraceIDFromContext(context.Background()); id != "" {
		t.Errorf("TraceIDFromContext with no span = %q, want empty string", id)
	}
	if id := SpanIDFromContext(context.Background()); id != "" {
		t.Errorf("SpanIDFromContext with no span = %q, want empty string", id)
	}
}
