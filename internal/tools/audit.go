package tools

import (
	"context"
	"time"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/logging"
)

// entityIDKeys are the argument names that identify the addressed record, in
// order of preference.
var entityIDKeys = []string{"id", "name", "timeMachineId", "databaseId"}

// invoke runs a tool with the read-only check, audit logging, tracing and
// metrics around it.
func (d *Dispatcher) invoke(ctx context.Context, t Tool, args map[string]any) (any, error) {
	start := time.Now()
	entityID := entityIDFromArgs(args)

	ctx, span := instrumentation.StartToolSpan(ctx, t.Name(),
		instrumentation.NewSpanAttributeBuilder().
			WithEntity(string(t.Entity), entityID).
			WithMutating(t.Mutating).
			Build()...,
	)
	defer span.End()

	invocation := instrumentation.NewToolInvocation(t.Name()).
		WithEntity(string(t.Entity), entityID).
		WithMutating(t.Mutating).
		WithSpanContext(ctx)

	result, err := d.run(ctx, t, args)

	status := instrumentation.StatusSuccess
	errorKind := ""
	if err != nil {
		te := Translate(err)
		err = te
		status = instrumentation.StatusError
		errorKind = te.Kind
		invocation.ErrorCode = te.Kind
		invocation.CompleteWithError(te)
		instrumentation.SetSpanError(span, te)
		d.sc.Logger().Debug("tool failed",
			logging.Tool(t.Name()),
			logging.Status(string(te.Stage)),
			logging.SanitizedErr(te))
	} else {
		invocation.CompleteSuccess()
		if lr, ok := result.(*ListResult); ok {
			span.SetAttributes(instrumentation.NewSpanAttributeBuilder().WithResultCount(lr.Count).Build()...)
		}
		instrumentation.SetSpanSuccess(span)
	}

	d.sc.AuditLogger().LogToolInvocation(ctx, invocation)
	d.sc.Metrics().RecordToolCall(ctx, t.Name(), status, errorKind, time.Since(start))

	return result, err
}

func (d *Dispatcher) run(ctx context.Context, t Tool, args map[string]any) (any, error) {
	if te := CheckMutatingOperation(d.sc, t); te != nil {
		return nil, te
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.Handler(ctx, d.sc, args)
}

func entityIDFromArgs(args map[string]any) string {
	for _, key := range entityIDKeys {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
