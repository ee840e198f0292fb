package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrBatchID = "batch_id"
	attrService = "service"
	attrEnv     = "env"
	attrMode    = "mode"
)

type batchIDKey struct{}

// WithBatchID returns a context whose log records carry the ingestion batch id.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, batchIDKey{}, id)
}

// BatchID returns the ingestion batch id stored in ctx.
func BatchID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(batchIDKey{}).(string)

	return id, ok && id != ""
}

// TracingHandler is an [slog.Handler] that adds the active span's trace_id and
// span_id and the current batch_id to every record. Service attributes are
// attached once at construction so they stay at the top level under groups.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner with trace and batch correlation.
func NewTracingHandler(inner slog.Handler, service, env string, appMode AppMode) *TracingHandler {
	attrs := []slog.Attr{
		slog.String(attrService, service),
		slog.String(attrMode, string(appMode)),
	}

	if env != "" {
		attrs = append(attrs, slog.String(attrEnv, env))
	}

	return &TracingHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds correlation attributes from ctx, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	if id, ok := BatchID(ctx); ok {
		record.AddAttrs(slog.String(attrBatchID, id))
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a handler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

// WithGroup returns a handler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
