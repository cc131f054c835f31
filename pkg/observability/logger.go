package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Log keys added by LogHandler.
const (
	LogKeyTraceID = "trace_id"
	LogKeySpanID  = "span_id"
	LogKeyService = "service"
	LogKeyEnv     = "env"
	LogKeyMode    = "mode"
)

type logAttrsKey struct{}

// WithLogAttrs returns a context whose log records carry attrs. Attrs from
// enclosing calls come first.
func WithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	prev := LogAttrs(ctx)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, logAttrsKey{}, merged)
}

// LogAttrs returns the attrs attached with WithLogAttrs.
func LogAttrs(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(logAttrsKey{}).([]slog.Attr)

	return attrs
}

// LogHandler decorates records with the process identity, the active span
// and any attrs carried on the context. Identity attrs are bound before any
// group, so they stay top-level.
type LogHandler struct {
	next slog.Handler
}

// NewLogHandler wraps next. An empty env is left out.
func NewLogHandler(next slog.Handler, service, env string, mode AppMode) *LogHandler {
	identity := []slog.Attr{
		slog.String(LogKeyService, service),
		slog.String(LogKeyMode, string(mode)),
	}

	if env != "" {
		identity = append(identity, slog.String(LogKeyEnv, env))
	}

	return &LogHandler{next: next.WithAttrs(identity)}
}

// Enabled reports whether next handles level.
func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds span and context attrs to a copy of record.
func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanContextFromContext(ctx)
	carried := LogAttrs(ctx)

	if span.IsValid() || len(carried) > 0 {
		record = record.Clone()
		record.AddAttrs(carried...)

		if span.IsValid() {
			record.AddAttrs(
				slog.String(LogKeyTraceID, span.TraceID().String()),
				slog.String(LogKeySpanID, span.SpanID().String()),
			)
		}
	}

	if err := h.next.Handle(ctx, record); err != nil {
		return fmt.Errorf("log handler: %w", err)
	}

	return nil
}

// WithAttrs implements [slog.Handler].
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements [slog.Handler].
func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{next: h.next.WithGroup(name)}
}
