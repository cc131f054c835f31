package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/chartkit/pkg/observability"
)

func recordSpan(t *testing.T, logger *slog.Logger, attrs ...attribute.KeyValue) map[string]any {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	filter := observability.NewAttributeFilter(
		sdktrace.NewSimpleSpanProcessor(exporter), observability.DefaultAttributePolicy(), logger)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(filter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	_, span := tp.Tracer("test").Start(context.Background(), "GET /areachart-default.html")
	span.SetAttributes(attrs...)
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	out := make(map[string]any, len(spans[0].Attributes))
	for _, kv := range spans[0].Attributes {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}

	return out
}

func TestAttributeFilter_KeepsAllowed(t *testing.T) {
	t.Parallel()

	attrs := recordSpan(t, nil,
		attribute.String(observability.AttrStory, "areachart-default"),
		attribute.Int(observability.AttrPoints, 24),
		attribute.String("http.target", "/areachart-default.html"),
		attribute.String("error", "boom"),
	)

	assert.Equal(t, "areachart-default", attrs[observability.AttrStory])
	assert.Equal(t, int64(24), attrs[observability.AttrPoints])
	assert.Equal(t, "/areachart-default.html", attrs["http.target"])
	assert.Equal(t, "boom", attrs["error"])
}

func TestAttributeFilter_DropsBlockedAndUnknown(t *testing.T) {
	t.Parallel()

	attrs := recordSpan(t, nil,
		attribute.String("http.request.header.cookie", "session=1"),
		attribute.String("url.query", "theme=dark&token=x"),
		attribute.String("user.id", "42"),
		attribute.String("random.key", "v"),
		attribute.String(observability.AttrTheme, "dark"),
	)

	assert.Equal(t, map[string]any{observability.AttrTheme: "dark"}, attrs)
}

func TestAttributeFilter_LogsDroppedKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	recordSpan(t, logger, attribute.String("user.email", "someone@example.com"))

	assert.Contains(t, buf.String(), "span attribute dropped")
	assert.Contains(t, buf.String(), "user.email")
	assert.NotContains(t, buf.String(), "someone@example.com")
}

func TestAttributePolicy_Allows(t *testing.T) {
	t.Parallel()

	policy := observability.DefaultAttributePolicy()

	assert.True(t, policy.Allows("chartkit.group"))
	assert.True(t, policy.Allows("http.response.status_code"))
	assert.True(t, policy.Allows("url.path"))
	assert.False(t, policy.Allows("url.query"))
	assert.False(t, policy.Allows("http.request.header.authorization"))
	assert.False(t, policy.Allows("db.statement"))
}
