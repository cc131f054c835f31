package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span attribute keys set by chartkit itself.
const (
	AttrStory     = "chartkit.story"
	AttrGroup     = "chartkit.group"
	AttrTheme     = "chartkit.theme"
	AttrPoints    = "chartkit.points"
	AttrComponent = "chartkit.component"
)

// AttributePolicy decides which span attributes reach the exporter. Keys
// matching a Block prefix are always dropped; otherwise a key must match an
// Allow prefix.
type AttributePolicy struct {
	Allow []string
	Block []string
}

// DefaultAttributePolicy keeps chartkit, HTTP and error attributes and drops
// request headers, query strings and user identifiers.
func DefaultAttributePolicy() AttributePolicy {
	return AttributePolicy{
		Allow: []string{"chartkit.", "http.", "error.", "url.path", "server.", "exception."},
		Block: []string{"http.request.header.", "http.response.header.", "url.query", "user.", "enduser."},
	}
}

// Allows reports whether key passes the policy.
func (p AttributePolicy) Allows(key string) bool {
	for _, prefix := range p.Block {
		if strings.HasPrefix(key, prefix) {
			return false
		}
	}

	for _, prefix := range p.Allow {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return key == "error"
}

// attributeFilter strips span attributes the policy rejects before handing
// the span to the delegate processor.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
	policy   AttributePolicy
	logger   *slog.Logger
}

// NewAttributeFilter wraps delegate with policy. A non-nil logger reports
// every dropped key at debug level.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, policy AttributePolicy, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, policy: policy, logger: logger}
}

func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s, filter: f})
}

func (f *attributeFilter) Shutdown(ctx context.Context) error {
	err := f.delegate.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	err := f.delegate.ForceFlush(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

func (f *attributeFilter) keep(spanName string, key attribute.Key) bool {
	if f.policy.Allows(string(key)) {
		return true
	}

	if f.logger != nil {
		f.logger.Debug("span attribute dropped", "span", spanName, "key", string(key))
	}

	return false
}

// filteredSpan exposes only the attributes the policy keeps; a ReadOnlySpan
// cannot be mutated in place.
type filteredSpan struct {
	sdktrace.ReadOnlySpan

	filter *attributeFilter
}

func (s *filteredSpan) Attributes() []attribute.KeyValue {
	orig := s.ReadOnlySpan.Attributes()
	kept := make([]attribute.KeyValue, 0, len(orig))

	for _, kv := range orig {
		if s.filter.keep(s.Name(), kv.Key) {
			kept = append(kept, kv)
		}
	}

	return kept
}
