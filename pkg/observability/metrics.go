package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRequestsTotal    = "chartkit.requests.total"
	metricRequestDuration  = "chartkit.request.duration.seconds"
	metricErrorsTotal      = "chartkit.errors.total"
	metricInflightRequests = "chartkit.inflight.requests"

	metricRendersTotal   = "chartkit.renders.total"
	metricRenderDuration = "chartkit.render.duration.seconds"
	metricNoDataTotal    = "chartkit.render.nodata.total"
	metricRenderPoints   = "chartkit.render.points"

	attrOp        = "op"
	attrStatus    = "status"
	attrComponent = "component"

	// StatusOK and StatusError label request and render outcomes.
	StatusOK    = "ok"
	StatusError = "error"
)

// requestBucketBoundaries covers 1ms to 10s; pages render in milliseconds.
var requestBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// pointBucketBoundaries covers series times records.
var pointBucketBoundaries = []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000}

// metricBuilder collects the first instrument creation error so a set of
// instruments needs one error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func newMetricBuilder(mt metric.Meter) *metricBuilder {
	return &metricBuilder{meter: mt}
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

func (b *metricBuilder) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(desc),
		metric.WithUnit(unit),
	}

	if len(bounds) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(bounds...))
	}

	h, err := b.meter.Float64Histogram(name, opts...)
	b.setErr(name, err)

	return h
}

func (b *metricBuilder) upDownCounter(name, desc, unit string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}

// REDMetrics holds the instruments for request rate, errors and duration.
type REDMetrics struct {
	requestsTotal    metric.Int64Counter
	requestDuration  metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	inflightRequests metric.Int64UpDownCounter
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	b := newMetricBuilder(mt)

	red := &REDMetrics{
		requestsTotal:    b.counter(metricRequestsTotal, "Total number of requests", "{request}"),
		requestDuration:  b.histogram(metricRequestDuration, "Request duration in seconds", "s", requestBucketBoundaries...),
		errorsTotal:      b.counter(metricErrorsTotal, "Total number of errors", "{error}"),
		inflightRequests: b.upDownCounter(metricInflightRequests, "Number of in-flight requests", "{request}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return red, nil
}

// RecordRequest records a completed request.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requestsTotal.Add(ctx, 1, attrs)
	rm.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// TrackInflight increments the in-flight gauge and returns its decrement.
func (rm *REDMetrics) TrackInflight(ctx context.Context, op string) func() {
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflightRequests.Add(ctx, 1, attrs)

	return func() {
		rm.inflightRequests.Add(ctx, -1, attrs)
	}
}

// RenderStats describes one rendered chart component.
type RenderStats struct {
	Component string
	Duration  time.Duration
	Points    int
	NoData    bool
	Err       error
}

// RenderMetrics holds the instruments for chart rendering.
type RenderMetrics struct {
	rendersTotal   metric.Int64Counter
	renderDuration metric.Float64Histogram
	noDataTotal    metric.Int64Counter
	renderPoints   metric.Float64Histogram
}

// NewRenderMetrics creates render instruments from the given meter.
func NewRenderMetrics(mt metric.Meter) (*RenderMetrics, error) {
	b := newMetricBuilder(mt)

	rm := &RenderMetrics{
		rendersTotal:   b.counter(metricRendersTotal, "Total number of rendered components", "{render}"),
		renderDuration: b.histogram(metricRenderDuration, "Render duration in seconds", "s", requestBucketBoundaries...),
		noDataTotal:    b.counter(metricNoDataTotal, "Charts rendered as the no-data placeholder", "{render}"),
		renderPoints:   b.histogram(metricRenderPoints, "Data points per rendered chart", "{point}", pointBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return rm, nil
}

// RecordRender records one render.
func (rm *RenderMetrics) RecordRender(ctx context.Context, stats RenderStats) {
	status := StatusOK
	if stats.Err != nil {
		status = StatusError
	}

	component := metric.WithAttributes(attribute.String(attrComponent, stats.Component))

	rm.rendersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrComponent, stats.Component),
		attribute.String(attrStatus, status),
	))
	rm.renderDuration.Record(ctx, stats.Duration.Seconds(), component)

	if stats.NoData {
		rm.noDataTotal.Add(ctx, 1, component)

		return
	}

	rm.renderPoints.Record(ctx, float64(stats.Points), component)
}
