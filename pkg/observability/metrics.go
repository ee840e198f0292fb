package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricClassificationsTotal = "commitlens.ingest.classifications.total"
	metricBatchDuration        = "commitlens.ingest.batch.duration.seconds"
	metricBatchSize            = "commitlens.ingest.batch.size"
	metricInflight             = "commitlens.ingest.inflight"

	attrOutcome = "outcome"
	attrStatus  = "status"
)

// Classification outcomes.
const (
	OutcomeClassified = "classified"
	OutcomeFailed     = "failed"
	OutcomeDiscarded  = "discarded"
)

// Batch statuses.
const (
	StatusComplete   = "complete"
	StatusSuperseded = "superseded"
	StatusCancelled  = "cancelled"
)

// batchBucketBoundaries covers 1ms to 60s.
var batchBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// IngestMetrics holds the instruments of the ingestion stage. A nil
// *IngestMetrics records nothing.
type IngestMetrics struct {
	classifications metric.Int64Counter
	batchDuration   metric.Float64Histogram
	batchSize       metric.Int64Histogram
	inflight        metric.Int64UpDownCounter
}

// NewIngestMetrics creates the ingestion instruments from mt.
func NewIngestMetrics(mt metric.Meter) (*IngestMetrics, error) {
	classifications, err := mt.Int64Counter(metricClassificationsTotal,
		metric.WithDescription("Classification results by outcome"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricClassificationsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricBatchDuration,
		metric.WithDescription("Time from batch start to its last slot being filled"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(batchBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBatchDuration, err)
	}

	size, err := mt.Int64Histogram(metricBatchSize,
		metric.WithDescription("Number of commits per batch"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBatchSize, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflight,
		metric.WithDescription("Classifications currently running"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflight, err)
	}

	return &IngestMetrics{
		classifications: classifications,
		batchDuration:   duration,
		batchSize:       size,
		inflight:        inflight,
	}, nil
}

// RecordClassification counts one slot result.
func (im *IngestMetrics) RecordClassification(ctx context.Context, outcome string) {
	if im == nil {
		return
	}

	im.classifications.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOutcome, outcome)))
}

// RecordBatch records the duration and size of a finished batch.
func (im *IngestMetrics) RecordBatch(ctx context.Context, status string, size int, duration time.Duration) {
	if im == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	im.batchDuration.Record(ctx, duration.Seconds(), attrs)
	im.batchSize.Record(ctx, int64(size), attrs)
}

// TrackInflight increments the in-flight gauge and returns its decrement.
func (im *IngestMetrics) TrackInflight(ctx context.Context) func() {
	if im == nil {
		return func() {}
	}

	im.inflight.Add(ctx, 1)

	return func() {
		im.inflight.Add(ctx, -1)
	}
}
