// Package ingest classifies a batch of commits concurrently and collects the
// results into slots aligned with the input order.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
)

const tracerName = "commitlens/ingest"

// Classifier turns one commit into a classified commit, or nil on failure.
type Classifier interface {
	Classify(rec *commit.Record) *commit.Classified
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(rec *commit.Record) *commit.Classified

// Classify calls f(rec).
func (f ClassifierFunc) Classify(rec *commit.Record) *commit.Classified {
	return f(rec)
}

// Ingestor owns at most one live batch at a time. Starting a new batch
// supersedes the previous one; results that arrive for a batch that is no
// longer current are dropped.
type Ingestor struct {
	classifier Classifier
	workers    int
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *observability.IngestMetrics

	mu      sync.Mutex
	current *Batch
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithWorkers bounds the number of concurrent classifications.
func WithWorkers(n int) Option {
	return func(in *Ingestor) {
		if n > 0 {
			in.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Ingestor) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithTracer sets the tracer used for batch spans.
func WithTracer(t trace.Tracer) Option {
	return func(in *Ingestor) {
		if t != nil {
			in.tracer = t
		}
	}
}

// WithMetrics sets the ingestion instruments.
func WithMetrics(m *observability.IngestMetrics) Option {
	return func(in *Ingestor) {
		in.metrics = m
	}
}

// New creates an Ingestor.
func New(classifier Classifier, opts ...Option) *Ingestor {
	in := &Ingestor{
		classifier: classifier,
		workers:    runtime.GOMAXPROCS(0),
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Current returns the live batch, or nil.
func (in *Ingestor) Current() *Batch {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.current
}

// Start opens a batch over records and begins classifying them in the
// background. Records that cannot be classified (nil, no files, no patch on the
// first file) fail immediately. The previous batch, if any, is discarded.
func (in *Ingestor) Start(ctx context.Context, records []*commit.Record) *Batch {
	batchCtx, cancel := context.WithCancel(ctx)
	b := newBatch(len(records), cancel)
	batchCtx = observability.WithBatchID(batchCtx, b.id.String())

	in.mu.Lock()
	prev := in.current
	in.current = b
	in.mu.Unlock()

	if prev != nil && prev.discard() {
		in.finish(batchCtx, prev, observability.StatusSuperseded)
	}

	in.logger.DebugContext(batchCtx, "batch started", slog.Int("commits", len(records)))

	pending := make([]int, 0, len(records))

	for i, rec := range records {
		if _, ok := rec.FirstPatch(); !ok {
			in.deliver(batchCtx, b.id, i, nil)

			continue
		}

		pending = append(pending, i)
	}

	if len(pending) == 0 {
		in.finishIfComplete(batchCtx, b)
		cancel()

		return b
	}

	go in.run(batchCtx, b, records, pending)

	return b
}

// Close discards the live batch. Pending classifications still finish, but
// their results are dropped.
func (in *Ingestor) Close() {
	in.mu.Lock()
	b := in.current
	in.current = nil
	in.mu.Unlock()

	if b != nil && b.discard() && !b.Complete() {
		in.finish(context.Background(), b, observability.StatusCancelled)
	}
}

func (in *Ingestor) run(ctx context.Context, b *Batch, records []*commit.Record, pending []int) {
	ctx, span := in.tracer.Start(ctx, "ingest.batch",
		trace.WithAttributes(
			attribute.String("batch.id", b.id.String()),
			attribute.Int("batch.size", len(records)),
		))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	for _, i := range pending {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			done := in.metrics.TrackInflight(gctx)
			res := in.classify(gctx, records[i])
			done()

			in.deliver(gctx, b.id, i, res)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers never return errors.

	in.finishIfComplete(ctx, b)
}

// classify runs the classifier, turning a panic into a failed slot.
func (in *Ingestor) classify(ctx context.Context, rec *commit.Record) (res *commit.Classified) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.WarnContext(ctx, "classifier panicked", slog.Any("panic", r))

			res = nil
		}
	}()

	return in.classifier.Classify(rec)
}

// deliver routes a result to slot i of batch id. Results for a batch that is not
// the live one are discarded.
func (in *Ingestor) deliver(ctx context.Context, id uuid.UUID, i int, res *commit.Classified) bool {
	in.mu.Lock()
	b := in.current
	in.mu.Unlock()

	if b == nil || b.id != id || !b.fill(i, res) {
		in.metrics.RecordClassification(ctx, observability.OutcomeDiscarded)

		return false
	}

	if res != nil {
		in.metrics.RecordClassification(ctx, observability.OutcomeClassified)
	} else {
		in.metrics.RecordClassification(ctx, observability.OutcomeFailed)
	}

	return true
}

func (in *Ingestor) finishIfComplete(ctx context.Context, b *Batch) {
	if b.Complete() {
		in.finish(ctx, b, observability.StatusComplete)
	}
}

func (in *Ingestor) finish(ctx context.Context, b *Batch, status string) {
	filled, total := b.Progress()
	elapsed := time.Since(b.started)

	in.metrics.RecordBatch(ctx, status, total, elapsed)
	in.logger.DebugContext(observability.WithBatchID(ctx, b.id.String()), "batch finished",
		slog.String("status", status),
		slog.Int("filled", filled),
		slog.Int("total", total),
		slog.Duration("elapsed", elapsed),
	)
}

// Run classifies records in a one-shot batch and waits for every slot.
func Run(ctx context.Context, classifier Classifier, records []*commit.Record, opts ...Option) ([]*commit.Classified, error) {
	in := New(classifier, opts...)
	defer in.Close()

	results, err := in.Start(ctx, records).Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	return results, nil
}
