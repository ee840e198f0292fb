package ingest_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
	"github.com/Sumatoshi-tech/commitlens/pkg/ingest"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
)

const testTimeout = 5 * time.Second

func records(n int) []*commit.Record {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*commit.Record, n)

	for i := range out {
		out[i] = &commit.Record{
			SHA:       strconv.Itoa(i),
			Timestamp: &ts,
			Files:     []commit.File{{Filename: "f.go", Patch: "+x", HasPatch: true}},
		}
	}

	return out
}

// gatedClassifier blocks each classification until its SHA is released.
type gatedClassifier struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	entered chan string
}

func newGated(n int) *gatedClassifier {
	g := &gatedClassifier{
		gates:   make(map[string]chan struct{}, n),
		entered: make(chan string, n),
	}
	for i := range n {
		g.gates[strconv.Itoa(i)] = make(chan struct{})
	}

	return g
}

func (g *gatedClassifier) release(sha string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	close(g.gates[sha])
}

func (g *gatedClassifier) Classify(rec *commit.Record) *commit.Classified {
	g.mu.Lock()
	gate := g.gates[rec.SHA]
	g.mu.Unlock()

	g.entered <- rec.SHA

	<-gate

	return &commit.Classified{Language: "lang-" + rec.SHA, Timestamp: *rec.Timestamp}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	return ctx
}

func TestIngestor_AlignmentUnderReverseCompletion(t *testing.T) {
	t.Parallel()

	const n = 8

	recs := records(n)
	gated := newGated(n)
	in := ingest.New(gated, ingest.WithWorkers(n))

	b := in.Start(context.Background(), recs)
	assert.Equal(t, n, b.Len())
	assert.False(t, b.Complete())

	for i := n - 1; i >= 0; i-- {
		gated.release(strconv.Itoa(i))
	}

	results, err := b.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Len(t, results, n)

	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "lang-"+strconv.Itoa(i), r.Language)
	}

	assert.True(t, b.Complete())
}

func TestIngestor_AlignmentUnderRandomCompletion(t *testing.T) {
	t.Parallel()

	order := []int{3, 0, 5, 1, 4, 2}
	recs := records(len(order))
	gated := newGated(len(order))
	in := ingest.New(gated, ingest.WithWorkers(len(order)))

	b := in.Start(context.Background(), recs)

	for step, i := range order {
		gated.release(strconv.Itoa(i))

		if step < len(order)-1 {
			assert.False(t, b.Complete())
		}
	}

	results, err := b.Wait(waitCtx(t))
	require.NoError(t, err)

	for i, r := range results {
		assert.Equal(t, "lang-"+strconv.Itoa(i), r.Language)
	}
}

func TestIngestor_UnclassifiableRecordsFailImmediately(t *testing.T) {
	t.Parallel()

	ts := time.Now()
	recs := []*commit.Record{
		nil,
		{Timestamp: &ts},
		{Timestamp: &ts, Files: []commit.File{{Filename: "logo.png"}}},
		{SHA: "ok", Timestamp: &ts, Files: []commit.File{{Filename: "a.go", Patch: "+a", HasPatch: true}}},
	}

	classifier := ingest.ClassifierFunc(func(rec *commit.Record) *commit.Classified {
		return &commit.Classified{Language: "Go", Timestamp: *rec.Timestamp}
	})

	b := ingest.New(classifier).Start(context.Background(), recs)

	results, err := b.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Nil(t, results[0])
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
	require.NotNil(t, results[3])

	assert.Equal(t,
		[]ingest.State{ingest.Failed, ingest.Failed, ingest.Failed, ingest.Classified},
		b.States())
}

func TestIngestor_AllNullCompletesSynchronously(t *testing.T) {
	t.Parallel()

	b := ingest.New(ingest.ClassifierFunc(func(*commit.Record) *commit.Classified {
		t.Error("classifier must not run")

		return nil
	})).Start(context.Background(), []*commit.Record{nil, nil, nil})

	assert.True(t, b.Complete())

	filled, total := b.Progress()
	assert.Equal(t, 3, filled)
	assert.Equal(t, 3, total)
}

func TestIngestor_EmptyBatch(t *testing.T) {
	t.Parallel()

	b := ingest.New(ingest.ClassifierFunc(func(*commit.Record) *commit.Classified { return nil })).
		Start(context.Background(), nil)

	select {
	case <-b.Done():
	default:
		t.Fatal("empty batch should be done")
	}

	results, err := b.Wait(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIngestor_SupersededBatchDropsLateResults(t *testing.T) {
	t.Parallel()

	const n = 3

	first := newGated(n)
	second := newGated(n)

	var active sync.Mutex

	current := first

	classifier := ingest.ClassifierFunc(func(rec *commit.Record) *commit.Classified {
		active.Lock()
		c := current
		active.Unlock()

		return c.Classify(rec)
	})

	in := ingest.New(classifier, ingest.WithWorkers(n))
	old := in.Start(context.Background(), records(n))

	// Wait until every classification of the first batch is in flight.
	for range n {
		select {
		case <-first.entered:
		case <-time.After(testTimeout):
			t.Fatal("first batch classifications did not start")
		}
	}

	active.Lock()
	current = second
	active.Unlock()

	fresh := in.Start(context.Background(), records(n))
	assert.NotEqual(t, old.ID(), fresh.ID())
	assert.True(t, old.Discarded())
	assert.Same(t, fresh, in.Current())

	for i := range n {
		first.release(strconv.Itoa(i))
		second.release(strconv.Itoa(i))
	}

	results, err := fresh.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Len(t, results, n)

	_, err = old.Wait(waitCtx(t))
	require.ErrorIs(t, err, ingest.ErrBatchDiscarded)

	// Late completions of the old batch never land.
	time.Sleep(10 * time.Millisecond)

	for _, st := range old.States() {
		assert.Equal(t, ingest.Pending, st)
	}
}

func TestIngestor_CloseDiscardsLiveBatch(t *testing.T) {
	t.Parallel()

	gated := newGated(2)
	in := ingest.New(gated, ingest.WithWorkers(2))
	b := in.Start(context.Background(), records(2))

	in.Close()
	assert.Nil(t, in.Current())

	gated.release("0")
	gated.release("1")

	_, err := b.Wait(waitCtx(t))
	require.ErrorIs(t, err, ingest.ErrBatchDiscarded)
}

func TestIngestor_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	gated := newGated(1)
	in := ingest.New(gated)
	b := in.Start(context.Background(), records(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Wait(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	gated.release("0")
	in.Close()
}

func TestIngestor_PanickingClassifierFailsSlot(t *testing.T) {
	t.Parallel()

	classifier := ingest.ClassifierFunc(func(rec *commit.Record) *commit.Classified {
		if rec.SHA == "1" {
			panic("boom")
		}

		return &commit.Classified{Language: "Go"}
	})

	results, err := ingest.Run(waitCtx(t), classifier, records(3))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
	assert.NotNil(t, results[2])
}

func TestIngestor_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewIngestMetrics(mp.Meter("test"))
	require.NoError(t, err)

	recs := append(records(2), nil)
	classifier := ingest.ClassifierFunc(func(*commit.Record) *commit.Classified {
		return &commit.Classified{Language: "Go"}
	})

	_, err = ingest.Run(waitCtx(t), classifier, recs, ingest.WithMetrics(metrics))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "commitlens.ingest.classifications.total" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)

			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("outcome")
				counts[v.AsString()] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(2), counts[observability.OutcomeClassified])
	assert.Equal(t, int64(1), counts[observability.OutcomeFailed])
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pending", ingest.Pending.String())
	assert.Equal(t, "classified", ingest.Classified.String())
	assert.Equal(t, "failed", ingest.Failed.String())
	assert.Equal(t, "State(9)", ingest.State(9).String())
}
