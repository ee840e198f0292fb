package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
)

// State is the lifecycle state of one result slot.
type State int

const (
	// Pending means the slot has no result yet.
	Pending State = iota
	// Classified means the slot holds a language guess.
	Classified
	// Failed means the slot holds the failure sentinel.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Classified:
		return "classified"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrBatchDiscarded is returned by Wait when the batch was superseded or its
// consumer went away before every slot was filled.
var ErrBatchDiscarded = errors.New("batch discarded before completion")

// Batch is one ingestion run over a fixed list of commit records. Each record
// owns the slot with its index; slots move from Pending to Classified or Failed
// exactly once.
type Batch struct {
	id      uuid.UUID
	started time.Time
	cancel  context.CancelFunc

	mu        sync.Mutex
	results   []*commit.Classified
	states    []State
	remaining int
	discarded bool

	done      chan struct{}
	discardCh chan struct{}
}

func newBatch(size int, cancel context.CancelFunc) *Batch {
	b := &Batch{
		id:        uuid.New(),
		started:   time.Now(),
		cancel:    cancel,
		results:   make([]*commit.Classified, size),
		states:    make([]State, size),
		remaining: size,
		done:      make(chan struct{}),
		discardCh: make(chan struct{}),
	}

	if size == 0 {
		close(b.done)
	}

	return b
}

// ID returns the batch identifier.
func (b *Batch) ID() uuid.UUID {
	return b.id
}

// Len returns the number of slots.
func (b *Batch) Len() int {
	return len(b.results)
}

// Done is closed once every slot is non-pending.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Snapshot returns a copy of the results. Pending slots are nil.
func (b *Batch) Snapshot() []*commit.Classified {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]*commit.Classified(nil), b.results...)
}

// States returns a copy of the slot states.
func (b *Batch) States() []State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]State(nil), b.states...)
}

// Progress returns the number of filled slots and the batch size.
func (b *Batch) Progress() (filled, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.states) - b.remaining, len(b.states)
}

// Complete reports whether every slot is filled.
func (b *Batch) Complete() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Discarded reports whether the batch was superseded or closed.
func (b *Batch) Discarded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.discarded
}

// Wait blocks until every slot is filled and returns the frozen results. It
// fails when ctx ends first or the batch is discarded while incomplete.
func (b *Batch) Wait(ctx context.Context) ([]*commit.Classified, error) {
	select {
	case <-b.done:
		return b.Snapshot(), nil
	default:
	}

	select {
	case <-b.done:
		return b.Snapshot(), nil
	case <-b.discardCh:
		if b.Complete() {
			return b.Snapshot(), nil
		}

		return nil, fmt.Errorf("batch %s: %w", b.id, ErrBatchDiscarded)
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for batch %s: %w", b.id, ctx.Err())
	}
}

// fill writes slot i. It reports false when the batch is discarded or the slot
// was already filled.
func (b *Batch) fill(i int, res *commit.Classified) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.discarded || i < 0 || i >= len(b.states) || b.states[i] != Pending {
		return false
	}

	b.results[i] = res
	if res != nil {
		b.states[i] = Classified
	} else {
		b.states[i] = Failed
	}

	b.remaining--
	if b.remaining == 0 {
		close(b.done)
	}

	return true
}

// discard stops the batch from accepting results. It reports false when the
// batch was already discarded.
func (b *Batch) discard() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.discarded {
		return false
	}

	b.discarded = true
	close(b.discardCh)
	b.cancel()

	return true
}
