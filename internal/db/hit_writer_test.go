package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/testutil"
)

type fakeInserter struct {
	mu      sync.Mutex
	batches [][]HitRow
	err     error
}

func (f *fakeInserter) InsertHits(_ context.Context, _ int64, rows []HitRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, append([]HitRow(nil), rows...))
	return nil
}

func (f *fakeInserter) sizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.batches))
	for _, b := range f.batches {
		out = append(out, len(b))
	}
	return out
}

func runWriter(t *testing.T, w *HitWriter) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() error {
		stop()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("hit writer did not stop")
			return nil
		}
	}
}

func TestHitWriter_FlushOnBatchSize(t *testing.T) {
	repo := &fakeInserter{}
	w := NewHitWriter(repo, 1, 3, time.Hour, 16)
	stop := runWriter(t, w)

	for i := range 3 {
		w.Record(HitRow{Tick: int64(i)})
	}

	require.Eventually(t, func() bool { return len(repo.sizes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{3}, repo.sizes())
	assert.ErrorIs(t, stop(), context.Canceled)
}

func TestHitWriter_FlushOnInterval(t *testing.T) {
	repo := &fakeInserter{}
	w := NewHitWriter(repo, 1, 100, 10*time.Millisecond, 16)
	stop := runWriter(t, w)

	w.Record(HitRow{Tick: 1})

	require.Eventually(t, func() bool { return w.Written() == 1 }, time.Second, 5*time.Millisecond)
	_ = stop()
}

func TestHitWriter_FlushOnShutdown(t *testing.T) {
	repo := &fakeInserter{}
	w := NewHitWriter(repo, 1, 100, time.Hour, 16)

	for i := range 5 {
		w.Record(HitRow{Tick: int64(i)})
	}

	ctx := testutil.ContextWithTimeout(t, time.Second)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
	assert.Equal(t, []int{5}, repo.sizes())
	assert.Equal(t, int64(5), w.Written())
}

func TestHitWriter_DropsWhenFull(t *testing.T) {
	w := NewHitWriter(&fakeInserter{}, 1, 10, time.Hour, 2)

	for range 5 {
		w.Record(HitRow{})
	}
	assert.Equal(t, int64(3), w.Dropped())
}

func TestHitWriter_FailedBatchIsDropped(t *testing.T) {
	repo := &fakeInserter{err: testutil.ErrSimulated}
	w := NewHitWriter(repo, 1, 1, time.Hour, 4)
	stop := runWriter(t, w)

	w.Record(HitRow{})
	w.Record(HitRow{})

	_ = stop()
	assert.Zero(t, w.Written())
	assert.Empty(t, repo.sizes())
}

func TestNewHitWriter_Defaults(t *testing.T) {
	w := NewHitWriter(&fakeInserter{}, 1, 0, 0, 0)
	assert.Equal(t, DefaultBatchSize, w.batchSize)
	assert.Equal(t, DefaultFlushInterval, w.interval)
	assert.Equal(t, DefaultBuffer, cap(w.records))
}
