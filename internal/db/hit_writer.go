package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	// DefaultBatchSize - размер пачки по умолчанию.
	DefaultBatchSize = 64
	// DefaultFlushInterval is how long a partial batch may wait.
	DefaultFlushInterval = time.Second
	// DefaultBuffer is the record channel capacity.
	DefaultBuffer = 1024

	shutdownFlushTimeout = 5 * time.Second
)

// HitInserter persists a batch of hits.
type HitInserter interface {
	InsertHits(ctx context.Context, matchID int64, rows []HitRow) error
}

// HitWriter batches hits off the simulation goroutine.
//
// Record never blocks: when the buffer is full the hit is dropped and
// counted. Run flushes when a batch fills up, on every flush interval and
// once more on shutdown.
type HitWriter struct {
	repo      HitInserter
	matchID   int64
	batchSize int
	interval  time.Duration

	records chan HitRow
	dropped atomic.Int64
	written atomic.Int64
}

// NewHitWriter creates a writer for matchID. Non-positive settings fall back
// to defaults.
func NewHitWriter(repo HitInserter, matchID int64, batchSize int, interval time.Duration, buffer int) *HitWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &HitWriter{
		repo:      repo,
		matchID:   matchID,
		batchSize: batchSize,
		interval:  interval,
		records:   make(chan HitRow, buffer),
	}
}

// Record queues a hit. Safe for concurrent use.
func (w *HitWriter) Record(row HitRow) {
	select {
	case w.records <- row:
	default:
		if w.dropped.Add(1) == 1 {
			slog.Warn("hit writer buffer full, dropping hits", "matchID", w.matchID)
		}
	}
}

// Dropped returns number of hits lost to a full buffer.
func (w *HitWriter) Dropped() int64 { return w.dropped.Load() }

// Written returns number of hits persisted.
func (w *HitWriter) Written() int64 { return w.written.Load() }

// Run drains records until ctx is done, then flushes what is left.
func (w *HitWriter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]HitRow, 0, w.batchSize)

	for {
		select {
		case <-ctx.Done():
			batch = w.drainInto(batch)
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
			w.flush(flushCtx, batch)
			cancel()
			slog.Info("hit writer stopped",
				"matchID", w.matchID,
				"written", w.written.Load(),
				"dropped", w.dropped.Load())
			return ctx.Err()

		case row := <-w.records:
			batch = append(batch, row)
			if len(batch) >= w.batchSize {
				batch = w.flush(ctx, batch)
			}

		case <-ticker.C:
			batch = w.flush(ctx, batch)
		}
	}
}

func (w *HitWriter) drainInto(batch []HitRow) []HitRow {
	for {
		select {
		case row := <-w.records:
			batch = append(batch, row)
		default:
			return batch
		}
	}
}

// flush writes batch and returns it emptied. A failed batch is dropped.
func (w *HitWriter) flush(ctx context.Context, batch []HitRow) []HitRow {
	if len(batch) == 0 {
		return batch
	}
	if err := w.repo.InsertHits(ctx, w.matchID, batch); err != nil {
		slog.Error("flushing hits", "matchID", w.matchID, "count", len(batch), "error", err)
	} else {
		w.written.Add(int64(len(batch)))
	}
	return batch[:0]
}
