// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. A non-positive rps disables flush rate limiting,
// a non-positive flushSize or flushInterval falls back to 1 item and 1s.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	flushSize = max(flushSize, 1)
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            rl,
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes buffered items and stops the loop. It is safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

// TryAdd queues an item without blocking. It reports false when the buffer
// is full or the batcher is stopped.
func (b *Batcher[T]) TryAdd(item T) bool {
	select {
	case <-b.stop:
		return false
	default:
	}

	select {
	case b.itemsCh <- item:
		return true
	default:
		return false
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	var batch []T
	for {
		select {
		case <-ctx.Done():
			b.drain(context.WithoutCancel(ctx), batch)
			return
		case <-b.stop:
			b.drain(context.WithoutCancel(ctx), batch)
			return
		case item := <-b.itemsCh:
			if batch = append(batch, item); len(batch) >= b.flushSize {
				b.flush(ctx, batch)
				batch = nil
			}
		case <-ticker.C:
			b.flush(ctx, batch)
			batch = nil
		}
	}
}

// drain flushes the pending batch together with everything still queued.
func (b *Batcher[T]) drain(ctx context.Context, batch []T) {
	for {
		select {
		case item := <-b.itemsCh:
			if batch = append(batch, item); len(batch) >= b.flushSize {
				b.flush(ctx, batch)
				batch = nil
			}
		default:
			b.flush(ctx, batch)
			return
		}
	}
}

// flush hands batch to the callback, which owns it afterwards.
func (b *Batcher[T]) flush(ctx context.Context, batch []T) {
	if len(batch) == 0 {
		return
	}

	b.rl.Take()
	if err := b.flushCallback(ctx, batch); err != nil {
		b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(batch)))
		return
	}
	b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
}
