// Package recorder persists chain engine events.
package recorder

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/pkg/batcher"
	"go.uber.org/zap"
)

// Recorder is a chain observer that queues events and writes them to the
// repository in batches. HandleEvents never blocks: events that do not fit
// in the queue are dropped and logged.
type Recorder struct {
	logger  *zap.Logger
	coin    model.Coin
	network model.Network
	batcher *batcher.Batcher[model.ChainEvent]
	now     func() time.Time
}

func NewRecorder(
	repository Repository,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
) (*Recorder, error) {
	if repository == nil {
		return nil, errors.New("recorder repository is required")
	}
	logger = logger.Named("recorder").With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	return &Recorder{
		logger:  logger,
		coin:    coin,
		network: network,
		batcher: batcher.New(logger, repository.InsertChainEvents, defaultFlushSize, defaultFlushInterval, defaultFlushRPS),
		now:     time.Now,
	}, nil
}

// Start begins flushing in the background until ctx is done or Stop is called.
func (r *Recorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop flushes queued events and waits for the flush loop to exit.
func (r *Recorder) Stop() {
	r.batcher.Stop()
}

func (r *Recorder) HandleEvents(events []model.Event) {
	recordedAt := r.now().UTC()
	dropped := 0
	for _, event := range events {
		if !r.batcher.TryAdd(model.ChainEvent{
			Coin:       r.coin,
			Network:    r.network,
			Kind:       event.Kind,
			Height:     event.Height,
			Hash:       event.Hash.String(),
			RecordedAt: recordedAt,
		}) {
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Warn("chain events dropped", zap.Int("dropped", dropped), zap.Int("total", len(events)))
	}
}
