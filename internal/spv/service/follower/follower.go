// Package follower keeps the chain engine in step with a full node.
package follower

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"go.uber.org/zap"
)

// Service polls a node for new headers and feeds them to the chain engine.
type Service struct {
	logger            *zap.Logger
	coin              model.Coin
	network           model.Network
	metrics           Metrics
	chain             Chain
	fetcher           HeaderFetcher
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	blockSignal       <-chan struct{}

	// rewind is how far below the local head the next fetch starts.
	rewind uint64
}

// NewService builds a Service with dependencies.
func NewService(
	chain Chain,
	source HeaderSource,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if chain == nil {
		return nil, errors.New("follower chain is required")
	}
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	return &Service{
		logger:            logger,
		coin:              coin,
		network:           network,
		metrics:           metrics,
		chain:             chain,
		sleep:             sleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		blockSignal:       blockSignal,
		fetcher: &headerFetcher{
			source:      source,
			chain:       chain,
			limit:       headerBatchLimit,
			workerCount: defaultWorkerCount,
		},
	}, nil
}

// Run follows the node until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if sleepErr := s.wait(ctx, s.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	batch, added, err := s.step(ctx)
	if err != nil {
		return err
	}
	switch {
	case len(batch.Headers) == 0:
		s.logger.Debug("no new headers; sleeping",
			zap.Uint64("node_height", batch.NodeHeight),
			zap.Duration("sleep", s.longSleepDuration),
		)
		return s.wait(ctx, s.longSleepDuration)
	case !added || !batch.CaughtUp():
		return nil
	}
	return s.wait(ctx, s.sleepDuration)
}

// SyncTo feeds headers until the local mainchain reaches height. It fails
// when the node has nothing more to offer below height.
func (s *Service) SyncTo(ctx context.Context, height uint64) error {
	for s.chain.MainchainHeight() < height {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, _, err := s.step(ctx)
		if err != nil {
			return err
		}
		if len(batch.Headers) == 0 {
			return fmt.Errorf("node tip %d is below height %d", batch.NodeHeight, height)
		}
	}
	return nil
}

// step fetches one batch and submits it to the chain. added is false when
// the batch did not connect and the next fetch was moved further back.
func (s *Service) step(ctx context.Context) (batch Batch, added bool, err error) {
	started := time.Now()
	batch, err = s.fetcher.Fetch(ctx, s.rewind)
	s.metrics.ObserveFetchHeaders(err, started)
	if err != nil {
		s.logger.Error("fetch headers failed", zap.Error(err))
		return Batch{}, false, err
	}
	if len(batch.Headers) == 0 {
		return batch, false, nil
	}

	first, last := batch.Headers[0], batch.Headers[len(batch.Headers)-1]
	started = time.Now()
	err = s.chain.AddBlockHeaderBatch(rawHeaders(batch.Headers))
	s.metrics.ObserveProcessBatch(err, len(batch.Headers), started)

	switch {
	case errors.Is(err, model.ErrPrevBlockDoesNotExist) && s.rewind < maxRewindBlocks:
		s.setRewind(min(s.rewind+reorgLookback, maxRewindBlocks))
		s.logger.Warn("node chain diverges from local mainchain; rewinding",
			zap.Uint64("from", first.Height),
			zap.Uint64("rewind", s.rewind),
		)
		return batch, false, nil
	case err != nil:
		return batch, false, err
	}

	s.setRewind(0)
	s.logger.Info("headers added",
		zap.Uint64("from", first.Height),
		zap.Uint64("to", last.Height),
		zap.Uint64("node_height", batch.NodeHeight),
	)
	return batch, true, nil
}

func (s *Service) setRewind(depth uint64) {
	if s.rewind == depth {
		return
	}
	s.rewind = depth
	s.metrics.ObserveRewind(depth)
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
