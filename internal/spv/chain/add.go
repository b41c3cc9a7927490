package chain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
	"go.uber.org/zap"
)

type candidate struct {
	header model.BlockHeader
	hash   chainhash.Hash
}

// AddBlockHeader validates a single raw header and connects it to the tree.
func (e *Engine) AddBlockHeader(raw []byte) error {
	return e.AddBlockHeaderBatch([][]byte{raw})
}

// AddBlockHeaderBatch validates and connects consecutive headers. Every
// header must extend the one before it. The batch is applied atomically: on
// any error no header of the batch is stored and no event is emitted.
func (e *Engine) AddBlockHeaderBatch(raw [][]byte) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveAddHeaders(err, len(raw), started)
	}()

	if len(raw) == 0 {
		return model.ErrEmptyBlockHeaderArray
	}

	batch := make([]candidate, 0, len(raw))
	for i, r := range raw {
		h, hash, parseErr := header.ParseWithHash(r)
		if parseErr != nil {
			return fmt.Errorf("header %d: %w", i, parseErr)
		}
		if i > 0 && h.PrevBlockHash != batch[i-1].hash {
			return &model.HeaderOrderError{Index: i, PrevBlockHash: h.PrevBlockHash, Expected: batch[i-1].hash}
		}
		batch = append(batch, candidate{header: h, hash: hash})
	}

	events, ticket, err := e.connectBatch(batch)
	if err != nil {
		e.logger.Debug("headers rejected",
			zap.Int("count", len(batch)),
			zap.Stringer("first", batch[0].hash),
			zap.Error(err),
		)
		return err
	}
	e.publish(ticket, events)
	return nil
}

func (e *Engine) connectBatch(batch []candidate) ([]model.Event, uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.Initialized() {
		return nil, 0, model.ErrNotInitialized
	}

	prevHead := e.store.Head()
	events := make([]model.Event, 0, len(batch)+1)
	err := e.atomically(func() error {
		for i, c := range batch {
			median := func() uint32 {
				if i < medianTimeBlocks {
					return e.storedMedianTime(c.header.PrevBlockHash)
				}
				return medianOfHeaders(batch[i-medianTimeBlocks : i])
			}
			height, err := e.connect(c, median)
			if err != nil {
				return fmt.Errorf("header %d (%s): %w", i, c.hash, err)
			}
			events = append(events, model.Event{Kind: model.EventBlockHeaderAdded, Height: height, Hash: c.hash})
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if head := e.store.Head(); head != prevHead {
		height := e.store.HeadHeight()
		events = append(events, model.Event{Kind: model.EventMainchainHeadUpdated, Height: height, Hash: head})
		e.metrics.ObserveMainchainHeight(height)
	}
	return events, e.delivery.ticket(), nil
}

// connect runs the context-dependent checks of c (linkage, uniqueness, the
// prescribed target) followed by the block rules and inserts it.
func (e *Engine) connect(c candidate, median func() uint32) (uint64, error) {
	parent, ok := e.store.Block(c.header.PrevBlockHash)
	if !ok {
		return 0, &model.HashError{Kind: model.ErrPrevBlockDoesNotExist, Hash: c.header.PrevBlockHash}
	}
	if e.store.Exists(c.hash) {
		return 0, &model.HashError{Kind: model.ErrBlockAlreadyExists, Hash: c.hash}
	}

	height := parent.Height + 1
	expected, err := e.prescribedTarget(parent, c.header, height)
	if err != nil {
		return 0, err
	}
	if err := ValidateBlockRules(c.header, c.hash, expected, median()); err != nil {
		return 0, err
	}

	work := new(big.Int).Add(parent.CumulativeWork, target.Work(expected))
	res, err := e.store.Insert(c.header, c.hash, height, work)
	if err != nil {
		return 0, err
	}
	if !res.HeadChanged {
		return height, nil
	}

	if res.Detached > 0 {
		e.logger.Info("mainchain reorganized",
			zap.Stringer("head", c.hash),
			zap.Uint64("height", height),
			zap.Uint64("fork_height", res.ForkHeight),
			zap.Uint64("detached", res.Detached),
		)
		e.metrics.ObserveReorg(res.Detached)
	}
	return height, e.syncPendingTarget()
}
