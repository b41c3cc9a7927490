// Package chain validates block headers against Bitcoin consensus rules and
// maintains the header tree, the mainchain and the difficulty ledger.
package chain

import (
	"errors"
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/ledger"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/store"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
	"go.uber.org/zap"
)

// Engine is safe for concurrent use. Mutations are serialized and either
// commit completely or leave no trace. Observers receive each mutation's
// events in commit order, after the engine lock is released; an observer may
// read the engine but must not mutate it.
type Engine struct {
	mu       sync.RWMutex
	delivery *sequencer

	cfg       Config
	params    model.Params
	logger    *zap.Logger
	metrics   Metrics
	observers []Observer

	store  *store.Store
	ledger *ledger.Ledger
	// rootPrevWork is the cumulative work of the chain below the root block.
	rootPrevWork *big.Int
}

func New(cfg Config, logger *zap.Logger, metrics Metrics, observers ...Observer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}

	return &Engine{
		delivery:     newSequencer(),
		cfg:          cfg,
		params:       cfg.Params,
		logger:       logger.With(zap.String("network", cfg.Params.Name)),
		metrics:      metrics,
		observers:    observers,
		store:        store.New(cfg.PendingBlockCount),
		ledger:       ledger.New(cfg.Params),
		rootPrevWork: new(big.Int),
	}, nil
}

// InitializeFromGenesis roots the chain at the network's genesis block.
func (e *Engine) InitializeFromGenesis() error {
	g := e.params.GenesisHeader
	return e.initialize(g, header.Hash(g), 0, new(big.Int), e.ledger.InitializeFromGenesis)
}

// InitializeFromCheckpoint roots the chain at a trusted header opening an
// epoch. prevCumulativeWork is the work of the chain ending at its parent.
func (e *Engine) InitializeFromCheckpoint(raw []byte, height uint64, prevCumulativeWork *big.Int) error {
	if height == 0 || !e.params.IsRetargetHeight(height) {
		return &model.HeightError{Kind: model.ErrInvalidInitialBlockHeight, Height: height}
	}
	h, hash, err := header.ParseWithHash(raw)
	if err != nil {
		return err
	}
	if prevCumulativeWork == nil {
		prevCumulativeWork = new(big.Int)
	}

	return e.initialize(h, hash, height, prevCumulativeWork, func() error {
		return e.ledger.InitializeFromHeight(height, target.BitsToTarget(h.Bits))
	})
}

func (e *Engine) initialize(h model.BlockHeader, hash chainhash.Hash, height uint64, prevWork *big.Int, initLedger func() error) error {
	e.mu.Lock()
	if e.store.Initialized() {
		e.mu.Unlock()
		return model.ErrAlreadyInitialized
	}

	work := new(big.Int).Add(prevWork, target.Work(target.BitsToTarget(h.Bits)))
	err := e.atomically(func() error {
		if err := initLedger(); err != nil {
			return err
		}
		_, err := e.store.Initialize(h, hash, height, work)
		return err
	})
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.rootPrevWork = new(big.Int).Set(prevWork)
	e.metrics.ObserveMainchainHeight(height)
	ticket := e.delivery.ticket()
	e.mu.Unlock()

	e.logger.Info("chain initialized",
		zap.Stringer("hash", hash),
		zap.Uint64("height", height),
		zap.Uint64("epoch", e.params.EpochOf(height)),
	)
	e.publish(ticket, []model.Event{
		{Kind: model.EventBlockHeaderAdded, Height: height, Hash: hash},
		{Kind: model.EventMainchainHeadUpdated, Height: height, Hash: hash},
	})
	return nil
}

// atomically runs fn against the store and the ledger and rolls both back
// when fn fails. Callers hold the write lock.
func (e *Engine) atomically(fn func() error) error {
	snapshot := e.ledger.Snapshot()
	if err := e.store.Update(fn); err != nil {
		e.ledger.Restore(snapshot)
		return err
	}
	return nil
}

// publish hands events to the observers once every earlier commit has been
// delivered.
func (e *Engine) publish(ticket uint64, events []model.Event) {
	e.delivery.do(ticket, func() {
		if len(events) == 0 {
			return
		}
		for _, o := range e.observers {
			o.HandleEvents(events)
		}
	})
}

func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Initialized()
}

func (e *Engine) Params() model.Params {
	return e.params
}

// MainchainHead returns the hash of the heaviest known chain's tip.
func (e *Engine) MainchainHead() chainhash.Hash {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Head()
}

func (e *Engine) MainchainHeight() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.HeadHeight()
}

// RootHeight returns the height the chain was initialized at.
func (e *Engine) RootHeight() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, height := e.store.Root()
	return height
}

func (e *Engine) HasBlock(hash chainhash.Hash) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Exists(hash)
}

// BlockInfo returns a copy of the stored record of hash.
func (e *Engine) BlockInfo(hash chainhash.Hash) (model.BlockRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.store.Block(hash)
	if !ok {
		return model.BlockRecord{}, &model.HashError{Kind: model.ErrUnknownBlock, Hash: hash}
	}
	return rec.Clone(), nil
}

// BlockByHeight returns the mainchain record at height.
func (e *Engine) BlockByHeight(height uint64) (model.BlockRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	hash, ok := e.store.HashByHeight(height)
	if !ok {
		return model.BlockRecord{}, &model.HeightError{Kind: model.ErrUnknownBlock, Height: height}
	}
	rec, _ := e.store.Block(hash)
	return rec.Clone(), nil
}

func (e *Engine) BlockHeight(hash chainhash.Hash) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	height, ok := e.store.Height(hash)
	if !ok {
		return 0, &model.HashError{Kind: model.ErrUnknownBlock, Hash: hash}
	}
	return height, nil
}

func (e *Engine) BlockMerkleRoot(hash chainhash.Hash) (chainhash.Hash, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.store.Block(hash)
	if !ok {
		return chainhash.Hash{}, &model.HashError{Kind: model.ErrUnknownBlock, Hash: hash}
	}
	return rec.Header.MerkleRoot, nil
}

func (e *Engine) BlockStatus(hash chainhash.Hash) (model.BlockStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	status, ok := e.store.Status(hash)
	if !ok {
		return "", &model.HashError{Kind: model.ErrUnknownBlock, Hash: hash}
	}
	return status, nil
}

func (e *Engine) IsInMainchain(hash chainhash.Hash) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.IsInMainchain(hash)
}

// LastEpoch returns the last epoch with a confirmed target.
func (e *Engine) LastEpoch() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.LastEpoch()
}

func (e *Engine) LastTarget() *big.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.LastTarget()
}

func (e *Engine) PendingTarget() (model.PendingTarget, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.PendingTarget()
}

// LastEpochCumulativeWork returns the mainchain work accumulated before the
// first block of the last confirmed epoch.
func (e *Engine) LastEpochCumulativeWork() (*big.Int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.store.Initialized() {
		return nil, model.ErrNotInitialized
	}

	start := e.params.EpochStart(e.ledger.LastEpoch())
	if _, rootHeight := e.store.Root(); start <= rootHeight {
		return new(big.Int).Set(e.rootPrevWork), nil
	}
	hash, ok := e.store.HashByHeight(start - 1)
	if !ok {
		return nil, &model.HeightError{Kind: model.ErrUnknownBlock, Height: start - 1}
	}
	work, _ := e.store.CumulativeWork(hash)
	return work, nil
}
