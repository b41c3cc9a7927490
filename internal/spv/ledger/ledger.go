// Package ledger tracks confirmed difficulty targets per retarget epoch and the
// single retarget proposal awaiting confirmation.
package ledger

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
)

// Ledger is not safe for concurrent use; the chain engine serializes access.
type Ledger struct {
	params model.Params

	initialized bool
	firstEpoch  uint64
	// targets[i] is the confirmed target of epoch firstEpoch+i.
	targets []*big.Int
	pending *model.PendingTarget
}

// Snapshot captures ledger state so a failed call can be rolled back.
type Snapshot struct {
	initialized bool
	firstEpoch  uint64
	targets     int
	pending     *model.PendingTarget
}

// New creates an uninitialized ledger.
func New(params model.Params) *Ledger {
	return &Ledger{params: params}
}

// InitializeFromGenesis starts at epoch 1 with the network's initial target.
func (l *Ledger) InitializeFromGenesis() error {
	return l.InitializeFromHeight(0, target.BitsToTarget(l.params.GenesisHeader.Bits))
}

// InitializeFromHeight starts at the epoch opened by height with the given target.
func (l *Ledger) InitializeFromHeight(height uint64, t *big.Int) error {
	if l.initialized {
		return model.ErrAlreadyInitialized
	}
	if !l.params.IsRetargetHeight(height) {
		return &model.HeightError{Kind: model.ErrNotATargetAdjustmentBlock, Height: height}
	}

	l.initialized = true
	l.firstEpoch = l.params.EpochOf(height)
	l.targets = []*big.Int{new(big.Int).Set(t)}
	l.pending = nil
	return nil
}

// UpdatePendingTarget proposes the target for the epoch opened at height, scaled
// from the last confirmed target by the previous epoch's elapsed time. A newer
// proposal replaces an unconfirmed one.
func (l *Ledger) UpdatePendingTarget(height uint64, hash chainhash.Hash, epochStart, epochEnd uint32) error {
	if !l.initialized {
		return model.ErrNotInitialized
	}
	return l.ProposeTarget(height, hash, l.LastTarget(), epochStart, epochEnd)
}

// ProposeTarget is UpdatePendingTarget scaled from previous, the target of the
// block before height. It differs from the last confirmed target only on
// networks that allow minimum-difficulty blocks.
func (l *Ledger) ProposeTarget(height uint64, hash chainhash.Hash, previous *big.Int, epochStart, epochEnd uint32) error {
	if !l.initialized {
		return model.ErrNotInitialized
	}
	if !l.params.IsRetargetHeight(height) {
		return &model.HeightError{Kind: model.ErrNotATargetAdjustmentBlock, Height: height}
	}
	if epochEnd <= epochStart {
		return &model.EpochTimeError{Start: epochStart, End: epochEnd}
	}
	epoch := l.params.EpochOf(height)
	if epoch != l.LastEpoch()+1 {
		return &model.HeightError{Kind: model.ErrUnexpectedTargetEpoch, Height: height}
	}

	l.pending = &model.PendingTarget{
		Hash:   hash,
		Height: height,
		Epoch:  epoch,
		Target: target.Retarget(previous, epochStart, epochEnd, l.params),
	}
	return nil
}

// ConfirmPendingTarget promotes the pending target keyed by hash.
func (l *Ledger) ConfirmPendingTarget(hash chainhash.Hash) error {
	if l.pending == nil || l.pending.Hash != hash {
		return &model.HashError{Kind: model.ErrInvalidConfirmedBlockHash, Hash: hash}
	}

	l.targets = append(l.targets, l.pending.Target)
	l.pending = nil
	return nil
}

// DiscardPendingTarget drops the pending proposal, if any.
func (l *Ledger) DiscardPendingTarget() {
	l.pending = nil
}

// PendingTarget returns a copy of the pending proposal.
func (l *Ledger) PendingTarget() (model.PendingTarget, bool) {
	if l.pending == nil {
		return model.PendingTarget{}, false
	}
	p := *l.pending
	p.Target = new(big.Int).Set(p.Target)
	return p, true
}

func (l *Ledger) Initialized() bool {
	return l.initialized
}

// LastEpoch is the most recent confirmed epoch, 0 before initialization.
func (l *Ledger) LastEpoch() uint64 {
	if !l.initialized {
		return 0
	}
	return l.firstEpoch + uint64(len(l.targets)) - 1
}

// LastTarget is the target of LastEpoch.
func (l *Ledger) LastTarget() *big.Int {
	if !l.initialized {
		return nil
	}
	return new(big.Int).Set(l.targets[len(l.targets)-1])
}

// NextRetargetHeight is the height that opens the first unconfirmed epoch.
func (l *Ledger) NextRetargetHeight() uint64 {
	return l.params.EpochStart(l.LastEpoch() + 1)
}

// TargetForEpoch returns the confirmed target of epoch.
func (l *Ledger) TargetForEpoch(epoch uint64) (*big.Int, bool) {
	if !l.initialized || epoch < l.firstEpoch || epoch > l.LastEpoch() {
		return nil, false
	}
	return new(big.Int).Set(l.targets[epoch-l.firstEpoch]), true
}

// TargetForHeight returns the confirmed target of the epoch containing height.
// Pending proposals are never returned.
func (l *Ledger) TargetForHeight(height uint64) (*big.Int, bool) {
	return l.TargetForEpoch(l.params.EpochOf(height))
}

func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		initialized: l.initialized,
		firstEpoch:  l.firstEpoch,
		targets:     len(l.targets),
		pending:     l.pending,
	}
}

// Restore rewinds to a snapshot taken earlier on the same ledger. Confirmed
// targets are append-only and pending proposals are replaced, never mutated,
// so the captured length and pointer are enough.
func (l *Ledger) Restore(s Snapshot) {
	l.initialized = s.initialized
	l.firstEpoch = s.firstEpoch
	l.targets = l.targets[:s.targets]
	l.pending = s.pending
}
