package chain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
	"go.uber.org/zap"
)

// prescribedTarget returns the target h, a child of parent at height, must
// carry. Inside an epoch a block inherits its parent's target, or the confirmed
// one, unless the network allows minimum-difficulty blocks. A block opening an
// epoch is retargeted from its own ancestry unless the epoch is confirmed or
// the network never retargets.
func (e *Engine) prescribedTarget(parent *model.BlockRecord, h model.BlockHeader, height uint64) (*big.Int, error) {
	if !e.params.IsRetargetHeight(height) {
		if e.params.ReduceMinDifficulty {
			return e.minDifficultyTarget(parent, h.Time), nil
		}
		if t, ok := e.ledger.TargetForHeight(height); ok {
			return t, nil
		}
		return target.BitsToTarget(parent.Header.Bits), nil
	}
	if e.params.NoRetargeting {
		return target.BitsToTarget(parent.Header.Bits), nil
	}
	if t, ok := e.ledger.TargetForHeight(height); ok {
		return t, nil
	}

	first, ok := e.store.Ancestor(parent.Hash, height-e.params.RetargetInterval)
	if !ok {
		return nil, fmt.Errorf("no ancestor at height %d for retarget at %d", height-e.params.RetargetInterval, height)
	}
	start, end := first.Header.Time, parent.Header.Time
	if end <= start {
		return nil, &model.EpochTimeError{Start: start, End: end}
	}
	return target.Retarget(target.BitsToTarget(parent.Header.Bits), start, end, e.params), nil
}

// minDifficultyTarget is the pow limit for a block more than
// MinDiffReductionTime after its parent. Otherwise it is the target of the
// closest ancestor that is not a minimum-difficulty block, stopping at the
// epoch start or the store root.
func (e *Engine) minDifficultyTarget(parent *model.BlockRecord, blockTime uint32) *big.Int {
	allowed := int64(parent.Header.Time) + int64(e.params.MinDiffReductionTime/time.Second)
	if int64(blockTime) > allowed {
		return target.BitsToTarget(e.params.PowLimitBits)
	}

	node := parent
	for node.Header.Bits == e.params.PowLimitBits && !e.params.IsRetargetHeight(node.Height) {
		prev, ok := e.store.Block(node.Header.PrevBlockHash)
		if !ok {
			break
		}
		node = prev
	}
	return target.BitsToTarget(node.Header.Bits)
}

// syncPendingTarget brings the ledger in line with the mainchain after the
// head moved: a proposal that left the mainchain is discarded, the next
// epoch boundary on the mainchain is proposed, and a proposal buried deep
// enough is confirmed.
func (e *Engine) syncPendingTarget() error {
	if e.params.NoRetargeting {
		return nil
	}
	for {
		pending, ok := e.ledger.PendingTarget()
		switch {
		case ok && !e.store.IsInMainchain(pending.Hash):
			e.ledger.DiscardPendingTarget()
			e.logger.Info("pending target discarded",
				zap.Uint64("epoch", pending.Epoch),
				zap.Stringer("hash", pending.Hash),
			)
		case ok && e.store.HeadHeight() >= pending.Height+e.cfg.PendingTargetHeightCount:
			if err := e.ledger.ConfirmPendingTarget(pending.Hash); err != nil {
				return err
			}
			e.logger.Info("target confirmed",
				zap.Uint64("epoch", pending.Epoch),
				zap.Uint64("height", pending.Height),
				zap.Uint32("bits", target.TargetToBits(pending.Target)),
			)
		case ok:
			return nil
		default:
			proposed, err := e.proposeTarget()
			if err != nil || !proposed {
				return err
			}
		}
	}
}

func (e *Engine) proposeTarget() (bool, error) {
	height := e.ledger.NextRetargetHeight()
	hash, ok := e.store.HashByHeight(height)
	if !ok {
		return false, nil
	}

	block, _ := e.store.Block(hash)
	parent, _ := e.store.Block(block.Header.PrevBlockHash)
	first, ok := e.store.Ancestor(parent.Hash, height-e.params.RetargetInterval)
	if !ok {
		return false, fmt.Errorf("no ancestor at height %d for retarget at %d", height-e.params.RetargetInterval, height)
	}
	previous := target.BitsToTarget(parent.Header.Bits)
	if err := e.ledger.ProposeTarget(height, hash, previous, first.Header.Time, parent.Header.Time); err != nil {
		return false, err
	}

	e.logger.Info("target proposed",
		zap.Uint64("epoch", e.params.EpochOf(height)),
		zap.Uint64("height", height),
		zap.Stringer("hash", hash),
	)
	return true, nil
}
