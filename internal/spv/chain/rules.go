package chain

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
)

// medianTimeBlocks is the number of ancestors the median time past spans.
const medianTimeBlocks = 11

type ruleInput struct {
	header     model.BlockHeader
	hash       chainhash.Hash
	target     *big.Int
	medianTime uint32
}

type rule func(in ruleInput) error

// blockRules run in order; the first failure is reported.
var blockRules = []rule{
	checkTarget,
	checkProofOfWork,
	checkMedianTime,
}

// ValidateBlockRules checks a header against the target prescribed for its
// height and the median time past of its ancestors.
func ValidateBlockRules(h model.BlockHeader, hash chainhash.Hash, expected *big.Int, medianTime uint32) error {
	in := ruleInput{header: h, hash: hash, target: expected, medianTime: medianTime}
	for _, r := range blockRules {
		if err := r(in); err != nil {
			return err
		}
	}
	return nil
}

func checkTarget(in ruleInput) error {
	actual := target.BitsToTarget(in.header.Bits)
	if actual.Cmp(in.target) != 0 {
		return &model.TargetError{Actual: actual, Expected: new(big.Int).Set(in.target)}
	}
	return nil
}

func checkProofOfWork(in ruleInput) error {
	if !target.MeetsTarget(&in.hash, in.target) {
		return &model.BlockHashError{Hash: in.hash, Target: new(big.Int).Set(in.target)}
	}
	return nil
}

func checkMedianTime(in ruleInput) error {
	if in.header.Time <= in.medianTime {
		return &model.BlockTimeError{Time: in.header.Time, MedianTime: in.medianTime}
	}
	return nil
}

// StorageMedianTime returns the median time past for a header at height
// whose parent is stored: the median of the timestamps of up to 11 stored
// ancestors, or 0 when the ancestry is cut short by a checkpoint root.
func (e *Engine) StorageMedianTime(h model.BlockHeader, height uint64) (uint32, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	parentHeight, ok := e.store.Height(h.PrevBlockHash)
	if !ok {
		return 0, &model.HashError{Kind: model.ErrPrevBlockDoesNotExist, Hash: h.PrevBlockHash}
	}
	if parentHeight+1 != height {
		return 0, &model.HeightError{Kind: model.ErrUnexpectedBlockHeight, Height: height}
	}
	return e.storedMedianTime(h.PrevBlockHash), nil
}

// storedMedianTime is the median of up to 11 timestamps ending at parent. A
// walk that reaches a checkpoint root early has no ancestry to compare with,
// so the result is 0 and any time passes.
func (e *Engine) storedMedianTime(parent chainhash.Hash) uint32 {
	times := e.store.Timestamps(parent, medianTimeBlocks)
	if _, rootHeight := e.store.Root(); len(times) < medianTimeBlocks && rootHeight > 0 {
		return 0
	}
	return median(times)
}

// MemoryMedianTime returns the median time past for raw[to] computed from the
// 11 headers before it, or 0 when fewer than 11 precede it.
func MemoryMedianTime(raw [][]byte, to int) (uint32, error) {
	if to < medianTimeBlocks {
		return 0, nil
	}
	if to > len(raw) {
		return 0, fmt.Errorf("median time index %d out of range of %d headers", to, len(raw))
	}
	times := make([]uint32, 0, medianTimeBlocks)
	for _, r := range raw[to-medianTimeBlocks : to] {
		h, err := header.Parse(r)
		if err != nil {
			return 0, err
		}
		times = append(times, h.Time)
	}
	return median(times), nil
}

func medianOfHeaders(batch []candidate) uint32 {
	times := make([]uint32, len(batch))
	for i, c := range batch {
		times[i] = c.header.Time
	}
	return median(times)
}

func median(times []uint32) uint32 {
	if len(times) == 0 {
		return 0
	}
	sorted := slices.Clone(times)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
