// Package target converts between compact bits, 256-bit targets and chain work.
package target

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

var (
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)
)

// BitsToTarget expands compact bits into a target. No upper bound is applied.
func BitsToTarget(bits uint32) *big.Int {
	return blockchain.CompactToBig(bits)
}

// TargetToBits encodes a target into compact bits, truncating the mantissa.
func TargetToBits(target *big.Int) uint32 {
	return blockchain.BigToCompact(target)
}

// Normalize rounds a target to the precision representable in compact bits.
func Normalize(target *big.Int) *big.Int {
	return BitsToTarget(TargetToBits(target))
}

// Work returns 2^256 / (target + 1). Non-positive targets carry no work.
func Work(target *big.Int) *big.Int {
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}
	denominator := new(big.Int).Add(target, bigOne)
	return new(big.Int).Div(oneLsh256, denominator)
}

// HashToBig interprets a block hash as a little-endian 256-bit integer.
func HashToBig(hash *chainhash.Hash) *big.Int {
	return blockchain.HashToBig(hash)
}

// MeetsTarget reports whether the hash, as an integer, is at or below target.
func MeetsTarget(hash *chainhash.Hash, target *big.Int) bool {
	return HashToBig(hash).Cmp(target) <= 0
}

// Retarget scales old by the time the previous epoch took. The elapsed time is
// clamped to [timespan/factor, timespan*factor], the result to the pow limit,
// and the value is normalized through its compact encoding.
func Retarget(old *big.Int, epochStart, epochEnd uint32, p model.Params) *big.Int {
	timespan := int64(p.TargetTimespan / time.Second)
	minTimespan := timespan / p.AdjustmentFactor
	maxTimespan := timespan * p.AdjustmentFactor

	elapsed := int64(epochEnd) - int64(epochStart)
	if elapsed < minTimespan {
		elapsed = minTimespan
	} else if elapsed > maxTimespan {
		elapsed = maxTimespan
	}

	next := new(big.Int).Mul(old, big.NewInt(elapsed))
	next.Div(next, big.NewInt(timespan))
	if next.Cmp(p.PowLimit) > 0 {
		next.Set(p.PowLimit)
	}
	return Normalize(next)
}
