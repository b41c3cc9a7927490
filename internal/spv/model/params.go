package model

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Params carries the consensus constants the chain engine needs.
type Params struct {
	Name             string
	GenesisHeader    BlockHeader
	GenesisHash      chainhash.Hash
	PowLimit         *big.Int      `validate:"required"`
	PowLimitBits     uint32        `validate:"required"`
	RetargetInterval uint64        `validate:"gt=0"`
	TargetTimespan   time.Duration `validate:"gte=1s"`
	AdjustmentFactor int64         `validate:"gt=1"`

	// NoRetargeting keeps every epoch at the previous block's bits.
	NoRetargeting bool
	// ReduceMinDifficulty lets a block inside an epoch carry the pow limit
	// when it is more than MinDiffReductionTime younger than its parent.
	ReduceMinDifficulty  bool
	MinDiffReductionTime time.Duration
}

// NewParams derives Params from btcd network parameters.
func NewParams(p *chaincfg.Params) Params {
	genesis := p.GenesisBlock.Header
	return Params{
		Name: p.Name,
		GenesisHeader: BlockHeader{
			Version:       uint32(genesis.Version),
			PrevBlockHash: genesis.PrevBlock,
			MerkleRoot:    genesis.MerkleRoot,
			Time:          uint32(genesis.Timestamp.Unix()),
			Bits:          genesis.Bits,
			Nonce:         genesis.Nonce,
		},
		GenesisHash:      *p.GenesisHash,
		PowLimit:         new(big.Int).Set(p.PowLimit),
		PowLimitBits:     p.PowLimitBits,
		RetargetInterval: uint64(p.TargetTimespan / p.TargetTimePerBlock),
		TargetTimespan:   p.TargetTimespan,
		AdjustmentFactor: p.RetargetAdjustmentFactor,

		NoRetargeting:        p.PoWNoRetargeting,
		ReduceMinDifficulty:  p.ReduceMinDifficulty,
		MinDiffReductionTime: p.MinDiffReductionTime,
	}
}

// ParamsForNetwork resolves Params by network name.
func ParamsForNetwork(network Network) (Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return NewParams(&chaincfg.MainNetParams), nil
	case "testnet", "testnet3":
		return NewParams(&chaincfg.TestNet3Params), nil
	case "regtest":
		return NewParams(&chaincfg.RegressionNetParams), nil
	case "signet":
		return NewParams(&chaincfg.SigNetParams), nil
	case "simnet":
		return NewParams(&chaincfg.SimNetParams), nil
	default:
		return Params{}, fmt.Errorf("unsupported network %q", network)
	}
}

// EpochOf returns the 1-based retarget epoch index containing height.
func (p Params) EpochOf(height uint64) uint64 {
	return height/p.RetargetInterval + 1
}

// EpochStart returns the first height of a 1-based epoch.
func (p Params) EpochStart(epoch uint64) uint64 {
	if epoch == 0 {
		return 0
	}
	return (epoch - 1) * p.RetargetInterval
}

// IsRetargetHeight reports whether height opens a retarget epoch.
func (p Params) IsRetargetHeight(height uint64) bool {
	return height%p.RetargetInterval == 0
}
