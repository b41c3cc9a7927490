// Package model defines the chain-state entities shared by the SPV ledger components.
package model

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderSize is the serialized length of a block header.
const HeaderSize = 80

// BlockStatus describes the confirmation state of a stored block.
type BlockStatus string

var (
	// BlockPending marks a mainchain block that is not yet buried deep enough.
	BlockPending BlockStatus = "pending"
	// BlockActive marks a mainchain block buried under the confirmation window.
	BlockActive BlockStatus = "active"
	// BlockStale marks a block that is stored but not part of the mainchain.
	BlockStale BlockStatus = "stale"
)

// BlockHeader is the decoded 80-byte block header.
// Hashes are kept in internal byte order; String() renders display order.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash chainhash.Hash
	MerkleRoot    chainhash.Hash
	Time          uint32
	Bits          uint32
	Nonce         uint32
}

// BlockRecord is a validated block together with its chain metadata.
type BlockRecord struct {
	Header         BlockHeader
	Hash           chainhash.Hash
	Height         uint64
	CumulativeWork *big.Int
	Status         BlockStatus
	InMainchain    bool
}

// Clone returns a copy that does not share the cumulative work value.
func (r BlockRecord) Clone() BlockRecord {
	if r.CumulativeWork != nil {
		r.CumulativeWork = new(big.Int).Set(r.CumulativeWork)
	}
	return r
}

// PendingTarget is a retarget proposal waiting for its block to be buried.
type PendingTarget struct {
	Hash   chainhash.Hash
	Height uint64
	Epoch  uint64
	Target *big.Int
}

// RawHeader is a serialized header fetched from a node at a known height.
type RawHeader struct {
	Height uint64
	Hash   chainhash.Hash
	Raw    []byte
}
