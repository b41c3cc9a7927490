package transport

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Chain is the read side of the chain engine served over HTTP.
	Chain interface {
		Initialized() bool
		MainchainHead() chainhash.Hash
		MainchainHeight() uint64
		RootHeight() uint64
		LastEpoch() uint64
		LastTarget() *big.Int
		PendingTarget() (model.PendingTarget, bool)
		BlockInfo(hash chainhash.Hash) (model.BlockRecord, error)
		BlockByHeight(height uint64) (model.BlockRecord, error)
		VerifyTxInclusion(txID chainhash.Hash, rawProof []byte) (model.BlockRecord, error)
	}
)
