package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/merkle"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

// VerifyTxInclusion checks that txID is committed to by a stored block using
// merkleblock proof bytes and returns that block's record. Callers decide
// what status or depth they require of the block.
func (e *Engine) VerifyTxInclusion(txID chainhash.Hash, rawProof []byte) (model.BlockRecord, error) {
	proof, err := merkle.ParseProof(txID, rawProof)
	if err != nil {
		return model.BlockRecord{}, err
	}
	hash := header.Hash(proof.Header)

	e.mu.RLock()
	defer e.mu.RUnlock()
	rec, ok := e.store.Block(hash)
	if !ok {
		return model.BlockRecord{}, &model.HashError{Kind: model.ErrUnknownBlock, Hash: hash}
	}
	if !merkle.Verify(proof, rec.Header.MerkleRoot) {
		return model.BlockRecord{}, &model.HashError{Kind: model.ErrInvalidMerkleProof, Hash: txID}
	}
	return rec.Clone(), nil
}
