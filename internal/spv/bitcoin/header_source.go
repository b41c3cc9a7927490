// Package bitcoin reads headers and merkle proofs from a bitcoind-compatible node.
package bitcoin

import (
	"bytes"
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/pkg/safe"
)

// HeaderSource serves raw headers by height from a node.
type HeaderSource struct {
	rpc     RPCClient
	network model.Network
}

// NewHeaderSource creates a HeaderSource for Bitcoin.
func NewHeaderSource(rpc RPCClient, network model.Network) *HeaderSource {
	return &HeaderSource{
		rpc:     rpc,
		network: network,
	}
}

// LatestHeight returns the node's best block height.
func (s *HeaderSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchHeader returns the serialized header at height on the node's best chain.
func (s *HeaderSource) FetchHeader(ctx context.Context, height uint64) (model.RawHeader, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return model.RawHeader{}, fmt.Errorf("block height exceeds rpc limit: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return model.RawHeader{}, err
	}
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return model.RawHeader{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	h, err := s.rpc.GetBlockHeader(hash)
	if err != nil {
		return model.RawHeader{}, fmt.Errorf("get block header %s: %w", hash, err)
	}

	var buf bytes.Buffer
	buf.Grow(model.HeaderSize)
	if err := h.Serialize(&buf); err != nil {
		return model.RawHeader{}, fmt.Errorf("serialize header %s: %w", hash, err)
	}
	if got := h.BlockHash(); got != *hash {
		return model.RawHeader{}, fmt.Errorf("node returned header %s for hash %s", got, hash)
	}

	return model.RawHeader{Height: height, Hash: *hash, Raw: buf.Bytes()}, nil
}

// nodeChains maps networks to the chain names bitcoind reports.
var nodeChains = map[model.Network]string{
	model.Mainnet: "main",
	model.Testnet: "test",
	model.Regtest: "regtest",
	model.Signet:  "signet",
	model.Simnet:  "simnet",
}

// CheckNetwork fails when the node follows a different chain than the
// source was created for.
func (s *HeaderSource) CheckNetwork(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	want, ok := nodeChains[s.network]
	if !ok {
		return fmt.Errorf("unsupported network %q", s.network)
	}
	info, err := s.rpc.GetBlockChainInfo()
	if err != nil {
		return fmt.Errorf("get blockchain info: %w", err)
	}
	if info.Chain != want {
		return fmt.Errorf("node is on chain %q, want %q for %s", info.Chain, want, s.network)
	}
	return nil
}

// BlockHeight returns the height of hash on the node.
func (s *HeaderSource) BlockHeight(ctx context.Context, hash chainhash.Hash) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	h, err := s.rpc.GetBlockHeaderVerbose(&hash)
	if err != nil {
		return 0, fmt.Errorf("get block header %s: %w", hash, err)
	}
	height, err := safe.Uint64(h.Height)
	if err != nil {
		return 0, fmt.Errorf("block %s height: %w", hash, err)
	}
	return height, nil
}

// FetchProof returns the merkleblock bytes proving txID. blockHash may be nil.
func (s *HeaderSource) FetchProof(ctx context.Context, txID chainhash.Hash, blockHash *chainhash.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proof, err := s.rpc.GetTxOutProof(txID, blockHash)
	if err != nil {
		return nil, fmt.Errorf("get proof of %s: %w", txID, err)
	}
	return proof, nil
}
