package rpcclient

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

type ObservedClient struct {
	client     Client
	rpcMetrics RPCMetrics
}

func NewObservedClient(client Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

func (r *ObservedClient) GetBlockHeader(blockHash *chainhash.Hash) (header *wire.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header", err, started)
	}()
	return r.client.GetBlockHeader(blockHash)
}

func (r *ObservedClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (header *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header_verbose", err, started)
	}()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

func (r *ObservedClient) GetBlockChainInfo() (info *btcjson.GetBlockChainInfoResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_blockchain_info", err, started)
	}()
	return r.client.GetBlockChainInfo()
}

// GetTxOutProof returns the serialized merkleblock proving txID. A nil
// blockHash lets the node locate the block through its transaction index.
func (r *ObservedClient) GetTxOutProof(txID chainhash.Hash, blockHash *chainhash.Hash) (proof []byte, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_tx_out_proof", err, started)
	}()

	params := make([]json.RawMessage, 0, 2)
	txIDs, err := json.Marshal([]string{txID.String()})
	if err != nil {
		return nil, err
	}
	params = append(params, txIDs)
	if blockHash != nil {
		hash, err := json.Marshal(blockHash.String())
		if err != nil {
			return nil, err
		}
		params = append(params, hash)
	}

	res, err := r.client.RawRequest("gettxoutproof", params)
	if err != nil {
		return nil, err
	}
	var encoded string
	if err = json.Unmarshal(res, &encoded); err != nil {
		return nil, fmt.Errorf("decode gettxoutproof result: %w", err)
	}
	if proof, err = hex.DecodeString(encoded); err != nil {
		return nil, fmt.Errorf("decode gettxoutproof hex: %w", err)
	}
	return proof, nil
}
