// Package main verifies a transaction's inclusion with SPV: it syncs headers
// from the retarget boundary below the transaction's block and checks the
// node's merkle proof against the locally validated chain.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/metrics"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-spv/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/chain"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/merkle"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/service/follower"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Coin          model.Coin    `long:"coin" env:"SPV_PROOF_COIN" description:"coin name" default:"BTC"`
	Network       model.Network `long:"network" env:"SPV_PROOF_NETWORK" description:"network name" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"SPV_PROOF_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"SPV_PROOF_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"SPV_PROOF_RPC_PASSWORD" description:"Bitcoin RPC password"`
	TxID          string        `long:"txid" description:"transaction id to prove" required:"true"`
	BlockHash     string        `long:"block-hash" description:"block containing the transaction; required without -txindex"`
	Confirmations uint64        `long:"confirmations" description:"blocks to validate on top of the transaction's block" default:"6"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("inclusion not proven", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := model.ParamsForNetwork(cfg.Network)
	if err != nil {
		return err
	}
	txID, err := chainhash.NewHashFromStr(cfg.TxID)
	if err != nil {
		return fmt.Errorf("parse txid: %w", err)
	}
	var blockHash *chainhash.Hash
	if cfg.BlockHash != "" {
		if blockHash, err = chainhash.NewHashFromStr(cfg.BlockHash); err != nil {
			return fmt.Errorf("parse block hash: %w", err)
		}
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	source := bitcoin.NewHeaderSource(
		rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network)),
		cfg.Network,
	)
	if err := source.CheckNetwork(ctx); err != nil {
		return err
	}

	rawProof, err := source.FetchProof(ctx, *txID, blockHash)
	if err != nil {
		return err
	}
	proof, err := merkle.ParseProof(*txID, rawProof)
	if err != nil {
		return err
	}
	proofBlock := header.Hash(proof.Header)
	height, err := source.BlockHeight(ctx, proofBlock)
	if err != nil {
		return err
	}

	engine, err := chain.New(chain.DefaultConfig(params), logger, metrics.NewChainEngine(cfg.Coin, cfg.Network))
	if err != nil {
		return fmt.Errorf("init chain engine: %w", err)
	}
	checkpoint := checkpointHeight(params, height)
	if checkpoint == 0 {
		err = engine.InitializeFromGenesis()
	} else {
		var raw model.RawHeader
		if raw, err = source.FetchHeader(ctx, checkpoint); err == nil {
			err = engine.InitializeFromCheckpoint(raw.Raw, checkpoint, nil)
		}
	}
	if err != nil {
		return fmt.Errorf("initialize at %d: %w", checkpoint, err)
	}

	svc, err := follower.NewService(engine, source, metrics.NewFollower(cfg.Coin, cfg.Network), cfg.Coin, cfg.Network, logger, nil)
	if err != nil {
		return err
	}
	latest, err := source.LatestHeight(ctx)
	if err != nil {
		return err
	}
	if err := svc.SyncTo(ctx, syncHeight(height, cfg.Confirmations, latest)); err != nil {
		return fmt.Errorf("sync headers: %w", err)
	}

	rec, err := engine.VerifyTxInclusion(*txID, rawProof)
	if err != nil {
		return err
	}
	if !rec.InMainchain {
		return fmt.Errorf("block %s is not on the validated mainchain", rec.Hash)
	}

	logger.Info("transaction inclusion proven",
		zap.Stringer("txid", txID),
		zap.Stringer("block", rec.Hash),
		zap.Uint64("height", rec.Height),
		zap.Uint32("tx_index", proof.TxIndex),
		zap.Uint32("tx_count", proof.TxCount),
		zap.String("status", string(rec.Status)),
		zap.Uint64("confirmations", engine.MainchainHeight()-rec.Height+1),
		zap.Uint64("checkpoint", checkpoint),
	)
	return nil
}

// checkpointHeight returns the retarget boundary at or below height.
func checkpointHeight(params model.Params, height uint64) uint64 {
	return height - height%params.RetargetInterval
}

func syncHeight(height, confirmations, latest uint64) uint64 {
	return max(height, min(height+confirmations, latest))
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
