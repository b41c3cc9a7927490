// Package main runs an SPV header follower against a bitcoind node.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/metrics"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-spv/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/chain"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/service/follower"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/service/recorder"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	ClickhouseDSN            string        `long:"clickhouse-dsn" env:"SPV_FOLLOWER_CLICKHOUSE_DSN" description:"ClickHouse DSN for chain events; events are not stored when empty"`
	Coin                     model.Coin    `long:"coin" env:"SPV_FOLLOWER_COIN" description:"coin name" default:"BTC"`
	Network                  model.Network `long:"network" env:"SPV_FOLLOWER_NETWORK" description:"network name" required:"true"`
	RPCURL                   string        `long:"rpc-url" env:"SPV_FOLLOWER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser                  string        `long:"rpc-user" env:"SPV_FOLLOWER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword              string        `long:"rpc-password" env:"SPV_FOLLOWER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ZMQAddr                  string        `long:"zmq-addr" env:"SPV_FOLLOWER_ZMQ_ADDR" description:"bitcoind zmqpubhashblock address"`
	CheckpointHeight         uint64        `long:"checkpoint-height" env:"SPV_FOLLOWER_CHECKPOINT_HEIGHT" description:"retarget boundary to start from; 0 starts from genesis"`
	CheckpointWork           string        `long:"checkpoint-work" env:"SPV_FOLLOWER_CHECKPOINT_WORK" description:"decimal cumulative work of the block before the checkpoint" default:"0"`
	PendingBlockCount        uint64        `long:"pending-block-count" env:"SPV_FOLLOWER_PENDING_BLOCK_COUNT" description:"blocks on top before a block is active" default:"6"`
	PendingTargetHeightCount uint64        `long:"pending-target-height-count" env:"SPV_FOLLOWER_PENDING_TARGET_HEIGHT_COUNT" description:"blocks on top before a retarget is confirmed" default:"6"`
	GRPCAddr                 string        `long:"grpc-addr" env:"SPV_FOLLOWER_GRPC_ADDR" description:"gRPC health address" default:":8000"`
	HTTPAddr                 string        `long:"http-addr" env:"SPV_FOLLOWER_HTTP_ADDR" description:"status and metrics address" default:":8001"`
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
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("spv follower failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := model.ParamsForNetwork(cfg.Network)
	if err != nil {
		return err
	}
	checkpointWork, ok := new(big.Int).SetString(cfg.CheckpointWork, 10)
	if !ok || checkpointWork.Sign() < 0 {
		return fmt.Errorf("invalid checkpoint work %q", cfg.CheckpointWork)
	}

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network))
	source := bitcoin.NewHeaderSource(rpc, cfg.Network)
	if err := source.CheckNetwork(ctx); err != nil {
		return err
	}

	var observers []chain.Observer
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}()
		rec, err := recorder.NewRecorder(repo, cfg.Coin, cfg.Network, logger)
		if err != nil {
			return err
		}
		rec.Start(ctx)
		defer rec.Stop()
		observers = append(observers, rec)
	}

	engineCfg := chain.DefaultConfig(params)
	engineCfg.PendingBlockCount = cfg.PendingBlockCount
	engineCfg.PendingTargetHeightCount = cfg.PendingTargetHeightCount
	engine, err := chain.New(engineCfg, logger, metrics.NewChainEngine(cfg.Coin, cfg.Network), observers...)
	if err != nil {
		return fmt.Errorf("init chain engine: %w", err)
	}
	if err := initialize(ctx, engine, source, cfg.CheckpointHeight, checkpointWork); err != nil {
		return err
	}

	healthServer := health.NewServer()
	startGRPCServer(ctx, cfg.GRPCAddr, healthServer, logger)
	transport.UpdateHealth(healthServer, engine)
	if err := startHTTPServer(ctx, cfg.HTTPAddr, transport.NewStatusHandler(engine, cfg.Network, logger), logger); err != nil {
		return err
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("start block signal: %w", err)
	}

	svc, err := follower.NewService(
		engine,
		source,
		metrics.NewFollower(cfg.Coin, cfg.Network),
		cfg.Coin,
		cfg.Network,
		logger,
		blockSignal,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func initialize(ctx context.Context, engine *chain.Engine, source *bitcoin.HeaderSource, height uint64, work *big.Int) error {
	if height == 0 {
		return engine.InitializeFromGenesis()
	}
	checkpoint, err := source.FetchHeader(ctx, height)
	if err != nil {
		return fmt.Errorf("fetch checkpoint header: %w", err)
	}
	return engine.InitializeFromCheckpoint(checkpoint.Raw, height, work)
}

func startGRPCServer(ctx context.Context, addr string, healthServer *health.Server, logger *zap.Logger) {
	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
	)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("grpc listen failed", zap.String("addr", addr), zap.Error(err))
		return
	}
	go func() {
		logger.Info("starting grpc server", zap.String("addr", addr))
		if err := grpcServer.Serve(socket); err != nil {
			logger.Error("grpc server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down grpc server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()
}

func startHTTPServer(ctx context.Context, addr string, status *transport.StatusHandler, logger *zap.Logger) error {
	gw := gwruntime.NewServeMux()
	if err := status.Register(gw); err != nil {
		return fmt.Errorf("register status routes: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("starting http server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()
	return nil
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
