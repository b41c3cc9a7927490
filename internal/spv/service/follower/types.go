package follower

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeaderSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchHeader(ctx context.Context, height uint64) (model.RawHeader, error)
	}
	// Chain is the part of the chain engine the follower feeds.
	Chain interface {
		MainchainHeight() uint64
		RootHeight() uint64
		HasBlock(hash chainhash.Hash) bool
		AddBlockHeaderBatch(raw [][]byte) error
	}
	HeaderFetcher interface {
		Fetch(ctx context.Context, rewind uint64) (Batch, error)
	}
	Metrics interface {
		ObserveFetchHeaders(err error, started time.Time)
		ObserveProcessBatch(err error, headers int, started time.Time)
		ObserveRewind(depth uint64)
	}
)

// Batch is a run of consecutive unknown headers and the node height seen
// when it was fetched.
type Batch struct {
	Headers    []model.RawHeader
	NodeHeight uint64
}

// CaughtUp reports whether the batch reaches the node's tip.
func (b Batch) CaughtUp() bool {
	return len(b.Headers) == 0 || b.Headers[len(b.Headers)-1].Height >= b.NodeHeight
}
