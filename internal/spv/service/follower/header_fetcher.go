package follower

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/pkg/workerpool"
)

type headerFetcher struct {
	source      HeaderSource
	chain       Chain
	limit       uint64
	workerCount int
}

// Fetch downloads up to limit headers starting rewind blocks below the local
// head and drops the leading ones the chain already stores.
func (f *headerFetcher) Fetch(ctx context.Context, rewind uint64) (Batch, error) {
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return Batch{}, err
	}

	from := f.chain.MainchainHeight() + 1
	if floor := f.chain.RootHeight() + 1; from-floor < rewind {
		from = floor
	} else {
		from -= rewind
	}
	if latest < from {
		return Batch{NodeHeight: latest}, nil
	}
	to := min(latest, from+f.limit-1)

	heights := make([]uint64, 0, to-from+1)
	for h := from; h <= to; h++ {
		heights = append(heights, h)
	}
	headers, err := workerpool.Map(ctx, f.workerCount, heights, f.source.FetchHeader)
	if err != nil {
		return Batch{}, err
	}

	known := 0
	for known < len(headers) && f.chain.HasBlock(headers[known].Hash) {
		known++
	}
	return Batch{Headers: headers[known:], NodeHeight: latest}, nil
}

func rawHeaders(headers []model.RawHeader) [][]byte {
	raw := make([][]byte, len(headers))
	for i, h := range headers {
		raw[i] = h.Raw
	}
	return raw
}
