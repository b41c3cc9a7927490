package chain

import (
	"math/big"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/header"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/target"
	"go.uber.org/zap"
)

// regtestBits is the regtest proof-of-work limit; a nonce search finds a
// matching hash within a few attempts.
const regtestBits = 0x207fffff

func regtestParams(t *testing.T) model.Params {
	t.Helper()

	p, err := model.ParamsForNetwork(model.Regtest)
	if err != nil {
		t.Fatalf("ParamsForNetwork() error = %v", err)
	}
	return p
}

// retargetingParams is regtest with the mainnet difficulty rules.
func retargetingParams(t *testing.T) model.Params {
	t.Helper()

	p := regtestParams(t)
	p.NoRetargeting = false
	p.ReduceMinDifficulty = false
	return p
}

func anyMetrics(t *testing.T) *MockMetrics {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := NewMockMetrics(ctrl)
	m.EXPECT().ObserveAddHeaders(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().ObserveReorg(gomock.Any()).AnyTimes()
	m.EXPECT().ObserveMainchainHeight(gomock.Any()).AnyTimes()
	return m
}

func newTestEngine(t *testing.T, cfg Config, metrics Metrics, observers ...Observer) *Engine {
	t.Helper()

	e, err := New(cfg, zap.NewNop(), metrics, observers...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

type eventLog struct {
	mu     sync.Mutex
	events []model.Event
}

func (l *eventLog) HandleEvents(events []model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, events...)
}

func (l *eventLog) take() []model.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// mine searches for a nonce that satisfies bits.
func mine(h model.BlockHeader) (model.BlockHeader, chainhash.Hash) {
	limit := target.BitsToTarget(h.Bits)
	for nonce := uint32(0); ; nonce++ {
		h.Nonce = nonce
		hash := header.Hash(h)
		if target.MeetsTarget(&hash, limit) {
			return h, hash
		}
	}
}

// mineInvalid searches for a nonce whose hash misses bits.
func mineInvalid(h model.BlockHeader) model.BlockHeader {
	limit := target.BitsToTarget(h.Bits)
	for nonce := uint32(0); ; nonce++ {
		h.Nonce = nonce
		hash := header.Hash(h)
		if !target.MeetsTarget(&hash, limit) {
			return h
		}
	}
}

func child(parent model.BlockHeader, timeStep uint32, bits uint32, salt byte) model.BlockHeader {
	h, _ := mine(model.BlockHeader{
		Version:       0x20000000,
		PrevBlockHash: header.Hash(parent),
		MerkleRoot:    chainhash.Hash{salt, 0x5a},
		Time:          parent.Time + timeStep,
		Bits:          bits,
	})
	return h
}

// mineChain builds n headers on parent spaced timeStep seconds apart.
func mineChain(parent model.BlockHeader, n int, timeStep uint32, bits uint32, salt byte) []model.BlockHeader {
	headers := make([]model.BlockHeader, 0, n)
	for i := 0; i < n; i++ {
		parent = child(parent, timeStep, bits, salt)
		headers = append(headers, parent)
	}
	return headers
}

func serialize(headers ...model.BlockHeader) [][]byte {
	raw := make([][]byte, len(headers))
	for i, h := range headers {
		raw[i] = header.Serialize(h)
	}
	return raw
}

func hashes(headers ...model.BlockHeader) []chainhash.Hash {
	out := make([]chainhash.Hash, len(headers))
	for i, h := range headers {
		out[i] = header.Hash(h)
	}
	return out
}

func workOf(bits uint32, blocks int64) *big.Int {
	return new(big.Int).Mul(target.Work(target.BitsToTarget(bits)), big.NewInt(blocks))
}
