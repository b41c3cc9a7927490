package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "spv_rpc_client",
		Name:      "calls_total",
		Help:      "Count of bitcoind RPC calls made for header sync and proofs.",
	}, []string{"coin", "network", "method", "status"})
	rpcCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "spv_rpc_client",
		Name:      "call_duration_seconds",
		Help:      "Latency of bitcoind RPC calls.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"coin", "network", "method"})
)

// RPCClient records bitcoind RPC calls.
type RPCClient struct {
	labels chainLabels
}

func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{labels: newChainLabels(coin, network)}
}

// Observe counts a call by outcome. Latency is recorded for successful
// calls only so that fast-failing connection errors do not skew it.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcCallsTotal.WithLabelValues(m.labels.values(operation, statusOf(err))...).Inc()
	if err == nil {
		rpcCallDuration.WithLabelValues(m.labels.values(operation)...).Observe(time.Since(started).Seconds())
	}
}
