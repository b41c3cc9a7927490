package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chainAddHeadersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "add_headers_total",
		Help:      "Count of header batches submitted to the chain engine.",
	}, []string{"coin", "network", "status"})

	chainAddHeadersDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "add_headers_duration_seconds",
		Help:      "Duration of validating and connecting a header batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	chainAddHeadersSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "add_headers_batch_size",
		Help:      "Number of headers per submitted batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})

	chainReorgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "reorgs_total",
		Help:      "Count of mainchain reorganizations.",
	}, []string{"coin", "network"})

	chainReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "reorg_depth_blocks",
		Help:      "Number of blocks detached from the mainchain per reorganization.",
		Buckets:   []float64{1, 2, 3, 4, 6, 10, 20, 50, 100},
	}, []string{"coin", "network"})

	chainMainchainHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "chain_engine",
		Name:      "mainchain_height",
		Help:      "Height of the current mainchain head.",
	}, []string{"coin", "network"})
)

// ChainEngine tracks metrics of the header validation engine.
type ChainEngine struct {
	labels chainLabels
}

// NewChainEngine constructs a ChainEngine with defaults.
func NewChainEngine(coin model.Coin, network model.Network) *ChainEngine {
	return &ChainEngine{labels: newChainLabels(coin, network)}
}

// ObserveAddHeaders records the outcome, duration and size of a header batch.
func (m ChainEngine) ObserveAddHeaders(err error, headers int, started time.Time) {
	status := statusOf(err)
	chainAddHeadersTotal.WithLabelValues(m.labels.values(status)...).Inc()
	chainAddHeadersDuration.WithLabelValues(m.labels.values(status)...).
		Observe(time.Since(started).Seconds())
	chainAddHeadersSize.WithLabelValues(m.labels.values()...).
		Observe(float64(headers))
}

func (m ChainEngine) ObserveReorg(depth uint64) {
	chainReorgsTotal.WithLabelValues(m.labels.values()...).Inc()
	chainReorgDepth.WithLabelValues(m.labels.values()...).Observe(float64(depth))
}

func (m ChainEngine) ObserveMainchainHeight(height uint64) {
	chainMainchainHeight.WithLabelValues(m.labels.values()...).Set(float64(height))
}
