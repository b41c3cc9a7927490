package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	followerFetchHeadersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "fetch_headers_total",
		Help:      "Count of attempts to fetch new headers from the node.",
	}, []string{"coin", "network", "status"})

	followerFetchHeadersDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "fetch_headers_duration_seconds",
		Help:      "Duration of fetching new headers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	followerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "process_batch_total",
		Help:      "Count of header batches handed to the chain engine.",
	}, []string{"coin", "network", "status"})

	followerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a header batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	followerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "process_batch_size",
		Help:      "Number of headers processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})

	followerRewindDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "spv_follower",
		Name:      "rewind_depth_blocks",
		Help:      "Number of blocks below the local head the follower refetches from.",
	}, []string{"coin", "network"})
)

// Follower tracks metrics for the header follower.
type Follower struct {
	labels chainLabels
}

// NewFollower constructs a Follower with defaults.
func NewFollower(coin model.Coin, network model.Network) *Follower {
	return &Follower{labels: newChainLabels(coin, network)}
}

// ObserveFetchHeaders records a fetch attempt outcome and duration.
func (m Follower) ObserveFetchHeaders(err error, started time.Time) {
	status := statusOf(err)
	followerFetchHeadersTotal.WithLabelValues(m.labels.values(status)...).Inc()
	followerFetchHeadersDuration.WithLabelValues(m.labels.values(status)...).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a header batch.
func (m Follower) ObserveProcessBatch(err error, headers int, started time.Time) {
	status := statusOf(err)
	followerProcessBatchTotal.WithLabelValues(m.labels.values(status)...).Inc()
	followerProcessBatchDuration.WithLabelValues(m.labels.values(status)...).
		Observe(time.Since(started).Seconds())
	followerProcessBatchSize.WithLabelValues(m.labels.values()...).
		Observe(float64(headers))
}

func (m Follower) ObserveRewind(depth uint64) {
	followerRewindDepth.WithLabelValues(m.labels.values()...).Set(float64(depth))
}
