package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventStoreWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "spv_event_store",
		Name:      "writes_total",
		Help:      "Count of chain event writes to ClickHouse.",
	}, []string{"coin", "network", "operation", "status"})
	eventStoreWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "spv_event_store",
		Name:      "write_duration_seconds",
		Help:      "Duration of chain event writes to ClickHouse.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"coin", "network", "operation", "status"})
)

// ClickhouseRepository records writes of the chain event repository. Coin and
// network come with each call because a repository is shared across chains.
type ClickhouseRepository struct{}

func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

func (m ClickhouseRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	values := newChainLabels(coin, network).values(operation, statusOf(err))
	eventStoreWritesTotal.WithLabelValues(values...).Inc()
	eventStoreWriteDuration.WithLabelValues(values...).Observe(time.Since(started).Seconds())
}
