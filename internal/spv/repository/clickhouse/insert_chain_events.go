package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

const insertChainEventsQuery = `
INSERT INTO spv_chain_events (
	coin,
	network,
	kind,
	height,
	hash,
	recorded_at
) VALUES`

// InsertChainEvents stores engine events in ClickHouse.
func (r *Repository) InsertChainEvents(ctx context.Context, events []model.ChainEvent) error {
	start := time.Now()
	var err error
	defer func() {
		var (
			coin    model.Coin
			network model.Network
		)
		if len(events) > 0 {
			coin, network = events[0].Coin, events[0].Network
		}
		r.metrics.Observe("insert_chain_events", coin, network, err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertChainEventsQuery)
	if err != nil {
		return fmt.Errorf("prepare chain events batch: %w", err)
	}

	for _, event := range events {
		if err = batch.Append(
			string(event.Coin),
			string(event.Network),
			string(event.Kind),
			event.Height,
			event.Hash,
			event.RecordedAt,
		); err != nil {
			return fmt.Errorf("append chain event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert chain events: %w", err)
	}
	return nil
}
