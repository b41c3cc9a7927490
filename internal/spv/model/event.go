package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// EventKind names a chain notification.
type EventKind string

var (
	EventMainchainHeadUpdated EventKind = "mainchain_head_updated"
	EventBlockHeaderAdded     EventKind = "block_header_added"
)

// Event is emitted by the chain engine after a call commits.
type Event struct {
	Kind   EventKind
	Height uint64
	Hash   chainhash.Hash
}

// ChainEvent is an Event persisted to ClickHouse.
type ChainEvent struct {
	Coin       Coin
	Network    Network
	Kind       EventKind
	Height     uint64
	Hash       string
	RecordedAt time.Time
}
