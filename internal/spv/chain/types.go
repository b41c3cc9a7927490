package chain

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveAddHeaders(err error, headers int, started time.Time)
		ObserveReorg(depth uint64)
		ObserveMainchainHeight(height uint64)
	}
	// Observer receives the events of a call after it committed.
	Observer interface {
		HandleEvents(events []model.Event)
	}
)
