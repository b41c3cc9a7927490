package recorder

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertChainEvents(ctx context.Context, events []model.ChainEvent) error
	}
)
