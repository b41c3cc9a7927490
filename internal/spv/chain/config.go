package chain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goodnatureofminers/blockinsight7000-spv/internal/spv/model"
)

const (
	defaultPendingBlockCount        = 6
	defaultPendingTargetHeightCount = 6
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the engine's consensus parameters and confirmation windows.
type Config struct {
	Params model.Params
	// PendingBlockCount is the depth at which a mainchain block turns Active.
	PendingBlockCount uint64 `validate:"lte=2016"`
	// PendingTargetHeightCount is the depth at which a retarget proposal is confirmed.
	PendingTargetHeightCount uint64 `validate:"gte=1,lte=2016"`
}

// DefaultConfig returns a Config for params with the default windows.
func DefaultConfig(params model.Params) Config {
	return Config{
		Params:                   params,
		PendingBlockCount:        defaultPendingBlockCount,
		PendingTargetHeightCount: defaultPendingTargetHeightCount,
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid chain config: %w", err)
	}
	return nil
}
