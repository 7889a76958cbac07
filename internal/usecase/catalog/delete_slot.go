package catalog

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

type DeleteSlot struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewDeleteSlot(repo domain.Repository, log *zap.Logger) *DeleteSlot {
	return &DeleteSlot{repo: repo, log: log}
}

// Execute removes the slot whatever its booking state. Unknown keys succeed.
func (uc *DeleteSlot) Execute(ctx context.Context, key domain.Key) error {
	if err := uc.repo.Delete(ctx, key); err != nil {
		return err
	}

	uc.log.Info("slot deleted", zap.String("slot", key.String()))
	return nil
}
