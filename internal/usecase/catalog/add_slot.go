package catalog

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

type AddSlot struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewAddSlot(repo domain.Repository, log *zap.Logger) *AddSlot {
	return &AddSlot{repo: repo, log: log}
}

// Execute relies on the store to reject duplicates; there is no pre-check.
func (uc *AddSlot) Execute(ctx context.Context, key domain.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := uc.repo.Insert(ctx, key); err != nil {
		return err
	}

	uc.log.Info("slot added", zap.String("slot", key.String()))
	return nil
}
