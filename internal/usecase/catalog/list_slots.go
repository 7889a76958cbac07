package catalog

import (
	"context"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// Execute returns every slot ordered by date, then time.
func (uc *ListSlots) Execute(ctx context.Context) ([]models.Slot, error) {
	return uc.repo.List(ctx)
}
