package slot

import (
	"context"

	"github.com/lumiere-studio/salon-booking/internal/models"
)

// Repository is the Slot Store. It is the only shared mutable state and the
// single place where uniqueness and the booking transition are enforced.
type Repository interface {
	// List returns every slot ordered by date, then time.
	List(ctx context.Context) ([]models.Slot, error)

	// Find returns ErrNotFound when no slot has the key.
	Find(ctx context.Context, key Key) (*models.Slot, error)

	// Insert creates an unbooked slot. An existing key yields ErrDuplicateKey,
	// detected atomically by the store.
	Insert(ctx context.Context, key Key) error

	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key Key) error

	// Book flips booked false->true and records the client in one conditional
	// write. A missing or already booked slot yields ErrSlotUnavailable.
	Book(ctx context.Context, key Key, client models.Client) error
}
