package slot

import (
	"context"

	"github.com/lumiere-studio/salon-booking/internal/models"
)

// CheckoutRequest is everything a payment provider needs to open a hosted
// checkout for one deposit.
type CheckoutRequest struct {
	Intent      Intent
	Amount      int64 // minor units
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
}

// PaymentGateway opens a hosted checkout and returns its redirect URL.
// One attempt per call; failures are returned as is.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (string, error)
}

// HoldStore tracks slots whose payment is in progress.
type HoldStore interface {
	Acquire(ctx context.Context, key Key, owner string) (bool, error)
	Release(ctx context.Context, key Key) error
}

// Notifier fires the confirmation message after a booking is committed.
// It must not block and has no way to report failure to the caller.
type Notifier interface {
	NotifyConfirmed(key Key, client models.Client)
}
