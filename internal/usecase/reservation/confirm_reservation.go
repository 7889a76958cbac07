package reservation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/metrics"
)

type ConfirmReservation struct {
	repo     domain.Repository
	holds    domain.HoldStore
	notifier domain.Notifier
	log      *zap.Logger
}

func NewConfirmReservation(
	repo domain.Repository,
	holds domain.HoldStore,
	notifier domain.Notifier,
	log *zap.Logger,
) *ConfirmReservation {
	return &ConfirmReservation{
		repo:     repo,
		holds:    holds,
		notifier: notifier,
		log:      log,
	}
}

// Execute books the slot for the client. Missing and already-booked slots
// both yield ErrSlotUnavailable.
//
// The booking is committed before anything else happens; releasing the hold
// and notifying are best effort and cannot fail the call.
func (uc *ConfirmReservation) Execute(ctx context.Context, in domain.Intent) error {
	if err := in.Validate(); err != nil {
		return err
	}

	// --------------------------------------------------
	// 1. Availability
	// --------------------------------------------------
	s, err := uc.repo.Find(ctx, in.Key)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && s.Booked) {
		metrics.IncConfirmation("unavailable")
		return domain.ErrSlotUnavailable
	}
	if err != nil {
		return err
	}

	// --------------------------------------------------
	// 2. Commit (compare-and-swap in the store)
	// --------------------------------------------------
	client := in.Client()
	if err := uc.repo.Book(ctx, in.Key, client); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.IncConfirmation("unavailable")
		}
		return err
	}
	metrics.IncConfirmation("success")
	uc.log.Info("reservation confirmed",
		zap.String("slot", in.Key.String()),
		zap.String("service", in.Service))

	// --------------------------------------------------
	// 3. Side effects
	// --------------------------------------------------
	if err := uc.holds.Release(ctx, in.Key); err != nil {
		uc.log.Warn("release hold after confirm", zap.String("slot", in.Key.String()), zap.Error(err))
	}
	uc.notifier.NotifyConfirmed(in.Key, client)

	return nil
}
