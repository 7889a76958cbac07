package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/metrics"
)

// ======================================================
// SETTINGS
// ======================================================

type CheckoutSettings struct {
	Amount      int64 // minor units
	Currency    string
	FrontendURL string
}

// ======================================================
// USE CASE
// ======================================================

type RequestPaymentSession struct {
	repo     domain.Repository
	gateway  domain.PaymentGateway
	holds    domain.HoldStore
	settings CheckoutSettings
	log      *zap.Logger
}

func NewRequestPaymentSession(
	repo domain.Repository,
	gateway domain.PaymentGateway,
	holds domain.HoldStore,
	settings CheckoutSettings,
	log *zap.Logger,
) *RequestPaymentSession {
	return &RequestPaymentSession{
		repo:     repo,
		gateway:  gateway,
		holds:    holds,
		settings: settings,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute checks the slot is still free, takes a payment hold and returns
// the provider's checkout URL.
func (uc *RequestPaymentSession) Execute(ctx context.Context, in domain.Intent) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	s, err := uc.repo.Find(ctx, in.Key)
	if errors.Is(err, domain.ErrNotFound) {
		metrics.IncCheckout("unavailable")
		return "", domain.ErrSlotUnavailable
	}
	if err != nil {
		return "", err
	}
	if s.Booked {
		metrics.IncCheckout("unavailable")
		return "", domain.ErrSlotUnavailable
	}

	held, err := uc.holds.Acquire(ctx, in.Key, in.Owner())
	if err != nil {
		// Holds narrow the race window; they are not the source of truth.
		uc.log.Warn("payment hold unavailable, continuing without it",
			zap.String("slot", in.Key.String()), zap.Error(err))
	} else if !held {
		metrics.IncCheckout("held")
		return "", domain.ErrSlotUnavailable
	}

	redirect, err := uc.gateway.CreateSession(ctx, uc.checkoutRequest(in))
	if err != nil {
		if held {
			if rerr := uc.holds.Release(ctx, in.Key); rerr != nil {
				uc.log.Warn("release hold after failed checkout", zap.String("slot", in.Key.String()), zap.Error(rerr))
			}
		}
		metrics.IncCheckout("error")
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentSession, err)
	}

	metrics.IncCheckout("created")
	uc.log.Info("checkout session created",
		zap.String("slot", in.Key.String()),
		zap.String("service", in.Service))
	return redirect, nil
}

func (uc *RequestPaymentSession) checkoutRequest(in domain.Intent) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Intent:      in,
		Amount:      uc.settings.Amount,
		Currency:    uc.settings.Currency,
		Description: Description(in),
		SuccessURL:  SuccessURL(uc.settings.FrontendURL, in),
		CancelURL:   uc.settings.FrontendURL + "/cancel",
	}
}

// Description is the line shown on the provider's checkout page.
func Description(in domain.Intent) string {
	return fmt.Sprintf("Deposit for %s on %s at %s", in.Service, in.Date, in.Time)
}

// SuccessURL embeds the intent so the front end can call /confirm after
// payment. Values are percent-encoded.
func SuccessURL(frontend string, in domain.Intent) string {
	q := url.Values{}
	q.Set("date", in.Date)
	q.Set("time", in.Time)
	q.Set("service", in.Service)
	q.Set("firstName", in.FirstName)
	q.Set("lastName", in.LastName)
	q.Set("email", in.Email)
	return frontend + "/success?" + q.Encode()
}
