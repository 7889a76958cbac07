package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

// Stripe opens Stripe Checkout sessions. It holds its own key and backend
// rather than using the package-level stripe.Key.
type Stripe struct {
	sessions *session.Client
}

func NewStripe(secretKey string) *Stripe {
	return NewStripeWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func NewStripeWithBackend(secretKey string, backend stripe.Backend) *Stripe {
	return &Stripe{
		sessions: &session.Client{B: backend, Key: secretKey},
	}
}

func (s *Stripe) CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	in := req.Intent

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		// Stripe substitutes the placeholder on redirect.
		SuccessURL: stripe.String(req.SuccessURL + "&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if in.Email != "" {
		params.CustomerEmail = stripe.String(in.Email)
	}
	for k, v := range intentMetadata(in) {
		params.AddMetadata(k, v)
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	sess, err := s.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout: %w", err)
	}
	if sess.URL == "" {
		return "", errors.New("stripe checkout: empty session url")
	}
	return sess.URL, nil
}

func intentMetadata(in domain.Intent) map[string]string {
	return map[string]string{
		"date":      in.Date,
		"time":      in.Time,
		"service":   in.Service,
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
	}
}

// Compile-time check
var _ domain.PaymentGateway = (*Stripe)(nil)
