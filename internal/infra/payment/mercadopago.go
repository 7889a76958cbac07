package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

// preferenceCreator is the part of the Mercado Pago preference client we use.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago opens Checkout Pro preferences and returns their init point.
type MercadoPago struct {
	prefs preferenceCreator
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	in := req.Intent

	metadata := map[string]any{}
	for k, v := range intentMetadata(in) {
		metadata[k] = v
	}

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Description,
				Quantity:   1,
				UnitPrice:  float64(req.Amount) / 100,
				CurrencyID: strings.ToUpper(req.Currency),
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.CancelURL,
			Pending: req.CancelURL,
		},
		AutoReturn:        "approved",
		ExternalReference: in.Date + "|" + in.Time,
		Metadata:          metadata,
	}
	if in.Email != "" {
		request.Payer = &preference.PayerRequest{
			Name:    in.FirstName,
			Surname: in.LastName,
			Email:   in.Email,
		}
	}

	resp, err := m.prefs.Create(ctx, request)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}
	if resp == nil || resp.InitPoint == "" {
		return "", errors.New("mercadopago preference: empty init point")
	}
	return resp.InitPoint, nil
}

// Compile-time check
var _ domain.PaymentGateway = (*MercadoPago)(nil)
