package reservation

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

var testSettings = CheckoutSettings{Amount: 1000, Currency: "eur", FrontendURL: "https://studio.example"}

func testIntent() domain.Intent {
	return domain.Intent{
		Key:       domain.Key{Date: "2024-05-01", Time: "10:00"},
		FirstName: "Ana",
		LastName:  "B",
		Email:     "a@b.com",
		Service:   "Manicure",
	}
}

func TestRequestPaymentSessionCreatesCheckout(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{Date: in.Date, Time: in.Time}, nil)
	holds := new(mockHolds)
	holds.On("Acquire", ctx, in.Key, "a@b.com").Return(true, nil)
	gw := new(mockGateway)
	gw.On("CreateSession", ctx, mock.MatchedBy(func(req domain.CheckoutRequest) bool {
		return req.Amount == 1000 &&
			req.Currency == "eur" &&
			req.Description == "Deposit for Manicure on 2024-05-01 at 10:00" &&
			req.CancelURL == "https://studio.example/cancel" &&
			strings.HasPrefix(req.SuccessURL, "https://studio.example/success?") &&
			req.Intent == in
	})).Return("https://checkout.example/cs_1", nil)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	got, err := uc.Execute(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_1", got)
	gw.AssertExpectations(t)
	holds.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
}

func TestRequestPaymentSessionRejectsInvalidIntent(t *testing.T) {
	repo, gw, holds := new(mockRepo), new(mockGateway), new(mockHolds)
	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())

	in := testIntent()
	in.Service = ""
	_, err := uc.Execute(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestRequestPaymentSessionEmailIsOptional(t *testing.T) {
	ctx := context.Background()
	in := testIntent()
	in.Email = ""

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{Date: in.Date, Time: in.Time}, nil)
	holds := new(mockHolds)
	holds.On("Acquire", ctx, in.Key, "ana b").Return(true, nil)
	gw := new(mockGateway)
	gw.On("CreateSession", ctx, mock.Anything).Return("https://checkout.example/cs_2", nil)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)
	assert.NoError(t, err)
}

// Scenario D: no external session for an already booked slot.
func TestRequestPaymentSessionBookedSlot(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{
		Date: in.Date, Time: in.Time, Booked: true,
		Client: &models.Client{FirstName: "Eve", LastName: "C", Service: "Brows"},
	}, nil)
	gw, holds := new(mockGateway), new(mockHolds)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	holds.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPaymentSessionMissingSlot(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(nil, domain.ErrNotFound)
	gw, holds := new(mockGateway), new(mockHolds)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestRequestPaymentSessionHeldByOther(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{Date: in.Date, Time: in.Time}, nil)
	holds := new(mockHolds)
	holds.On("Acquire", ctx, in.Key, "a@b.com").Return(false, nil)
	gw := new(mockGateway)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)

	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
	gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestRequestPaymentSessionHoldStoreDown(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{Date: in.Date, Time: in.Time}, nil)
	holds := new(mockHolds)
	holds.On("Acquire", ctx, in.Key, "a@b.com").Return(false, errors.New("redis down"))
	gw := new(mockGateway)
	gw.On("CreateSession", ctx, mock.Anything).Return("https://checkout.example/cs_3", nil)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	got, err := uc.Execute(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_3", got)
}

func TestRequestPaymentSessionGatewayFailureReleasesHold(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(&models.Slot{Date: in.Date, Time: in.Time}, nil)
	holds := new(mockHolds)
	holds.On("Acquire", ctx, in.Key, "a@b.com").Return(true, nil)
	holds.On("Release", ctx, in.Key).Return(nil)
	gw := new(mockGateway)
	gw.On("CreateSession", ctx, mock.Anything).Return("", errors.New("provider timeout"))

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)

	assert.ErrorIs(t, err, domain.ErrPaymentSession)
	holds.AssertCalled(t, "Release", ctx, in.Key)
	gw.AssertNumberOfCalls(t, "CreateSession", 1)
}

func TestRequestPaymentSessionStorageFailure(t *testing.T) {
	ctx := context.Background()
	in := testIntent()

	repo := new(mockRepo)
	repo.On("Find", ctx, in.Key).Return(nil, domain.ErrStorageUnavailable)
	gw, holds := new(mockGateway), new(mockHolds)

	uc := NewRequestPaymentSession(repo, gw, holds, testSettings, zap.NewNop())
	_, err := uc.Execute(ctx, in)

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSuccessURLEncodesValues(t *testing.T) {
	in := testIntent()
	in.FirstName = "Ana María"
	in.Email = "ana+spa@b.com"
	in.Service = "Soin & Massage"

	raw := SuccessURL("https://studio.example", in)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/success", u.Path)
	assert.NotContains(t, u.RawQuery, " ")
	assert.Contains(t, u.RawQuery, "email=ana%2Bspa%40b.com")

	q := u.Query()
	assert.Equal(t, "2024-05-01", q.Get("date"))
	assert.Equal(t, "10:00", q.Get("time"))
	assert.Equal(t, "Soin & Massage", q.Get("service"))
	assert.Equal(t, "Ana María", q.Get("firstName"))
	assert.Equal(t, "B", q.Get("lastName"))
	assert.Equal(t, "ana+spa@b.com", q.Get("email"))
}
