package slot

import (
	"errors"

	"github.com/lumiere-studio/salon-booking/internal/httperr"
)

// ===============================
// Business errors (4xx)
// ===============================

var (
	ErrInvalidInput    = httperr.ErrBusiness("invalid_input")
	ErrSlotUnavailable = httperr.ErrBusiness("slot_unavailable")
	ErrDuplicateKey    = httperr.ErrBusiness("duplicate_key")
)

// ===============================
// Downstream failures (5xx)
// ===============================

var (
	ErrNotFound           = errors.New("slot not found")
	ErrPaymentSession     = errors.New("payment session error")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
