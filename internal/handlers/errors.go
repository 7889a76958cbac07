package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/httperr"
	"github.com/lumiere-studio/salon-booking/internal/usecase/catalog"
)

var businessMessages = map[error]string{
	domain.ErrInvalidInput:    "Missing required fields",
	domain.ErrSlotUnavailable: "Slot is not available",
	domain.ErrDuplicateKey:    "Slot already exists",
}

// writeError maps use-case errors onto the API's error bodies. Downstream
// failures are logged in full and answered with a generic message.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	for sentinel, msg := range businessMessages {
		if errors.Is(err, sentinel) {
			httperr.BadRequest(c, httperr.CodeOf(sentinel), msg)
			return
		}
	}

	switch {
	case errors.Is(err, catalog.ErrBackupDisabled):
		httperr.Unavailable(c, "backup_disabled", "Backup is not configured")
		return
	case errors.Is(err, domain.ErrPaymentSession):
		log.Error("payment session failed", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, "payment_session_error", "Could not start payment, please try again")
		return
	}

	log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	httperr.Write(c, http.StatusInternalServerError, "storage_unavailable", "Something went wrong, please try again")
}
