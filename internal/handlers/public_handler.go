package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/dto"
	"github.com/lumiere-studio/salon-booking/internal/httpresp"
	"github.com/lumiere-studio/salon-booking/internal/usecase/catalog"
	"github.com/lumiere-studio/salon-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	listSlots *catalog.ListSlots
	checkout  *reservation.RequestPaymentSession
	confirm   *reservation.ConfirmReservation
	log       *zap.Logger
}

func NewPublicHandler(
	listSlots *catalog.ListSlots,
	checkout *reservation.RequestPaymentSession,
	confirm *reservation.ConfirmReservation,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		listSlots: listSlots,
		checkout:  checkout,
		confirm:   confirm,
		log:       log,
	}
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *PublicHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Salon booking API is running")
}

// Calendar lists every slot as {date,time,booked}. Client details are left
// out on purpose; the full Slot is served only by /admin/reservations.
func (h *PublicHandler) Calendar(c *gin.Context) {
	slots, err := h.listSlots.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.NewCalendar(slots))
}

func (h *PublicHandler) CreateCheckout(c *gin.Context) {
	var in domain.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.log, domain.ErrInvalidInput)
		return
	}

	url, err := h.checkout.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, checkoutResponse{URL: url})
}

// Confirm is called by the frontend after the provider redirects back.
func (h *PublicHandler) Confirm(c *gin.Context) {
	var in domain.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, h.log, domain.ErrInvalidInput)
		return
	}

	if err := h.confirm.Execute(c.Request.Context(), in); err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.Success(c)
}
