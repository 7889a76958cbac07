package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/httpresp"
	"github.com/lumiere-studio/salon-booking/internal/usecase/catalog"
)

// AdminHandler serves the slot catalog routes. Every route sits behind the
// admin gate.
type AdminHandler struct {
	listSlots  *catalog.ListSlots
	addSlot    *catalog.AddSlot
	deleteSlot *catalog.DeleteSlot
	export     *catalog.ExportSlots
	log        *zap.Logger
}

func NewAdminHandler(
	listSlots *catalog.ListSlots,
	addSlot *catalog.AddSlot,
	deleteSlot *catalog.DeleteSlot,
	export *catalog.ExportSlots,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		listSlots:  listSlots,
		addSlot:    addSlot,
		deleteSlot: deleteSlot,
		export:     export,
		log:        log,
	}
}

type exportResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

// Reservations returns full slots, client details included.
func (h *AdminHandler) Reservations(c *gin.Context) {
	slots, err := h.listSlots.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, slots)
}

func (h *AdminHandler) AddSlot(c *gin.Context) {
	var key domain.Key
	if err := c.ShouldBindJSON(&key); err != nil {
		writeError(c, h.log, domain.ErrInvalidInput)
		return
	}

	if err := h.addSlot.Execute(c.Request.Context(), key); err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.Success(c)
}

func (h *AdminHandler) DeleteSlot(c *gin.Context) {
	var key domain.Key
	if err := c.ShouldBindJSON(&key); err != nil {
		writeError(c, h.log, domain.ErrInvalidInput)
		return
	}

	if err := h.deleteSlot.Execute(c.Request.Context(), key); err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.Success(c)
}

func (h *AdminHandler) Export(c *gin.Context) {
	key, err := h.export.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, exportResponse{Success: true, Key: key})
}
