package handlers

import (
	"net/http"
	"time"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/services/backend"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	errorResponder
	Gateway backend.CatalogGateway
}

func NewCatalogHandler(gateway backend.CatalogGateway, sessions middleware.Sessions) *CatalogHandler {
	return &CatalogHandler{errorResponder: errorResponder{Sessions: sessions}, Gateway: gateway}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Gateway.ListServices(c.Request.Context())
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListTimeSlots handles GET /api/services/:id/time-slots?date=YYYY-MM-DD.
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "message": "date must be YYYY-MM-DD"})
			return
		}
	}
	slots, err := h.Gateway.ListTimeSlots(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, slots)
}
