package handlers

import (
	"net/http"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	errorResponder
	Gateway backend.VehicleGateway
}

func NewVehicleHandler(gateway backend.VehicleGateway, sessions middleware.Sessions) *VehicleHandler {
	return &VehicleHandler{errorResponder: errorResponder{Sessions: sessions}, Gateway: gateway}
}

// ListVehicles handles GET /api/vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	vehicles, err := h.Gateway.ListSaved(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// CreateVehicle handles POST /api/vehicles. Missing fields never reach the backend.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		badRequest(c, err)
		return
	}
	if missing := vehicle.Missing(); len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "vehicle details incomplete", "missing": missing})
		return
	}
	vehicle.ID = ""

	created, err := h.Gateway.Create(c.Request.Context(), vehicle)
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, created)
}
