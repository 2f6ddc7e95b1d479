package handlers

import (
	"net/http"
	"strings"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WizardHandler struct {
	errorResponder
	Service          wizard.WizardService
	ConfirmationPath string
}

func NewWizardHandler(svc wizard.WizardService, sessions middleware.Sessions, confirmationPath string) *WizardHandler {
	return &WizardHandler{
		errorResponder:   errorResponder{Sessions: sessions},
		Service:          svc,
		ConfirmationPath: strings.TrimRight(confirmationPath, "/"),
	}
}

// wizardView is what the client renders a wizard from.
type wizardView struct {
	SessionID   string              `json:"sessionId"`
	CurrentStep models.Step         `json:"current_step"`
	StepName    string              `json:"step_name"`
	Draft       models.BookingDraft `json:"draft"`
	CanAdvance  bool                `json:"can_advance"`
	Missing     []string            `json:"missing"`
	Submittable bool                `json:"submittable"`
}

func newWizardView(session *models.WizardSession) wizardView {
	state := session.State
	missing := wizard.MissingFor(state.CurrentStep, state.Draft)
	if missing == nil {
		missing = []string{}
	}
	return wizardView{
		SessionID:   session.SessionID,
		CurrentStep: state.CurrentStep,
		StepName:    state.CurrentStep.String(),
		Draft:       state.Draft,
		CanAdvance:  len(missing) == 0,
		Missing:     missing,
		Submittable: state.Draft.Submittable(),
	}
}

func currentUserID(c *gin.Context) string {
	user, _ := middleware.CurrentUser(c)
	return user.ID
}

// respond writes the wizard on success. On failure the stored wizard, when
// known, rides along with the error so the client can keep rendering it.
func (h *WizardHandler) respond(c *gin.Context, status int, session *models.WizardSession, err error) {
	if err != nil {
		var extra gin.H
		if session != nil {
			extra = gin.H{"wizard": newWizardView(session)}
		}
		h.respondError(c, err, extra)
		return
	}
	c.JSON(status, newWizardView(session))
}

// Start handles POST /api/booking/wizard.
func (h *WizardHandler) Start(c *gin.Context) {
	session, err := h.Service.Start(c.Request.Context(), currentUserID(c))
	h.respond(c, http.StatusCreated, session, err)
}

// Get handles GET /api/booking/wizard/:sessionID.
func (h *WizardHandler) Get(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.respond(c, http.StatusOK, session, err)
}

// SelectService handles PUT /api/booking/wizard/:sessionID/service.
func (h *WizardHandler) SelectService(c *gin.Context) {
	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.Service.SelectService(c.Request.Context(), currentUserID(c), c.Param("sessionID"), req.ServiceID)
	h.respond(c, http.StatusOK, session, err)
}

// SetVehicle handles PUT /api/booking/wizard/:sessionID/vehicle with either
// {"vehicleId"} for a saved vehicle or the vehicle fields.
func (h *WizardHandler) SetVehicle(c *gin.Context) {
	var req struct {
		VehicleID string `json:"vehicleId"`
		models.Vehicle
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	input := wizard.VehicleInput{SavedID: req.VehicleID, Fields: req.Vehicle}
	session, err := h.Service.SetVehicle(c.Request.Context(), currentUserID(c), c.Param("sessionID"), input)
	h.respond(c, http.StatusOK, session, err)
}

// SelectTimeSlot handles PUT /api/booking/wizard/:sessionID/time-slot.
func (h *WizardHandler) SelectTimeSlot(c *gin.Context) {
	var req struct {
		TimeSlotID string `json:"timeSlotId" binding:"required"`
		Date       string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.Service.SelectTimeSlot(c.Request.Context(), currentUserID(c), c.Param("sessionID"), req.TimeSlotID, req.Date)
	h.respond(c, http.StatusOK, session, err)
}

// SetNotes handles PUT /api/booking/wizard/:sessionID/notes. An empty string clears the notes.
func (h *WizardHandler) SetNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := h.Service.SetNotes(c.Request.Context(), currentUserID(c), c.Param("sessionID"), req.Notes)
	h.respond(c, http.StatusOK, session, err)
}

// Advance handles POST /api/booking/wizard/:sessionID/advance.
func (h *WizardHandler) Advance(c *gin.Context) {
	session, err := h.Service.Advance(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.respond(c, http.StatusOK, session, err)
}

// Retreat handles POST /api/booking/wizard/:sessionID/retreat.
func (h *WizardHandler) Retreat(c *gin.Context) {
	session, err := h.Service.Retreat(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.respond(c, http.StatusOK, session, err)
}

// Reset handles POST /api/booking/wizard/:sessionID/reset.
func (h *WizardHandler) Reset(c *gin.Context) {
	session, err := h.Service.Reset(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.respond(c, http.StatusOK, session, err)
}

// Submit handles POST /api/booking/wizard/:sessionID/submit.
func (h *WizardHandler) Submit(c *gin.Context) {
	booking, session, err := h.Service.Submit(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	if err != nil {
		h.respond(c, 0, session, err)
		return
	}
	getLogger(c).Info("Booking created", zap.String("bookingID", booking.ID))
	c.JSON(http.StatusCreated, models.BookingConfirmation{
		Booking:  *booking,
		Redirect: h.ConfirmationPath + "/" + booking.ID,
	})
}

// Cancel handles DELETE /api/booking/wizard/:sessionID.
func (h *WizardHandler) Cancel(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), currentUserID(c), c.Param("sessionID")); err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}
