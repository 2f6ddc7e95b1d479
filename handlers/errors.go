package handlers

import (
	"errors"
	"net/http"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorResponder turns service and gateway errors into HTTP responses. Auth
// failures all go through Sessions.Reject.
type errorResponder struct {
	Sessions middleware.Sessions
}

func (r errorResponder) respondError(c *gin.Context, err error, extra gin.H) {
	logger := getLogger(c)
	status, body := classify(err)
	if status == http.StatusUnauthorized {
		logger.Info("Backend rejected session", zap.Error(err))
		r.Sessions.Reject(c, "Session expired, please log in again")
		return
	}
	for k, v := range extra {
		body[k] = v
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, gin.H) {
	if backend.IsAuthError(err) {
		return http.StatusUnauthorized, nil
	}

	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		return http.StatusUnprocessableEntity, gin.H{
			"error":   "step incomplete",
			"message": stepErr.Error(),
			"code":    wizard.ErrStepIncomplete.Code,
			"step":    stepErr.Step,
			"missing": stepErr.Missing,
		}
	}

	var wizErr *wizard.WizardError
	if errors.As(err, &wizErr) {
		return wizardStatus(wizErr), gin.H{"error": wizErr.Message, "message": err.Error(), "code": wizErr.Code}
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": apiErr.Message, "code": apiErr.Code}
		if len(apiErr.Fields) > 0 {
			body["fields"] = apiErr.Fields
		}
		switch apiErr.Status {
		case http.StatusNotFound:
			return http.StatusNotFound, body
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return http.StatusUnprocessableEntity, body
		case http.StatusConflict:
			return http.StatusConflict, body
		}
		return http.StatusBadGateway, body
	}

	if errors.Is(err, backend.ErrUnavailable) {
		return http.StatusBadGateway, gin.H{"error": "booking service unavailable, please try again", "message": err.Error()}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}

func wizardStatus(err *wizard.WizardError) int {
	switch err {
	case wizard.ErrSessionNotFound:
		return http.StatusNotFound
	case wizard.ErrWrongStep, wizard.ErrSubmissionInFlight, wizard.ErrSlotUnavailable:
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}

func badRequest(c *gin.Context, err error) {
	getLogger(c).Warn("Invalid request body", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
}
