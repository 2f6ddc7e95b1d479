package handlers

import (
	"errors"
	"net/http"

	"github.com/YarKhan02/Workshop-sub000/middleware"
	"github.com/YarKhan02/Workshop-sub000/services/backend"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	errorResponder
	Gateway backend.AuthGateway
}

func NewAuthHandler(gateway backend.AuthGateway, sessions middleware.Sessions) *AuthHandler {
	return &AuthHandler{errorResponder: errorResponder{Sessions: sessions}, Gateway: gateway}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.Gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
			logger.Info("Login refused", zap.String("email", req.Email))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials", "message": apiErr.Message})
			return
		}
		h.respondError(c, err, nil)
		return
	}

	sessionID := uuid.New().String()
	if err := h.Sessions.Issue(c, sessionID, *user); err != nil {
		logger.Error("Failed to store session", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not start session"})
		return
	}
	logger.Info("User logged in", zap.String("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{"user": user.Public(), "sessionId": sessionID})
}

// Logout handles POST /api/auth/logout. It succeeds whether or not a session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.End(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
