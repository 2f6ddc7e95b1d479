package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()
	t.Cleanup(func() { Logger = nil })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requestID", "req-1")
		c.Next()
	})
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Equal(t, "req-1", body.RequestID)
}

func TestJSONError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()
	t.Cleanup(func() { Logger = nil })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	JSONError(c, http.StatusServiceUnavailable, "Session store unavailable", "dial tcp")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t, `{"message":"Session store unavailable","details":"dial tcp"}`, w.Body.String())
}
