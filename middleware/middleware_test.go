package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func sessionRouter(s Sessions) *gin.Engine {
	r := gin.New()
	r.GET("/me", SessionAuth(s), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":      user.ID,
			"sid":     CurrentSessionID(c),
			"hasAuth": backend.TokenFromContext(c.Request.Context()) == user.Token,
		})
	})
	return r
}

func TestSessionAuthAcceptsCookieAndBearer(t *testing.T) {
	store := session.NewMemoryStore()
	s := Sessions{Store: store, Cookie: "sid", LoginPath: "/login"}
	require.NoError(t, store.Set(context.Background(), "abc", models.User{ID: "42", Token: token(t, time.Now().Add(time.Hour))}))
	r := sessionRouter(s)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"42","sid":"abc","hasAuth":true}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthRejects(t *testing.T) {
	store := session.NewMemoryStore()
	s := Sessions{Store: store, Cookie: "sid", LoginPath: "/login"}
	r := sessionRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "unknown"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"sessionExpired"`)
}

func TestSessionAuthClearsExpiredToken(t *testing.T) {
	store := session.NewMemoryStore()
	s := Sessions{Store: store, Cookie: "sid", LoginPath: "/login"}
	require.NoError(t, store.Set(context.Background(), "abc", models.User{ID: "42", Token: token(t, time.Now().Add(-time.Minute))}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	w := httptest.NewRecorder()
	sessionRouter(s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sid=;")
	_, err := store.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("1.1.1.1"))
	assert.Equal(t, http.StatusOK, hit("2.2.2.2"))
}

func TestRateLimiterStoreDropsIdleLimiters(t *testing.T) {
	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	busy := store.getLimiter("1.1.1.1")
	require.True(t, busy.Allow())
	for i := 0; i < 100; i++ {
		store.getLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Len(t, store.limiters, 101)

	clock = clock.Add(2 * time.Minute)
	assert.Same(t, busy, store.getLimiter("1.1.1.1"), "a recently seen limiter is kept")
	assert.Len(t, store.limiters, 101, "nothing is idle long enough yet")

	clock = clock.Add(2 * time.Minute)
	store.getLimiter("1.1.1.1")
	assert.Len(t, store.limiters, 1)
	assert.Contains(t, store.limiters, "1.1.1.1")

	clock = clock.Add(30 * time.Second)
	store.getLimiter("2.2.2.2")
	assert.Len(t, store.limiters, 2, "no sweep before the interval has passed")
}

func TestClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "9.9.9.9:1234"
	assert.Equal(t, "9.9.9.9", clientIP(c))

	c.Request.Header.Set("X-Real-IP", " 8.8.8.8 ")
	assert.Equal(t, "8.8.8.8", clientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "unknown, 7.7.7.7, 10.0.0.1")
	assert.Equal(t, "7.7.7.7", clientIP(c))
}

func TestRequestLoggerSetsLoggerAndID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	entries := logs.FilterMessage("Request handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["requestID"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestServerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewServerMetrics(reg, "test")
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", MetricsHandler(reg))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/items/:id", "GET", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(w.Body.String(), "workshop_test_http_requests_total"))
}
