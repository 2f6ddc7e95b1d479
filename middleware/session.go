package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/YarKhan02/Workshop-sub000/models"
	"github.com/YarKhan02/Workshop-sub000/services/backend"
	"github.com/YarKhan02/Workshop-sub000/services/session"
	"github.com/YarKhan02/Workshop-sub000/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userKey      = "user"
	sessionIDKey = "sessionID"
)

// Sessions ties the session cache to the cookie that carries its id.
type Sessions struct {
	Store        session.Store
	Cookie       string
	LoginPath    string
	MaxAge       int
	SecureCookie bool
}

// Issue stores user under sessionID and sets the session cookie.
func (s Sessions) Issue(c *gin.Context, sessionID string, user models.User) error {
	if err := s.Store.Set(c.Request.Context(), sessionID, user); err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Cookie, sessionID, s.MaxAge, "/", "", s.SecureCookie, true)
	return nil
}

// End forgets the session and expires the cookie.
func (s Sessions) End(c *gin.Context) {
	if sid := s.sessionID(c); sid != "" {
		if err := s.Store.Clear(c.Request.Context(), sid); err != nil {
			zap.L().Warn("Failed to clear session", zap.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Cookie, "", -1, "/", "", s.SecureCookie, true)
}

// Reject is the single exit for authentication failures: the cached session is
// cleared and the client is told where to log in again.
func (s Sessions) Reject(c *gin.Context, message string) {
	s.End(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"code":     "sessionExpired",
		"redirect": s.LoginPath,
	})
}

// sessionID reads the session cookie, falling back to "Authorization: Bearer <session id>".
func (s Sessions) sessionID(c *gin.Context) string {
	if sid, err := c.Cookie(s.Cookie); err == nil && sid != "" {
		return sid
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// SessionAuth loads the cached user and attaches the backend token to the
// request context. Expired backend tokens are rejected without a backend call.
func SessionAuth(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := s.sessionID(c)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"code":     "notAuthenticated",
				"redirect": s.LoginPath,
			})
			return
		}

		user, err := s.Store.Get(c.Request.Context(), sid)
		if errors.Is(err, session.ErrNoSession) {
			s.Reject(c, "Session expired, please log in again")
			return
		}
		if err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, "Session store unavailable", err.Error())
			return
		}
		if backend.TokenExpired(user.Token) {
			s.Reject(c, "Session expired, please log in again")
			return
		}

		c.Set(sessionIDKey, sid)
		c.Set(userKey, *user)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), user.Token))
		c.Next()
	}
}

// CurrentUser returns the user SessionAuth attached to the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
