package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTokenExpired is returned before any request is sent with an expired token.
	ErrTokenExpired = errors.New("session expired")
	// ErrUnavailable wraps transport failures reaching the backend.
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int               `json:"status"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// Substrings the backend uses in auth failures that do not always come with a 401.
var authFailureMessages = []string{
	"token not valid",
	"token is invalid or expired",
	"authentication credentials were not provided",
	"invalid token",
	"not authenticated",
	"unauthorized",
	"session expired",
}

// IsAuthError reports whether err means the user's session is no longer valid.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range authFailureMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
