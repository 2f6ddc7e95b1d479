// Package session caches the logged-in user, keyed by the browser's session id.
// All reads and writes of the cached user go through Store.
package session

import (
	"context"
	"errors"

	"github.com/YarKhan02/Workshop-sub000/models"
)

// ErrNoSession is returned when nothing is cached for a session id.
var ErrNoSession = errors.New("no active session")

type Store interface {
	Get(ctx context.Context, sessionID string) (*models.User, error)
	// Set caches user under sessionID and restarts its expiry.
	Set(ctx context.Context, sessionID string, user models.User) error
	// Clear forgets sessionID. Clearing an unknown id is not an error.
	Clear(ctx context.Context, sessionID string) error
}
