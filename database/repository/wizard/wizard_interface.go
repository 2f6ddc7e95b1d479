package wizardRepo

import (
	"context"
	"errors"

	"github.com/YarKhan02/Workshop-sub000/models"
)

// ErrNotFound is returned for unknown or expired wizard sessions.
var ErrNotFound = errors.New("wizard session not found or expired")

// WizardRepository keeps wizard sessions between requests. Every Save
// refreshes the session's expiry.
type WizardRepository interface {
	// Save writes the whole session, replacing any previous copy.
	Save(ctx context.Context, session *models.WizardSession) error
	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
