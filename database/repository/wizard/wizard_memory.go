package wizardRepo

import (
	"context"
	"sync"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"
)

type memoryEntry struct {
	session   models.WizardSession
	expiresAt time.Time
}

// MemoryWizardRepo keeps sessions in process. Used for tests and single-node dev runs.
type MemoryWizardRepo struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

func NewMemoryWizardRepo(ttl time.Duration) *MemoryWizardRepo {
	return &MemoryWizardRepo{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (r *MemoryWizardRepo) Save(_ context.Context, session *models.WizardSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = memoryEntry{session: *session, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryWizardRepo) Get(_ context.Context, sessionID string) (*models.WizardSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if !r.now().Before(entry.expiresAt) {
		delete(r.sessions, sessionID)
		return nil, ErrNotFound
	}
	session := entry.session
	return &session, nil
}

func (r *MemoryWizardRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
