package loginsession

import (
	"sync"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
)

// InMemoryLoginSessionRepo is an in-memory implementation of Repo.
// Sessions do not survive a restart, which is acceptable for a
// single-admin deployment.
type InMemoryLoginSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session // sessionID -> Session
}

// NewInMemoryLoginSessionRepo creates a new in-memory login session repository
func NewInMemoryLoginSessionRepo() *InMemoryLoginSessionRepo {
	return &InMemoryLoginSessionRepo{
		sessions: make(map[string]Session),
	}
}

// Upsert creates or updates a login session
func (r *InMemoryLoginSessionRepo) Upsert(sessionID string, session Session) error {
	if sessionID == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[InMemoryLoginSessionRepo Upsert] sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = session
	return nil
}

// Get retrieves a login session by session ID
func (r *InMemoryLoginSessionRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, errors.Wrapf(errors.ErrInvalidRequest, "[InMemoryLoginSessionRepo Get] sessionID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}

	return session, nil
}

// Delete removes a login session
func (r *InMemoryLoginSessionRepo) Delete(sessionID string) error {
	if sessionID == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[InMemoryLoginSessionRepo Delete] sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID) // Already-absent IDs are not an error

	return nil
}
