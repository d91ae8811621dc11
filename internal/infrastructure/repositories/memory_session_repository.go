package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MemorySessionRepository implements domain.SessionRepository with an
// in-process map. Reads past expiry lazily delete the record so no caller
// observes an expired session as valid.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session // keyed by session id
}

// NewMemorySessionRepository creates an empty in-memory session repository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*domain.Session)}
}

// Create implements domain.SessionRepository
func (r *MemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

// FindByID implements domain.SessionRepository
func (r *MemorySessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if session.Expired(time.Now()) {
		delete(r.sessions, sessionID)
		return nil, domain.ErrSessionExpired
	}

	copied := *session
	return &copied, nil
}

// Delete implements domain.SessionRepository
func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}

	delete(r.sessions, sessionID)
	return nil
}

// DeleteAllByEmail implements domain.SessionRepository
func (r *MemorySessionRepository) DeleteAllByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.Email == email {
			delete(r.sessions, id)
		}
	}
	return nil
}

// DeleteExpired implements domain.SessionRepository
func (r *MemorySessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}

// Count implements domain.SessionRepository
func (r *MemorySessionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.sessions)), nil
}

var _ domain.SessionRepository = (*MemorySessionRepository)(nil)
