package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MemoryUserRepository implements domain.UserRepository with an in-process map
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by normalized email
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*domain.User)}
}

// Upsert implements domain.UserRepository
func (r *MemoryUserRepository) Upsert(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if user, ok := r.users[email]; ok {
		user.LastLoginAt = now
		copied := *user
		return &copied, nil
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	r.users[email] = user

	copied := *user
	return &copied, nil
}

// FindByEmail implements domain.UserRepository
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// Count implements domain.UserRepository
func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

var _ domain.UserRepository = (*MemoryUserRepository)(nil)
