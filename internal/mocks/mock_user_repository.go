package mocks

import (
	"context"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	UpsertFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CountFunc       func(ctx context.Context) (int64, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Upsert creates or refreshes a user
func (m *MockUserRepository) Upsert(ctx context.Context, email string) (*domain.User, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, email)
	}
	// Default behavior: fresh user
	return &domain.User{ID: "user-1", Email: email}, nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Count returns the number of users
func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
