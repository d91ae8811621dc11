package mocks

import (
	"context"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing
type MockOTPRepository struct {
	SaveFunc              func(ctx context.Context, record *domain.OTPRecord) error
	FindLiveFunc          func(ctx context.Context, email string) (*domain.OTPRecord, error)
	IncrementAttemptsFunc func(ctx context.Context, email string) (int, error)
	DeleteByEmailFunc     func(ctx context.Context, email string) error
	DeleteExpiredFunc     func(ctx context.Context, now time.Time) error
	CountFunc             func(ctx context.Context) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Save stores an OTP record
func (m *MockOTPRepository) Save(ctx context.Context, record *domain.OTPRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, record)
	}
	// Default behavior: success
	return nil
}

// FindLive returns the live record for an email
func (m *MockOTPRepository) FindLive(ctx context.Context, email string) (*domain.OTPRecord, error) {
	if m.FindLiveFunc != nil {
		return m.FindLiveFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrOTPNotFound
}

// IncrementAttempts adds one verification attempt
func (m *MockOTPRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, email)
	}
	return 1, nil
}

// DeleteByEmail removes all records for an email
func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// DeleteExpired removes expired records
func (m *MockOTPRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	// Default behavior: success
	return nil
}

// Count returns the number of records
func (m *MockOTPRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
