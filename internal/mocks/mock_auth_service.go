package mocks

import (
	"context"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RequestCodeFunc func(ctx context.Context, email string) (*domain.OTPRecord, error)
	VerifyCodeFunc  func(ctx context.Context, email, code, clientIP, userAgent string) (*domain.Session, error)
	ResendCodeFunc  func(ctx context.Context, email string) (*domain.OTPRecord, error)
	GetSessionFunc  func(ctx context.Context, sessionID string) (*domain.Session, error)
	LogoutFunc      func(ctx context.Context, sessionID string) error
	LogoutAllFunc   func(ctx context.Context, email string) error
	StatsFunc       func(ctx context.Context) (*domain.StoreStats, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// RequestCode issues an OTP
func (m *MockAuthService) RequestCode(ctx context.Context, email string) (*domain.OTPRecord, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, email)
	}
	return &domain.OTPRecord{Email: email}, nil
}

// VerifyCode verifies an OTP and creates a session
func (m *MockAuthService) VerifyCode(ctx context.Context, email, code, clientIP, userAgent string) (*domain.Session, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, email, code, clientIP, userAgent)
	}
	return &domain.Session{Email: email}, nil
}

// ResendCode reissues an OTP
func (m *MockAuthService) ResendCode(ctx context.Context, email string) (*domain.OTPRecord, error) {
	if m.ResendCodeFunc != nil {
		return m.ResendCodeFunc(ctx, email)
	}
	return &domain.OTPRecord{Email: email}, nil
}

// GetSession returns a session by ID
func (m *MockAuthService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Logout deletes a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// LogoutAll deletes every session for an email
func (m *MockAuthService) LogoutAll(ctx context.Context, email string) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Stats returns store counts
func (m *MockAuthService) Stats(ctx context.Context) (*domain.StoreStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.StoreStats{}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
