package mocks

import (
	"context"
	"sync"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MockMailer implements domain.Mailer for testing. Sent messages are
// recorded so tests can assert on dispatch without a transport.
type MockMailer struct {
	SendOTPEmailFunc            func(ctx context.Context, email, code string) error
	SendSessionConfirmationFunc func(ctx context.Context, email string) error

	mu            sync.Mutex
	SentOTPs      []SentOTP
	Confirmations []string
}

// SentOTP records one SendOTPEmail call
type SentOTP struct {
	Email string
	Code  string
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SendOTPEmail dispatches an OTP email
func (m *MockMailer) SendOTPEmail(ctx context.Context, email, code string) error {
	m.mu.Lock()
	m.SentOTPs = append(m.SentOTPs, SentOTP{Email: email, Code: code})
	m.mu.Unlock()

	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(ctx, email, code)
	}
	// Default behavior: success
	return nil
}

// SendSessionConfirmation dispatches a confirmation email
func (m *MockMailer) SendSessionConfirmation(ctx context.Context, email string) error {
	m.mu.Lock()
	m.Confirmations = append(m.Confirmations, email)
	m.mu.Unlock()

	if m.SendSessionConfirmationFunc != nil {
		return m.SendSessionConfirmationFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ConfirmationCount returns how many confirmation emails were attempted
func (m *MockMailer) ConfirmationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Confirmations)
}

// LastOTP returns the most recently sent OTP, if any
func (m *MockMailer) LastOTP() (SentOTP, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentOTPs) == 0 {
		return SentOTP{}, false
	}
	return m.SentOTPs[len(m.SentOTPs)-1], true
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
