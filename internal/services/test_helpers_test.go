package services

import (
	"context"
	"testing"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
	"github.com/DrNytkenstien/secureauth/internal/infrastructure/repositories"
	"github.com/DrNytkenstien/secureauth/internal/mocks"
)

// testFixture bundles an auth service with its in-memory stores and mail
// recorder so tests can drive the full protocol and inspect state.
type testFixture struct {
	userRepo    *repositories.MemoryUserRepository
	otpRepo     *repositories.MemoryOTPRepository
	sessionRepo *repositories.MemorySessionRepository
	mailer      *mocks.MockMailer
	otpSvc      *OTPServiceImpl
	authSvc     *AuthServiceImpl
}

func defaultAuthConfig() AuthConfig {
	return AuthConfig{
		ResendCooldown:    60 * time.Second,
		SessionTTL:        24 * time.Hour,
		PreProvisionUsers: true,
	}
}

func defaultOTPConfig() OTPConfig {
	return OTPConfig{
		Length:      6,
		TTL:         10 * time.Minute,
		MaxAttempts: 5,
	}
}

func newTestFixture(t *testing.T, otpCfg OTPConfig, authCfg AuthConfig) *testFixture {
	t.Helper()

	f := &testFixture{
		userRepo:    repositories.NewMemoryUserRepository(),
		otpRepo:     repositories.NewMemoryOTPRepository(),
		sessionRepo: repositories.NewMemorySessionRepository(),
		mailer:      mocks.NewMockMailer(),
	}
	f.otpSvc = NewOTPService(f.otpRepo, otpCfg)
	f.authSvc = NewAuthService(f.userRepo, f.otpRepo, f.sessionRepo, f.otpSvc, f.mailer, authCfg)
	return f
}

// backdateOTP rewrites the live record for email with a CreatedAt shifted
// into the past, so cooldown behavior can be tested without sleeping.
func (f *testFixture) backdateOTP(t *testing.T, email string, age time.Duration) {
	t.Helper()

	record, err := f.otpRepo.FindLive(context.Background(), email)
	if err != nil {
		t.Fatalf("no live otp record for %s: %v", email, err)
	}
	record.CreatedAt = record.CreatedAt.Add(-age)
	if err := f.otpRepo.Save(context.Background(), record); err != nil {
		t.Fatalf("failed to backdate otp record: %v", err)
	}
}

// liveCode returns the code of the live record for email.
func (f *testFixture) liveCode(t *testing.T, email string) string {
	t.Helper()

	record, err := f.otpRepo.FindLive(context.Background(), email)
	if err != nil {
		t.Fatalf("no live otp record for %s: %v", email, err)
	}
	return record.Code
}

// wrongCode returns a 6-digit code guaranteed not to match the live record.
func (f *testFixture) wrongCode(t *testing.T, email string) string {
	t.Helper()

	if f.liveCode(t, email) == "000000" {
		return "111111"
	}
	return "000000"
}

// seedSession stores a session directly, bypassing the orchestrator.
func (f *testFixture) seedSession(t *testing.T, session *domain.Session) {
	t.Helper()

	if err := f.sessionRepo.Create(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}
