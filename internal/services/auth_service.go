package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	otpSvc      domain.OTPService
	mailer      domain.Mailer
	config      AuthConfig
}

type AuthConfig struct {
	ResendCooldown time.Duration
	SessionTTL     time.Duration
	// PreProvisionUsers creates the user record at OTP-request time, before
	// verification succeeds. Matches the reference behavior when true.
	PreProvisionUsers bool
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	sessionRepo domain.SessionRepository,
	otpSvc domain.OTPService,
	mailer domain.Mailer,
	config AuthConfig,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		otpSvc:      otpSvc,
		mailer:      mailer,
		config:      config,
	}
}

// RequestCode implements domain.AuthService
func (s *AuthServiceImpl) RequestCode(ctx context.Context, email string) (*domain.OTPRecord, error) {
	normalized := domain.NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.otpSvc.FindLive(ctx, normalized)
	if err != nil && err != domain.ErrOTPNotFound {
		return nil, fmt.Errorf("failed to check existing otp: %w", err)
	}
	if existing != nil {
		elapsed := time.Since(existing.CreatedAt)
		if elapsed < s.config.ResendCooldown {
			return nil, &domain.RateLimitedError{
				RetryAfter: ceilSeconds(s.config.ResendCooldown - elapsed),
			}
		}
		// Past cooldown: supersede the old record
		if err := s.otpSvc.DeleteByEmail(ctx, normalized); err != nil {
			return nil, fmt.Errorf("failed to supersede otp: %w", err)
		}
	}

	record, err := s.otpSvc.Issue(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// The record stays persisted on delivery failure so the caller can retry
	// through resend instead of waiting out the cooldown blind.
	if err := s.mailer.SendOTPEmail(ctx, normalized, record.Code); err != nil {
		log.Printf("OTP_DELIVERY_FAILED: email=%s error=%v", normalized, err)
		return nil, domain.ErrDeliveryFailed
	}

	if s.config.PreProvisionUsers {
		if _, err := s.userRepo.Upsert(ctx, normalized); err != nil {
			return nil, fmt.Errorf("failed to upsert user: %w", err)
		}
	}

	return record, nil
}

// VerifyCode implements domain.AuthService
func (s *AuthServiceImpl) VerifyCode(ctx context.Context, email, code, clientIP, userAgent string) (*domain.Session, error) {
	normalized := domain.NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, domain.ErrInvalidEmail
	}

	ok, err := s.otpSvc.Verify(ctx, normalized, code)
	if err != nil {
		return nil, fmt.Errorf("failed to verify otp: %w", err)
	}

	if !ok {
		record, err := s.otpSvc.FindLive(ctx, normalized)
		if err != nil {
			if err == domain.ErrOTPNotFound {
				return nil, domain.ErrOTPExpired
			}
			return nil, err
		}
		if record.Attempts >= record.MaxAttempts {
			if err := s.otpSvc.DeleteByEmail(ctx, normalized); err != nil {
				return nil, err
			}
			return nil, domain.ErrOTPMaxAttempts
		}
		return nil, &domain.InvalidCodeError{Remaining: record.MaxAttempts - record.Attempts}
	}

	user, err := s.userRepo.Upsert(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:        token,
		UserID:    user.ID,
		Email:     normalized,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.SessionTTL),
		ClientIP:  clientIP,
		UserAgent: userAgent,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Best-effort confirmation, never affects the returned result
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendSessionConfirmation(ctx, normalized); err != nil {
			log.Printf("CONFIRMATION_EMAIL_FAILED: email=%s error=%v", normalized, err)
		}
	}()

	return session, nil
}

// ResendCode implements domain.AuthService. Unlike RequestCode it bypasses
// the cooldown: any existing record is dropped and a fresh one issued.
func (s *AuthServiceImpl) ResendCode(ctx context.Context, email string) (*domain.OTPRecord, error) {
	normalized := domain.NormalizeEmail(email)
	if !emailPattern.MatchString(normalized) {
		return nil, domain.ErrInvalidEmail
	}

	if err := s.otpSvc.DeleteByEmail(ctx, normalized); err != nil {
		return nil, fmt.Errorf("failed to delete otp: %w", err)
	}

	record, err := s.otpSvc.Issue(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendOTPEmail(ctx, normalized, record.Code); err != nil {
		log.Printf("OTP_DELIVERY_FAILED: email=%s error=%v", normalized, err)
		return nil, domain.ErrDeliveryFailed
	}

	return record, nil
}

// GetSession implements domain.AuthService
func (s *AuthServiceImpl) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessionRepo.FindByID(ctx, sessionID)
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// LogoutAll implements domain.AuthService
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, email string) error {
	return s.sessionRepo.DeleteAllByEmail(ctx, domain.NormalizeEmail(email))
}

// Stats implements domain.AuthService
func (s *AuthServiceImpl) Stats(ctx context.Context) (*domain.StoreStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	otps, err := s.otpRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.StoreStats{
		TotalUsers:     users,
		ActiveOTPs:     otps,
		ActiveSessions: sessions,
	}, nil
}

// newSessionToken generates an opaque 256-bit session token
func newSessionToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
