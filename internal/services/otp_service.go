package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/DrNytkenstien/secureauth/domain"
)

// OTPServiceImpl implements domain.OTPService on top of an OTPRepository
type OTPServiceImpl struct {
	otpRepo domain.OTPRepository
	config  OTPConfig
}

type OTPConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		otpRepo: otpRepo,
		config:  config,
	}
}

// Issue implements domain.OTPService. Any prior record for the email is
// replaced; callers enforce the cooldown before getting here.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string) (*domain.OTPRecord, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := time.Now()
	record := &domain.OTPRecord{
		ID:          uuid.NewString(),
		Email:       email,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.config.TTL),
		Attempts:    0,
		MaxAttempts: s.config.MaxAttempts,
	}

	if err := s.otpRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store otp record: %w", err)
	}

	return record, nil
}

// FindLive implements domain.OTPService
func (s *OTPServiceImpl) FindLive(ctx context.Context, email string) (*domain.OTPRecord, error) {
	return s.otpRepo.FindLive(ctx, email)
}

// Verify implements domain.OTPService. The attempt is charged before the
// codes are compared, so a correct guess still consumes one attempt and
// racing submissions exhaust the budget on the record itself.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) (bool, error) {
	record, err := s.otpRepo.FindLive(ctx, email)
	if err != nil {
		if err == domain.ErrOTPNotFound {
			return false, nil
		}
		return false, err
	}

	if !record.Live(time.Now()) {
		if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := s.otpRepo.IncrementAttempts(ctx, email); err != nil {
		if err == domain.ErrOTPNotFound {
			return false, nil
		}
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByEmail implements domain.OTPService
func (s *OTPServiceImpl) DeleteByEmail(ctx context.Context, email string) error {
	return s.otpRepo.DeleteByEmail(ctx, email)
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
