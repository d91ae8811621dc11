package domain

import (
	"errors"
	"fmt"
)

// Input errors
var (
	ErrInvalidEmail = errors.New("invalid email address")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrDeliveryFailed = errors.New("failed to deliver otp email")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// RateLimitedError is returned when an OTP is requested again before the
// resend cooldown has elapsed. RetryAfter is the number of whole seconds
// remaining, rounded up.
type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("otp recently sent, retry in %d seconds", e.RetryAfter)
}

// InvalidCodeError is returned when a submitted code does not match and the
// attempt budget is not yet exhausted. Remaining is computed after the
// failed attempt was recorded.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid otp code, %d attempts remaining", e.Remaining)
}
