package domain

import (
	"context"
	"time"
)

// UserRepository defines identity data access operations
type UserRepository interface {
	// Upsert returns the user for the normalized email, creating it on first
	// sight and refreshing LastLoginAt otherwise. Safe to call on every login.
	Upsert(ctx context.Context, email string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// OTPRepository defines OTP record persistence operations
type OTPRepository interface {
	// Save stores the record, replacing any prior record for the same email
	// and resetting its attempt counter.
	Save(ctx context.Context, record *OTPRecord) error
	// FindLive returns the unexpired record for the email, or ErrOTPNotFound.
	// Expired records are treated as absent.
	FindLive(ctx context.Context, email string) (*OTPRecord, error)
	// IncrementAttempts adds one to the attempt counter and returns the new
	// total. The increment must be atomic with respect to concurrent callers.
	IncrementAttempts(ctx context.Context, email string) (int, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) error
	Count(ctx context.Context) (int64, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// FindByID returns the live session, ErrSessionNotFound for unknown ids,
	// or ErrSessionExpired after lazily deleting a record past its expiry.
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	// Delete removes the session, returning ErrSessionNotFound when nothing
	// was removed.
	Delete(ctx context.Context, sessionID string) error
	DeleteAllByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) error
	Count(ctx context.Context) (int64, error)
}

// OTPService defines OTP ledger operations
type OTPService interface {
	Issue(ctx context.Context, email string) (*OTPRecord, error)
	FindLive(ctx context.Context, email string) (*OTPRecord, error)
	// Verify consumes the live record on a successful match. A false result
	// with a nil error means no live record, exhausted attempts, or a
	// mismatch; callers disambiguate through FindLive.
	Verify(ctx context.Context, email, code string) (bool, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// AuthService defines the authentication protocol
type AuthService interface {
	RequestCode(ctx context.Context, email string) (*OTPRecord, error)
	VerifyCode(ctx context.Context, email, code, clientIP, userAgent string) (*Session, error)
	ResendCode(ctx context.Context, email string) (*OTPRecord, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, email string) error
	Stats(ctx context.Context) (*StoreStats, error)
}

// Mailer defines the email transport capability
type Mailer interface {
	SendOTPEmail(ctx context.Context, email, code string) error
	SendSessionConfirmation(ctx context.Context, email string) error
}
