package domain

import (
	"strings"
	"time"
)

// User represents an identity known to the system, keyed by normalized email
type User struct {
	ID          string
	Email       string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

// OTPRecord represents a pending one-time password for an email address.
// At most one live record exists per email at any time.
type OTPRecord struct {
	ID          string
	Email       string
	Code        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Attempts    int
	MaxAttempts int
}

// Live reports whether the record is still usable at the given instant.
func (r *OTPRecord) Live(now time.Time) bool {
	return r.ExpiresAt.After(now) && r.Attempts < r.MaxAttempts
}

// Session represents an authenticated session backed by an opaque token
type Session struct {
	ID        string
	UserID    string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
	ClientIP  string
	UserAgent string
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// StoreStats holds record counts for monitoring
type StoreStats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveOTPs     int64 `json:"active_otps"`
	ActiveSessions int64 `json:"active_sessions"`
}

// NormalizeEmail lowercases and trims an email address. All store keys use
// the normalized form so lookups are case and whitespace insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
