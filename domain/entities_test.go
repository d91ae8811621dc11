package domain

import (
	"testing"
	"time"
)

func TestOTPRecordLive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		record OTPRecord
		want   bool
	}{
		{
			name: "unexpired with attempts remaining",
			record: OTPRecord{
				ExpiresAt:   now.Add(5 * time.Minute),
				Attempts:    2,
				MaxAttempts: 5,
			},
			want: true,
		},
		{
			name: "expired",
			record: OTPRecord{
				ExpiresAt:   now.Add(-time.Second),
				Attempts:    0,
				MaxAttempts: 5,
			},
			want: false,
		},
		{
			name: "expires exactly now",
			record: OTPRecord{
				ExpiresAt:   now,
				Attempts:    0,
				MaxAttempts: 5,
			},
			want: false,
		},
		{
			name: "attempts exhausted",
			record: OTPRecord{
				ExpiresAt:   now.Add(5 * time.Minute),
				Attempts:    5,
				MaxAttempts: 5,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Live(now); got != tt.want {
				t.Errorf("Live() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{"live", Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"past expiry", Session{ExpiresAt: now.Add(-time.Minute)}, true},
		{"expires exactly now", Session{ExpiresAt: now}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Test.com", "user@test.com"},
		{"  user@test.com  ", "user@test.com"},
		{"\tA@B.COM\n", "a@b.com"},
		{"already@normal.io", "already@normal.io"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
