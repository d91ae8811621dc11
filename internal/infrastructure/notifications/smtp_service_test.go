package notifications

import (
	"context"
	"testing"
)

func TestSMTPService_LogOnlyModeWithoutCredentials(t *testing.T) {
	svc := NewSMTPService("smtp.example.com", 587, "", "", "noreply@example.com")

	if err := svc.SendOTPEmail(context.Background(), "user@example.com", "123456"); err != nil {
		t.Errorf("expected log-only send to succeed, got %v", err)
	}
	if err := svc.SendSessionConfirmation(context.Background(), "user@example.com"); err != nil {
		t.Errorf("expected log-only send to succeed, got %v", err)
	}
}

func TestSMTPService_RespectsCancelledContext(t *testing.T) {
	svc := NewSMTPService("smtp.example.com", 587, "user", "pass", "noreply@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.SendOTPEmail(ctx, "user@example.com", "123456"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
