package notifications

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/DrNytkenstien/secureauth/domain"
)

// SMTPServiceImpl implements domain.Mailer over plain SMTP
type SMTPServiceImpl struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPService creates a new SMTP mailer. When username or password are
// empty the mailer runs in log-only mode, printing messages instead of
// sending them.
func NewSMTPService(host string, port int, username, password, from string) *SMTPServiceImpl {
	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPServiceImpl{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// SendOTPEmail implements domain.Mailer
func (s *SMTPServiceImpl) SendOTPEmail(ctx context.Context, email, code string) error {
	subject := "Your SecureAuth verification code"
	body := fmt.Sprintf(
		"Your SecureAuth OTP: %s\r\n\r\nValid for 10 minutes. Do not share this code with anyone.\r\nIf you didn't request this, please ignore this email.\r\n",
		code,
	)
	return s.send(ctx, email, subject, body)
}

// SendSessionConfirmation implements domain.Mailer
func (s *SMTPServiceImpl) SendSessionConfirmation(ctx context.Context, email string) error {
	subject := "Session created - SecureAuth"
	body := "Your session has been created successfully. You're now authenticated.\r\n\r\nIf you did not create this session, please contact us immediately.\r\n"
	return s.send(ctx, email, subject, body)
}

func (s *SMTPServiceImpl) send(ctx context.Context, to, subject, body string) error {
	// Without credentials, log instead of sending
	if s.auth == nil {
		log.Printf("[MOCK EMAIL] to=%s subject=%q", to, subject)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	raw := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(raw)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

var _ domain.Mailer = (*SMTPServiceImpl)(nil)
