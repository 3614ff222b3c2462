// Package mail implements the outbound email relay collaborator.
package mail

import (
	"context"
	"fmt"

	"bloggy/internal/config"
	"bloggy/internal/middleware"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single HTML email. Delivery is best-effort; callers treat
// failures as non-fatal and only log them.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender sends mail through an SMTP relay (e.g. Brevo), mirroring the
// transactional-email setup the product launched with.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a Sender from application config.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Send delivers the message synchronously. The context is consulted before
// dialing since gomail does not support cancellation mid-send.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender is a Sender that only logs the message. Used in development when
// no SMTP credentials are configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, _ string) error {
	middleware.Logger.InfoContext(ctx, "email suppressed (no SMTP credentials configured)",
		"to", to, "subject", subject)
	return nil
}

// NewSender picks the SMTP sender when credentials exist, otherwise the
// logging no-op so local development works without a relay.
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}
