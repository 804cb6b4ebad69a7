// Package email delivers portal mail over SMTP. A send either fully
// succeeds or fails; the caller decides what a failure means for the
// triggering operation.
package email

import (
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

type Sender interface {
	Send(to, subject, html string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPSender(cfg internal.SMTPConfig, logger *slog.Logger) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPSender{
		dialer: dialer,
		from:   cfg.From,
		logger: logger,
	}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.logger.Error("email send failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// OTPMailer wraps a Sender with the OTP subject and template.
type OTPMailer struct {
	sender Sender
}

func NewOTPMailer(sender Sender) *OTPMailer {
	return &OTPMailer{sender: sender}
}

func (m *OTPMailer) SendOTPEmail(to, name, otp, purpose string) error {
	subject := "WebSeed Login OTP"
	if purpose != "login" {
		subject = "WebSeed Password Reset OTP"
	}
	return m.sender.Send(to, subject, OTPEmailTemplate(name, otp, purpose))
}
