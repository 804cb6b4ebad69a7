package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to      string
	subject string
	html    string
}

func (f *fakeSender) Send(to, subject, html string) error {
	f.to = to
	f.subject = subject
	f.html = html
	return nil
}

func TestOTPMailerSubjects(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewOTPMailer(sender)

	require.NoError(t, mailer.SendOTPEmail("user@example.com", "Jamie", "123456", "login"))
	assert.Equal(t, "user@example.com", sender.to)
	assert.Equal(t, "WebSeed Login OTP", sender.subject)

	require.NoError(t, mailer.SendOTPEmail("user@example.com", "Jamie", "654321", "password reset"))
	assert.Equal(t, "WebSeed Password Reset OTP", sender.subject)
}

func TestOTPEmailTemplate(t *testing.T) {
	html := OTPEmailTemplate("Jamie", "123456", "login")

	assert.Contains(t, html, "Dear Jamie,")
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "WebSeed Login OTP")
	assert.Contains(t, html, "valid for 5 minutes")

	html = OTPEmailTemplate("Jamie", "654321", "password reset")
	assert.Contains(t, html, "WebSeed Password Reset OTP")
	assert.Contains(t, html, "654321")
}
