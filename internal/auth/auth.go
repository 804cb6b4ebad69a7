package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

// Flow discriminates what an OTP was issued for so a code minted for login
// can never be replayed against the password-reset flow.
type Flow string

const (
	FlowLogin          Flow = "login"
	FlowForgotPassword Flow = "forgot-password"
)

func ValidFlow(f Flow) bool {
	return f == FlowLogin || f == FlowForgotPassword
}

// SessionClaims is the signed payload carried inside the session cookie.
// Field names match the portal's established wire format.
type SessionClaims struct {
	UserID            int64  `json:"userId"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	IsPasswordChanged bool   `json:"isPasswordChanged"`
	jwt.RegisteredClaims
}

// Expired reports whether the authoritative exp claim has passed.
func (c *SessionClaims) Expired() bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Before(time.Now())
}

func (c *SessionClaims) IsAdmin() bool {
	return c.Role == userDatamodel.RoleAdmin
}

// OTPStore holds at most one pending code per email. Issue overwrites any
// earlier code for that email, so "resend" is always "reissue".
type OTPStore interface {
	Issue(ctx context.Context, email string, flow Flow) (code string, err error)
	// Verify is single use: a matching code is deleted before true is
	// returned, and an expired record is deleted on sight.
	Verify(ctx context.Context, email, code string, flow Flow) (bool, error)
}

// ResetTokenStore issues the single-use continuation token returned by a
// successful reset-OTP verification. The server, not the client, is the
// source of truth for which email completed OTP verification.
type ResetTokenStore interface {
	Create(ctx context.Context, email string) (token string, err error)
	// Redeem resolves and deletes the token in one step.
	Redeem(ctx context.Context, token string) (email string, err error)
}

// UserRepository is the narrow slice of the credential store the auth flow
// needs. Uniqueness of email is enforced upstream by the database index.
type UserRepository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetActiveByEmail(email string) (*userDatamodel.User, error)
	UpdatePassword(email, passwordHash string, isPasswordChanged bool) error
}

// OTPMailer delivers one-time passcodes. A send failure fails the
// triggering operation outright; nothing is retried.
type OTPMailer interface {
	SendOTPEmail(to, name, otp, purpose string) error
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) error
	VerifyLoginOTP(ctx context.Context, dto VerifyOTPDTO) (*LoginResult, error)
	ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) error
	VerifyResetOTP(ctx context.Context, dto VerifyOTPDTO) (string, error)
	ChangePassword(ctx context.Context, dto ChangePasswordDTO) error
	ResendOTP(ctx context.Context, dto ResendOTPDTO) error
}

// LoginResult is what a verified login OTP yields. When the account still
// has its admin-issued temporary password, ResetToken carries the proof the
// change-password step requires.
type LoginResult struct {
	UserID            int64
	Email             string
	Role              string
	IsPasswordChanged bool
	ResetToken        string
}
