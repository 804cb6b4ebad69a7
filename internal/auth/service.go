package auth

import (
	"context"
	"log/slog"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

// Service orchestrates the two-factor login and password-reset flows. Every
// operation maps lower-level failures onto the portal error taxonomy and
// never lets a raw repository or transport error escape.
type Service struct {
	users       UserRepository
	otps        OTPStore
	resetTokens ResetTokenStore
	mailer      OTPMailer
	logger      *slog.Logger
	bcryptCost  int
}

func NewService(users UserRepository, otps OTPStore, resetTokens ResetTokenStore, mailer OTPMailer, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		users:       users,
		otps:        otps,
		resetTokens: resetTokens,
		mailer:      mailer,
		logger:      logger,
		bcryptCost:  bcryptCost,
	}
}

// Login checks the credentials and, when they hold, issues a login OTP and
// emails it. Repeated calls reissue: the earlier code dies immediately.
func (s *Service) Login(ctx context.Context, dto LoginDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return internal.ErrUserNotFound
	}
	if user.PasswordHash == nil || !VerifyPassword(*user.PasswordHash, dto.Password) {
		return internal.ErrInvalidCredentials
	}

	code, err := s.otps.Issue(ctx, dto.Email, FlowLogin)
	if err != nil {
		s.logger.Error("otp issue failed", "error", err)
		return internal.NewInternalError("Login failed", err)
	}

	if err := s.mailer.SendOTPEmail(user.Email, user.Name, code, "login"); err != nil {
		s.logger.Error("otp email send failed", "email", user.Email, "error", err)
		return internal.NewExternalError("Failed to send OTP email", internal.ErrCodeEmailSendFailed, err)
	}

	return nil
}

// VerifyLoginOTP consumes the pending login code and returns the claims to
// mint a session from. The user row is read again because role or the
// password-changed flag may have moved between the two steps. When a forced
// password change is still pending, a continuation token is included so the
// change-password step has server-issued proof of identity.
func (s *Service) VerifyLoginOTP(ctx context.Context, dto VerifyOTPDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.otps.Verify(ctx, dto.Email, dto.OTP, FlowLogin)
	if err != nil {
		s.logger.Error("otp verify failed", "error", err)
		return nil, internal.NewInternalError("OTP verification failed", err)
	}
	if !ok {
		return nil, internal.ErrInvalidOrExpiredOTP
	}

	user, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	result := &LoginResult{
		UserID:            user.ID,
		Email:             user.Email,
		Role:              user.Role,
		IsPasswordChanged: user.IsPasswordChanged,
	}

	if !user.IsPasswordChanged {
		token, err := s.resetTokens.Create(ctx, user.Email)
		if err != nil {
			s.logger.Error("reset token create failed", "error", err)
			return nil, internal.NewInternalError("OTP verification failed", err)
		}
		result.ResetToken = token
	}

	return result, nil
}

// ForgotPassword starts the reset flow. Only active users can reset;
// an inactive account behaves exactly like a missing one.
func (s *Service) ForgotPassword(ctx context.Context, dto ForgotPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetActiveByEmail(dto.Email)
	if err != nil {
		return internal.ErrUserNotFound
	}

	code, err := s.otps.Issue(ctx, dto.Email, FlowForgotPassword)
	if err != nil {
		s.logger.Error("otp issue failed", "error", err)
		return internal.NewInternalError("Password reset failed", err)
	}

	if err := s.mailer.SendOTPEmail(user.Email, user.Name, code, "password reset"); err != nil {
		s.logger.Error("otp email send failed", "email", user.Email, "error", err)
		return internal.NewExternalError("Failed to send reset email", internal.ErrCodeEmailSendFailed, err)
	}

	return nil
}

// VerifyResetOTP consumes the pending reset code and returns a single-use
// continuation token that ChangePassword requires.
func (s *Service) VerifyResetOTP(ctx context.Context, dto VerifyOTPDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	ok, err := s.otps.Verify(ctx, dto.Email, dto.OTP, FlowForgotPassword)
	if err != nil {
		s.logger.Error("otp verify failed", "error", err)
		return "", internal.NewInternalError("OTP verification failed", err)
	}
	if !ok {
		return "", internal.ErrInvalidOrExpiredOTP
	}

	token, err := s.resetTokens.Create(ctx, dto.Email)
	if err != nil {
		s.logger.Error("reset token create failed", "error", err)
		return "", internal.NewInternalError("OTP verification failed", err)
	}
	return token, nil
}

// ChangePassword redeems the continuation token, enforces the password
// policy and persists the new hash. The email is resolved from the token;
// whatever the client carried across the flow is never trusted.
func (s *Service) ChangePassword(ctx context.Context, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if err := ValidatePasswordPolicy(dto.NewPassword); err != nil {
		return err
	}

	email, err := s.resetTokens.Redeem(ctx, dto.ResetToken)
	if err != nil {
		return internal.ErrInvalidResetToken
	}

	if _, err := s.users.GetByEmail(email); err != nil {
		return internal.ErrUserNotFound
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", "error", err)
		return internal.NewInternalError("Failed to change password", err)
	}

	if err := s.users.UpdatePassword(email, hash, true); err != nil {
		s.logger.Error("password update failed", "error", err)
		return internal.NewInternalError("Failed to change password", err)
	}

	return nil
}

// ResendOTP reissues the code for the given flow and emails it again. The
// prior code is discarded even though it had not expired.
func (s *Service) ResendOTP(ctx context.Context, dto ResendOTPDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		return internal.ErrUserNotFound
	}

	code, err := s.otps.Issue(ctx, dto.Email, dto.Flow)
	if err != nil {
		s.logger.Error("otp issue failed", "error", err)
		return internal.NewInternalError("Failed to resend OTP", err)
	}

	purpose := "login"
	if dto.Flow == FlowForgotPassword {
		purpose = "password reset"
	}

	if err := s.mailer.SendOTPEmail(user.Email, user.Name, code, purpose); err != nil {
		s.logger.Error("otp email send failed", "email", user.Email, "error", err)
		return internal.NewExternalError("Failed to send OTP email", internal.ErrCodeEmailSendFailed, err)
	}

	return nil
}
