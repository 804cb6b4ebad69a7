package auth

import "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/validation"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPDTO struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

type ChangePasswordDTO struct {
	ResetToken      string `json:"reset_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResendOTPDTO struct {
	Email string `json:"email"`
	Flow  Flow   `json:"flow"`
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return validation.Error{Msg: "email is required"}
	}
	if d.Password == "" {
		return validation.Error{Msg: "password is required"}
	}
	return nil
}

func (d VerifyOTPDTO) Validate() error {
	if d.Email == "" {
		return validation.Error{Msg: "email is required"}
	}
	if len(d.OTP) != 6 {
		return validation.Error{Msg: "otp must be 6 digits"}
	}
	return nil
}

func (d ForgotPasswordDTO) Validate() error {
	if d.Email == "" {
		return validation.Error{Msg: "email is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.ResetToken == "" {
		return validation.Error{Msg: "reset_token is required"}
	}
	if d.NewPassword == "" {
		return validation.Error{Msg: "new_password is required"}
	}
	if d.NewPassword != d.ConfirmPassword {
		return validation.Error{Msg: "passwords do not match"}
	}
	return nil
}

func (d ResendOTPDTO) Validate() error {
	if d.Email == "" {
		return validation.Error{Msg: "email is required"}
	}
	if !ValidFlow(d.Flow) {
		return validation.Error{Msg: "flow must be login or forgot-password"}
	}
	return nil
}
