package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

// passwordSymbols is the fixed punctuation set accepted by the policy.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

// HashPassword creates a bcrypt hash of the password. Two calls with the
// same input produce different digests because bcrypt salts internally.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a candidate against a stored digest in constant
// time. A malformed digest is a mismatch, never an error.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// ValidatePasswordPolicy checks the five predicates a new password must
// satisfy simultaneously: length, upper, lower, digit, symbol.
func ValidatePasswordPolicy(password string) *internal.AppError {
	var missing []string

	if len(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		missing = append(missing, "an uppercase letter")
	}
	if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		missing = append(missing, "a lowercase letter")
	}
	if !strings.ContainsAny(password, "0123456789") {
		missing = append(missing, "a digit")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		missing = append(missing, "a symbol")
	}

	if len(missing) > 0 {
		return internal.NewValidationError(
			"Password must contain "+strings.Join(missing, ", "),
			internal.ErrCodePasswordPolicy,
		)
	}
	return nil
}
