package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User

	updatedEmail string
	updatedHash  string
	updatedFlag  bool

	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	hash := string(hashed)

	return &mockUserRepository{
		usersByEmail: map[string]*userDatamodel.User{
			"user@example.com": {
				ID: 1, Name: "User", Email: "user@example.com",
				PasswordHash: &hash, IsPasswordChanged: true,
				Role: userDatamodel.RoleUser, Status: userDatamodel.StatusActive,
			},
			"admin@example.com": {
				ID: 2, Name: "Admin", Email: "admin@example.com",
				PasswordHash: &hash, IsPasswordChanged: true,
				Role: userDatamodel.RoleAdmin, Status: userDatamodel.StatusActive,
			},
			"fresh@example.com": {
				ID: 3, Name: "Fresh", Email: "fresh@example.com",
				PasswordHash: &hash, IsPasswordChanged: false,
				Role: userDatamodel.RoleUser, Status: userDatamodel.StatusActive,
			},
			"inactive@example.com": {
				ID: 4, Name: "Gone", Email: "inactive@example.com",
				PasswordHash: &hash, IsPasswordChanged: true,
				Role: userDatamodel.RoleUser, Status: userDatamodel.StatusInactive,
			},
		},
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	u, err := m.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u.Status != userDatamodel.StatusActive {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepository) UpdatePassword(email, passwordHash string, isPasswordChanged bool) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.updatedEmail = email
	m.updatedHash = passwordHash
	m.updatedFlag = isPasswordChanged
	return nil
}

// captureMailer records the last OTP instead of sending mail
type captureMailer struct {
	lastTo      string
	lastOTP     string
	lastPurpose string
	sendCount   int
	fail        bool
}

func (m *captureMailer) SendOTPEmail(to, name, otp, purpose string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.lastTo = to
	m.lastOTP = otp
	m.lastPurpose = purpose
	m.sendCount++
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		otps     *MemoryOTPStore
		tokens   *MemoryResetTokenStore
		mailer   *captureMailer
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		otps = NewMemoryOTPStore(5 * time.Minute)
		tokens = NewMemoryResetTokenStore(10 * time.Minute)
		mailer = &captureMailer{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(mockRepo, otps, tokens, mailer, logger, bcrypt.MinCost)
		ctx = context.Background()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should issue an OTP and email it", func() {
				// Given
				dto := LoginDTO{Email: "user@example.com", Password: "correct_password"}

				// When
				err := service.Login(ctx, dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mailer.lastTo).To(gomega.Equal("user@example.com"))
				gomega.Expect(mailer.lastOTP).To(gomega.HaveLen(6))
				gomega.Expect(mailer.lastPurpose).To(gomega.Equal("login"))
			})

			ginkgo.It("should invalidate the earlier OTP on a second login", func() {
				// Given
				dto := LoginDTO{Email: "user@example.com", Password: "correct_password"}
				gomega.Expect(service.Login(ctx, dto)).To(gomega.Succeed())
				firstOTP := mailer.lastOTP

				// When
				gomega.Expect(service.Login(ctx, dto)).To(gomega.Succeed())

				// Then
				ok, err := otps.Verify(ctx, dto.Email, firstOTP, FlowLogin)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeFalse())

				ok, err = otps.Verify(ctx, dto.Email, mailer.lastOTP, FlowLogin)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(ok).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return user not found for unknown email", func() {
				// When
				err := service.Login(ctx, LoginDTO{Email: "nobody@example.com", Password: "x"})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
				gomega.Expect(mailer.sendCount).To(gomega.BeZero())
			})

			ginkgo.It("should return invalid credentials for a wrong password", func() {
				// When
				err := service.Login(ctx, LoginDTO{Email: "user@example.com", Password: "wrong"})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
				gomega.Expect(mailer.sendCount).To(gomega.BeZero())
			})

			ginkgo.It("should return invalid credentials when no password hash is set", func() {
				// Given
				mockRepo.usersByEmail["user@example.com"].PasswordHash = nil

				// When
				err := service.Login(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the OTP email cannot be sent", func() {
			ginkgo.It("should fail the login outright", func() {
				// Given
				mailer.fail = true

				// When
				err := service.Login(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmailSendFailed))
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				err := service.Login(ctx, LoginDTO{Email: "", Password: "x"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
			})
		})
	})

	ginkgo.Describe("VerifyLoginOTP", func() {
		var issuedOTP string

		ginkgo.BeforeEach(func() {
			dto := LoginDTO{Email: "user@example.com", Password: "correct_password"}
			gomega.Expect(service.Login(ctx, dto)).To(gomega.Succeed())
			issuedOTP = mailer.lastOTP
		})

		ginkgo.Context("when the code matches", func() {
			ginkgo.It("should return the session claims source", func() {
				// When
				result, err := service.VerifyLoginOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: issuedOTP})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.UserID).To(gomega.Equal(int64(1)))
				gomega.Expect(result.Role).To(gomega.Equal(userDatamodel.RoleUser))
				gomega.Expect(result.IsPasswordChanged).To(gomega.BeTrue())
				gomega.Expect(result.ResetToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should consume the code", func() {
				// Given
				_, err := service.VerifyLoginOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: issuedOTP})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				_, err = service.VerifyLoginOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: issuedOTP})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidOrExpiredOTP))
			})
		})

		ginkgo.Context("when the account still has its temporary password", func() {
			ginkgo.It("should mint a reset token alongside the session", func() {
				// Given
				gomega.Expect(service.Login(ctx, LoginDTO{Email: "fresh@example.com", Password: "correct_password"})).To(gomega.Succeed())

				// When
				result, err := service.VerifyLoginOTP(ctx, VerifyOTPDTO{Email: "fresh@example.com", OTP: mailer.lastOTP})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.IsPasswordChanged).To(gomega.BeFalse())
				gomega.Expect(result.ResetToken).ToNot(gomega.BeEmpty())

				email, err := tokens.Redeem(ctx, result.ResetToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(email).To(gomega.Equal("fresh@example.com"))
			})
		})

		ginkgo.Context("when the code does not match", func() {
			ginkgo.It("should reject a wrong code", func() {
				wrong := "000000"
				if issuedOTP == wrong {
					wrong = "000001"
				}

				_, err := service.VerifyLoginOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: wrong})
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidOrExpiredOTP))
			})

			ginkgo.It("should reject a login code presented to the reset flow", func() {
				// When
				_, err := service.VerifyResetOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: issuedOTP})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidOrExpiredOTP))
			})
		})
	})

	ginkgo.Describe("ForgotPassword", func() {
		ginkgo.Context("when the account is active", func() {
			ginkgo.It("should issue a reset OTP", func() {
				// When
				err := service.ForgotPassword(ctx, ForgotPasswordDTO{Email: "user@example.com"})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mailer.lastPurpose).To(gomega.Equal("password reset"))
				gomega.Expect(mailer.lastOTP).To(gomega.HaveLen(6))
			})
		})

		ginkgo.Context("when the account is inactive", func() {
			ginkgo.It("should behave like a missing account", func() {
				// When
				err := service.ForgotPassword(ctx, ForgotPasswordDTO{Email: "inactive@example.com"})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
				gomega.Expect(mailer.sendCount).To(gomega.BeZero())
			})
		})
	})

	ginkgo.Describe("ChangePassword", func() {
		var resetToken string

		ginkgo.BeforeEach(func() {
			gomega.Expect(service.ForgotPassword(ctx, ForgotPasswordDTO{Email: "user@example.com"})).To(gomega.Succeed())

			var err error
			resetToken, err = service.VerifyResetOTP(ctx, VerifyOTPDTO{Email: "user@example.com", OTP: mailer.lastOTP})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.Context("when the reset token is valid", func() {
			ginkgo.It("should persist the new hash and mark the password changed", func() {
				// Given
				dto := ChangePasswordDTO{
					ResetToken:      resetToken,
					NewPassword:     "N3w!Passw0rd",
					ConfirmPassword: "N3w!Passw0rd",
				}

				// When
				err := service.ChangePassword(ctx, dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(mockRepo.updatedEmail).To(gomega.Equal("user@example.com"))
				gomega.Expect(mockRepo.updatedFlag).To(gomega.BeTrue())
				gomega.Expect(VerifyPassword(mockRepo.updatedHash, "N3w!Passw0rd")).To(gomega.BeTrue())
			})

			ginkgo.It("should consume the token", func() {
				// Given
				dto := ChangePasswordDTO{
					ResetToken:      resetToken,
					NewPassword:     "N3w!Passw0rd",
					ConfirmPassword: "N3w!Passw0rd",
				}
				gomega.Expect(service.ChangePassword(ctx, dto)).To(gomega.Succeed())

				// When
				err := service.ChangePassword(ctx, dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidResetToken))
			})
		})

		ginkgo.Context("when the new password breaks the policy", func() {
			ginkgo.It("should reject it without touching the token", func() {
				// Given
				dto := ChangePasswordDTO{
					ResetToken:      resetToken,
					NewPassword:     "weak",
					ConfirmPassword: "weak",
				}

				// When
				err := service.ChangePassword(ctx, dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodePasswordPolicy))

				// the token survives a policy rejection
				email, err := tokens.Redeem(ctx, resetToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(email).To(gomega.Equal("user@example.com"))
			})
		})

		ginkgo.Context("when the passwords do not match", func() {
			ginkgo.It("should return a validation error", func() {
				err := service.ChangePassword(ctx, ChangePasswordDTO{
					ResetToken:      resetToken,
					NewPassword:     "N3w!Passw0rd",
					ConfirmPassword: "Different!1",
				})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("passwords do not match"))
			})
		})

		ginkgo.Context("when the token is unknown", func() {
			ginkgo.It("should return invalid reset token", func() {
				err := service.ChangePassword(ctx, ChangePasswordDTO{
					ResetToken:      "bogus",
					NewPassword:     "N3w!Passw0rd",
					ConfirmPassword: "N3w!Passw0rd",
				})
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidResetToken))
			})
		})
	})

	ginkgo.Describe("ResendOTP", func() {
		ginkgo.It("should reissue and invalidate the previous code", func() {
			// Given
			gomega.Expect(service.Login(ctx, LoginDTO{Email: "user@example.com", Password: "correct_password"})).To(gomega.Succeed())
			firstOTP := mailer.lastOTP

			// When
			err := service.ResendOTP(ctx, ResendOTPDTO{Email: "user@example.com", Flow: FlowLogin})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mailer.sendCount).To(gomega.Equal(2))

			ok, err := otps.Verify(ctx, "user@example.com", firstOTP, FlowLogin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an unknown flow", func() {
			err := service.ResendOTP(ctx, ResendOTPDTO{Email: "user@example.com", Flow: "other"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("flow must be"))
		})
	})
})

var _ = ginkgo.Describe("ValidatePasswordPolicy", func() {
	ginkgo.It("should accept a password meeting all five predicates", func() {
		gomega.Expect(ValidatePasswordPolicy("Str0ng!Pass")).To(gomega.BeNil())
	})

	ginkgo.It("should name every missing predicate", func() {
		err := ValidatePasswordPolicy("short")
		gomega.Expect(err).ToNot(gomega.BeNil())
		gomega.Expect(err.Message).To(gomega.ContainSubstring("at least 8 characters"))
		gomega.Expect(err.Message).To(gomega.ContainSubstring("an uppercase letter"))
		gomega.Expect(err.Message).To(gomega.ContainSubstring("a digit"))
		gomega.Expect(err.Message).To(gomega.ContainSubstring("a symbol"))
	})

	ginkgo.It("should reject a long password without symbols", func() {
		err := ValidatePasswordPolicy("NoSymbols123")
		gomega.Expect(err).ToNot(gomega.BeNil())
		gomega.Expect(err.Message).To(gomega.ContainSubstring("a symbol"))
	})
})

var _ = ginkgo.Describe("HashPassword", func() {
	ginkgo.It("should generate different hashes for the same password", func() {
		hash1, err1 := HashPassword("same_password", bcrypt.MinCost)
		hash2, err2 := HashPassword("same_password", bcrypt.MinCost)

		gomega.Expect(err1).ToNot(gomega.HaveOccurred())
		gomega.Expect(err2).ToNot(gomega.HaveOccurred())
		gomega.Expect(hash1).ToNot(gomega.Equal(hash2)) // Salts make them different
		gomega.Expect(VerifyPassword(hash1, "same_password")).To(gomega.BeTrue())
		gomega.Expect(VerifyPassword(hash2, "same_password")).To(gomega.BeTrue())
	})

	ginkgo.It("should treat a malformed digest as a mismatch", func() {
		gomega.Expect(VerifyPassword("not-a-bcrypt-digest", "anything")).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("GenerateOTP", func() {
	ginkgo.It("should generate a six digit code", func() {
		code, err := GenerateOTP()
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(code).To(gomega.MatchRegexp(`^\d{6}$`))
	})
})

var _ = ginkgo.Describe("GenerateRandomToken", func() {
	ginkgo.It("should generate different tokens each time", func() {
		token1, err1 := GenerateRandomToken()
		token2, err2 := GenerateRandomToken()

		gomega.Expect(err1).ToNot(gomega.HaveOccurred())
		gomega.Expect(err2).ToNot(gomega.HaveOccurred())
		gomega.Expect(token1).To(gomega.HaveLen(64)) // 32 bytes * 2 (hex encoding)
		gomega.Expect(token1).ToNot(gomega.Equal(token2))
	})
})
