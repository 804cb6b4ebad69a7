package user

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth"
	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

type Service struct {
	repo       Repository
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) GetAll() ([]UserResponse, error) {
	rows, err := s.repo.GetAllWithReports()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("Failed to fetch users", err)
	}

	responses := make([]UserResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ToResponse(row.User, row.AssignedReports))
	}
	return responses, nil
}

func (s *Service) GetByID(id int64) (*UserResponse, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("Failed to fetch user", err)
	}

	reports, err := s.repo.GetAssignedReports(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to fetch user reports", err)
	}

	resp := ToResponse(u, reports)
	return &resp, nil
}

// Create inserts the user and its access rows in one transaction. The
// admin supplied the initial password, so the account is not forced
// through a password change on first login.
func (s *Service) Create(dto CreateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(dto.Email); err == nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Failed to create user", err)
	}

	u := &userDatamodel.User{
		Name:              dto.Name,
		Email:             dto.Email,
		PasswordHash:      &hash,
		IsPasswordChanged: true,
		Designation:       dto.Designation,
		Role:              dto.Role,
		Status:            userDatamodel.StatusActive,
	}

	if err := s.repo.CreateWithAccess(u, dto.AssignedReports); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("Failed to create user", err)
	}

	reports, err := s.repo.GetAssignedReports(u.ID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to fetch user reports", err)
	}

	resp := ToResponse(u, reports)
	return &resp, nil
}

// Update saves profile fields and replaces the access rows wholesale in one
// transaction. An admin password reset installs the default temporary
// password and clears the password-changed flag to force a change at the
// next login.
func (s *Service) Update(id int64, dto UpdateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("Failed to fetch user", err)
	}

	u.Name = dto.Name
	u.Email = dto.Email
	u.Designation = dto.Designation
	u.Role = dto.Role

	if dto.ResetPassword {
		hash, err := auth.HashPassword(DefaultTemporaryPassword, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("Failed to reset password", err)
		}
		u.PasswordHash = &hash
		u.IsPasswordChanged = false
	}

	if err := s.repo.UpdateWithAccess(u, dto.AssignedReports); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("Failed to update user", err)
	}

	reports, err := s.repo.GetAssignedReports(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to fetch user reports", err)
	}

	resp := ToResponse(u, reports)
	return &resp, nil
}

// Deactivate soft-deletes: the row stays for historical references.
func (s *Service) Deactivate(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("Failed to fetch user", err)
	}

	if err := s.repo.SetStatus(id, userDatamodel.StatusInactive); err != nil {
		s.logger.Error("failed to deactivate user", "user_id", id, "error", err)
		return internal.NewInternalError("Failed to deactivate user", err)
	}
	return nil
}
