package auth

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByEmail excludes inactive accounts so a soft-deleted user cannot
// start a password reset.
func (r *Repository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ? AND status = ?", email, userDatamodel.StatusActive).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdatePassword(email, passwordHash string, isPasswordChanged bool) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"is_password_changed": isPasswordChanged,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
