package user

import "time"

const (
	RoleAdmin  = "Admin"
	RoleUser   = "User"
	RoleViewer = "Viewer"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID                int64     `gorm:"primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	Email             string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash      *string   `gorm:"column:password_hash"`
	IsPasswordChanged bool      `gorm:"column:is_password_changed;default:false"`
	Designation       string    `gorm:"column:designation"`
	Role              string    `gorm:"column:role;not null;default:User"`
	Status            string    `gorm:"column:status;not null;default:active"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}
