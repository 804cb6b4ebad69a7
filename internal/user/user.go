package user

import (
	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
)

// DefaultTemporaryPassword is what an admin reset puts on the account. The
// password-changed flag is flipped off at the same time so the next login
// forces a change.
const DefaultTemporaryPassword = "Password@123"

// UserWithReports is a user row joined with the reports assigned to it.
type UserWithReports struct {
	User            *userDatamodel.User
	AssignedReports []*reportDatamodel.Report
}

// Repository is the persistence boundary for user administration. Writes
// that touch both the user row and its access rows are transactional.
type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetAllWithReports() ([]*UserWithReports, error)
	GetAssignedReports(userID int64) ([]*reportDatamodel.Report, error)
	CreateWithAccess(user *userDatamodel.User, reportIDs []int64) error
	UpdateWithAccess(user *userDatamodel.User, reportIDs []int64) error
	SetStatus(id int64, status string) error
}
