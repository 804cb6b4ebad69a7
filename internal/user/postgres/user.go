package postgres

import (
	"gorm.io/gorm"

	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAllWithReports() ([]*user.UserWithReports, error) {
	var users []*userDatamodel.User
	if err := r.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	rows := make([]*user.UserWithReports, 0, len(users))
	for _, u := range users {
		reports, err := r.GetAssignedReports(u.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &user.UserWithReports{User: u, AssignedReports: reports})
	}
	return rows, nil
}

func (r *UserRepository) GetAssignedReports(userID int64) ([]*reportDatamodel.Report, error) {
	var reports []*reportDatamodel.Report
	err := r.db.
		Joins("JOIN user_report_access ura ON ura.report_id = reports.id").
		Where("ura.user_id = ?", userID).
		Order("reports.title ASC").
		Find(&reports).Error
	return reports, err
}

// CreateWithAccess inserts the user row and its access rows atomically so a
// failure cannot leave a user with half its assignments.
func (r *UserRepository) CreateWithAccess(u *userDatamodel.User, reportIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return insertAccessRows(tx, u.ID, reportIDs)
	})
}

// UpdateWithAccess saves the user row and replaces its access rows
// wholesale in the same transaction.
func (r *UserRepository) UpdateWithAccess(u *userDatamodel.User, reportIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&reportDatamodel.UserReportAccess{}).Error; err != nil {
			return err
		}
		return insertAccessRows(tx, u.ID, reportIDs)
	})
}

func insertAccessRows(tx *gorm.DB, userID int64, reportIDs []int64) error {
	if len(reportIDs) == 0 {
		return nil
	}
	rows := make([]reportDatamodel.UserReportAccess, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		rows = append(rows, reportDatamodel.UserReportAccess{
			UserID:   userID,
			ReportID: reportID,
		})
	}
	return tx.Create(&rows).Error
}

func (r *UserRepository) SetStatus(id int64, status string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}
