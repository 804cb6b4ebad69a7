package postgres

import (
	"gorm.io/gorm"

	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/report"
)

// ReportRepository implements the report.Repository interface using GORM
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) GetAll() ([]*reportDatamodel.Report, error) {
	var reports []*reportDatamodel.Report
	err := r.db.Order("title ASC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) GetByID(id int64) (*reportDatamodel.Report, error) {
	var rep reportDatamodel.Report
	if err := r.db.Where("id = ?", id).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) GetForUser(userID int64) ([]*reportDatamodel.Report, error) {
	var reports []*reportDatamodel.Report
	err := r.db.
		Joins("JOIN user_report_access ura ON ura.report_id = reports.id").
		Where("ura.user_id = ?", userID).
		Order("reports.title ASC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) GetByPowerBIIDForUser(userID int64, powerBIID string) (*reportDatamodel.Report, error) {
	var rep reportDatamodel.Report
	err := r.db.
		Joins("JOIN user_report_access ura ON ura.report_id = reports.id").
		Where("ura.user_id = ? AND reports.power_bi_report_id = ?", userID, powerBIID).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) Create(rep *reportDatamodel.Report) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) Update(rep *reportDatamodel.Report) error {
	return r.db.Save(rep).Error
}

// DeleteWithAccess removes the access rows and the report row in one
// transaction so a failure between the two cannot leave dangling rows.
func (r *ReportRepository) DeleteWithAccess(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&reportDatamodel.UserReportAccess{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&reportDatamodel.Report{}).Error
	})
}
