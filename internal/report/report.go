package report

import (
	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
)

// Repository is the persistence boundary for the report catalog. Delete
// removes the access rows and the report row in one transaction so no
// dangling assignment can survive.
type Repository interface {
	GetAll() ([]*reportDatamodel.Report, error)
	GetByID(id int64) (*reportDatamodel.Report, error)
	GetForUser(userID int64) ([]*reportDatamodel.Report, error)
	GetByPowerBIIDForUser(userID int64, powerBIID string) (*reportDatamodel.Report, error)
	Create(report *reportDatamodel.Report) error
	Update(report *reportDatamodel.Report) error
	DeleteWithAccess(id int64) error
}

// AccessOverviewRow summarizes one user's report assignments for the admin
// access table.
type AccessOverviewRow struct {
	UserID       int64    `db:"user_id" json:"user_id"`
	Name         string   `db:"name" json:"name"`
	Email        string   `db:"email" json:"email"`
	Designation  string   `db:"designation" json:"designation"`
	Status       string   `db:"status" json:"status"`
	ReportsCount int      `db:"reports_count" json:"reports_count"`
	ReportTypes  []string `db:"-" json:"report_types"`
}

type AccessOverviewRepository interface {
	GetAccessOverview() ([]*AccessOverviewRow, error)
}
