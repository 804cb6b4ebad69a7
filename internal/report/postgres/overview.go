package postgres

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/report"
)

// AccessOverviewRepository serves the read-only admin overview straight
// through sqlx; the aggregate query has no model to hang off gorm.
type AccessOverviewRepository struct {
	db *sqlx.DB
}

func NewAccessOverviewRepository(db *sqlx.DB) report.AccessOverviewRepository {
	return &AccessOverviewRepository{db: db}
}

type overviewRow struct {
	UserID       int64  `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Designation  string `db:"designation"`
	Status       string `db:"status"`
	ReportsCount int    `db:"reports_count"`
	ReportTypes  string `db:"report_types"`
}

func (r *AccessOverviewRepository) GetAccessOverview() ([]*report.AccessOverviewRow, error) {
	const query = `
		SELECT u.id AS user_id, u.name, u.email,
		       COALESCE(u.designation, '') AS designation, u.status,
		       COUNT(ura.report_id) AS reports_count,
		       COALESCE(STRING_AGG(DISTINCT rp.type, ','), '') AS report_types
		FROM users u
		LEFT JOIN user_report_access ura ON u.id = ura.user_id
		LEFT JOIN reports rp ON ura.report_id = rp.id
		GROUP BY u.id, u.name, u.email, u.designation, u.status
		ORDER BY u.name ASC`

	var rows []overviewRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}

	result := make([]*report.AccessOverviewRow, 0, len(rows))
	for _, row := range rows {
		types := []string{}
		if row.ReportTypes != "" {
			types = strings.Split(row.ReportTypes, ",")
		}
		result = append(result, &report.AccessOverviewRow{
			UserID:       row.UserID,
			Name:         row.Name,
			Email:        row.Email,
			Designation:  row.Designation,
			Status:       row.Status,
			ReportsCount: row.ReportsCount,
			ReportTypes:  types,
		})
	}
	return result, nil
}
