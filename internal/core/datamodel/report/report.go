package report

import "time"

const (
	TypeAccounting    = "Accounting"
	TypeManufacturing = "Manufacturing"
)

type Report struct {
	ID              int64     `gorm:"primaryKey"`
	Title           string    `gorm:"column:title;not null"`
	Description     string    `gorm:"column:description"`
	PowerBIReportID string    `gorm:"column:power_bi_report_id;uniqueIndex;not null"`
	PowerBIEmbedURL string    `gorm:"column:power_bi_embed_url"`
	Type            string    `gorm:"column:type;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Report) TableName() string {
	return "reports"
}

// UserReportAccess links a user to a report they may view. The pair is
// unique; rows are replaced wholesale when a user is saved.
type UserReportAccess struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:user_report_access_unq"`
	ReportID  int64     `gorm:"column:report_id;not null;uniqueIndex:user_report_access_unq"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserReportAccess) TableName() string {
	return "user_report_access"
}
