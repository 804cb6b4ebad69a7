package report

import (
	"time"

	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/validation"
)

type ReportDTO struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PowerBIReportID string `json:"power_bi_report_id"`
	PowerBIEmbedURL string `json:"power_bi_embed_url"`
	Type            string `json:"type"`
}

func (d ReportDTO) Validate() error {
	if d.Title == "" || d.PowerBIReportID == "" || d.Type == "" {
		return validation.Error{Msg: "title, power_bi_report_id and type are required"}
	}
	return nil
}

type ReportResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	PowerBIReportID string    `json:"power_bi_report_id"`
	PowerBIEmbedURL string    `json:"power_bi_embed_url,omitempty"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserReportsResponse groups a user's reports by category for the
// dashboard landing page.
type UserReportsResponse struct {
	Accounting    []ReportResponse `json:"accounting"`
	Manufacturing []ReportResponse `json:"manufacturing"`
	Other         []ReportResponse `json:"other,omitempty"`
}

func ToResponse(r *reportDatamodel.Report) ReportResponse {
	return ReportResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		PowerBIReportID: r.PowerBIReportID,
		PowerBIEmbedURL: r.PowerBIEmbedURL,
		Type:            r.Type,
		CreatedAt:       r.CreatedAt,
	}
}
