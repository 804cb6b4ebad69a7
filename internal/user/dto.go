package user

import (
	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
	userDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/user"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/validation"
)

type CreateUserDTO struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Designation     string  `json:"designation"`
	Role            string  `json:"role"`
	AssignedReports []int64 `json:"assignedReports"`
}

type UpdateUserDTO struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Designation     string  `json:"designation"`
	Role            string  `json:"role"`
	ResetPassword   bool    `json:"resetPassword"`
	AssignedReports []int64 `json:"assignedReports"`
}

func (d CreateUserDTO) Validate() error {
	if d.Name == "" || d.Email == "" || d.Password == "" || d.Role == "" {
		return validation.Error{Msg: "name, email, password and role are required"}
	}
	if !userDatamodel.ValidRole(d.Role) {
		return validation.Error{Msg: "role must be Admin, User or Viewer"}
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	if d.Name == "" || d.Email == "" || d.Role == "" {
		return validation.Error{Msg: "name, email and role are required"}
	}
	if !userDatamodel.ValidRole(d.Role) {
		return validation.Error{Msg: "role must be Admin, User or Viewer"}
	}
	return nil
}

type ReportSummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	PowerBIReportID string `json:"power_bi_report_id"`
	Type            string `json:"type"`
}

type UserResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Designation       string          `json:"designation"`
	Role              string          `json:"role"`
	Status            string          `json:"status"`
	IsPasswordChanged bool            `json:"is_password_changed"`
	AssignedReports   []ReportSummary `json:"assignedReports"`
}

func toReportSummaries(reports []*reportDatamodel.Report) []ReportSummary {
	summaries := make([]ReportSummary, 0, len(reports))
	for _, r := range reports {
		summaries = append(summaries, ReportSummary{
			ID:              r.ID,
			Title:           r.Title,
			Description:     r.Description,
			PowerBIReportID: r.PowerBIReportID,
			Type:            r.Type,
		})
	}
	return summaries
}

func ToResponse(u *userDatamodel.User, reports []*reportDatamodel.Report) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Designation:       u.Designation,
		Role:              u.Role,
		Status:            u.Status,
		IsPasswordChanged: u.IsPasswordChanged,
		AssignedReports:   toReportSummaries(reports),
	}
}
