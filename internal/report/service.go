package report

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	reportDatamodel "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/core/datamodel/report"
)

type Service struct {
	repo     Repository
	overview AccessOverviewRepository
	logger   *slog.Logger
}

func NewService(repo Repository, overview AccessOverviewRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		overview: overview,
		logger:   logger,
	}
}

func (s *Service) GetAll() ([]ReportResponse, error) {
	reports, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list reports", "error", err)
		return nil, internal.NewInternalError("Failed to fetch reports", err)
	}

	responses := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, ToResponse(r))
	}
	return responses, nil
}

// GetForUser lists the reports assigned to one user, bucketed by category.
// A category outside the two standard ones lands in Other.
func (s *Service) GetForUser(userID int64) (*UserReportsResponse, error) {
	reports, err := s.repo.GetForUser(userID)
	if err != nil {
		s.logger.Error("failed to list user reports", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("Failed to fetch reports", err)
	}

	resp := &UserReportsResponse{
		Accounting:    []ReportResponse{},
		Manufacturing: []ReportResponse{},
	}
	for _, r := range reports {
		switch r.Type {
		case reportDatamodel.TypeAccounting:
			resp.Accounting = append(resp.Accounting, ToResponse(r))
		case reportDatamodel.TypeManufacturing:
			resp.Manufacturing = append(resp.Manufacturing, ToResponse(r))
		default:
			resp.Other = append(resp.Other, ToResponse(r))
		}
	}
	return resp, nil
}

// GetByPowerBIIDForUser resolves an embed ID only within the requesting
// user's assignments; an unassigned report is indistinguishable from a
// missing one.
func (s *Service) GetByPowerBIIDForUser(userID int64, powerBIID string) (*ReportResponse, error) {
	r, err := s.repo.GetByPowerBIIDForUser(userID, powerBIID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrReportNotFound
		}
		return nil, internal.NewInternalError("Failed to fetch report", err)
	}
	resp := ToResponse(r)
	return &resp, nil
}

func (s *Service) Create(dto ReportDTO) (*ReportResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r := &reportDatamodel.Report{
		Title:           dto.Title,
		Description:     dto.Description,
		PowerBIReportID: dto.PowerBIReportID,
		PowerBIEmbedURL: dto.PowerBIEmbedURL,
		Type:            dto.Type,
	}

	if err := s.repo.Create(r); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrDuplicateReportID
		}
		s.logger.Error("failed to create report", "error", err)
		return nil, internal.NewInternalError("Failed to create report", err)
	}

	resp := ToResponse(r)
	return &resp, nil
}

func (s *Service) Update(id int64, dto ReportDTO) (*ReportResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrReportNotFound
		}
		return nil, internal.NewInternalError("Failed to fetch report", err)
	}

	r.Title = dto.Title
	r.Description = dto.Description
	r.PowerBIReportID = dto.PowerBIReportID
	r.PowerBIEmbedURL = dto.PowerBIEmbedURL
	r.Type = dto.Type

	if err := s.repo.Update(r); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrDuplicateReportID
		}
		s.logger.Error("failed to update report", "report_id", id, "error", err)
		return nil, internal.NewInternalError("Failed to update report", err)
	}

	resp := ToResponse(r)
	return &resp, nil
}

// Delete removes every access row referencing the report and then the
// report itself, atomically.
func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrReportNotFound
		}
		return internal.NewInternalError("Failed to fetch report", err)
	}

	if err := s.repo.DeleteWithAccess(id); err != nil {
		s.logger.Error("failed to delete report", "report_id", id, "error", err)
		return internal.NewInternalError("Failed to delete report", err)
	}
	return nil
}

func (s *Service) GetAccessOverview() ([]*AccessOverviewRow, error) {
	rows, err := s.overview.GetAccessOverview()
	if err != nil {
		s.logger.Error("failed to build access overview", "error", err)
		return nil, internal.NewInternalError("Failed to fetch access overview", err)
	}
	return rows, nil
}
