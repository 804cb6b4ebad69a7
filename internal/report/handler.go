package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/transport"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/validation"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]ReportResponse, error)
	GetForUser(userID int64) (*UserReportsResponse, error)
	GetByPowerBIIDForUser(userID int64, powerBIID string) (*ReportResponse, error)
	Create(dto ReportDTO) (*ReportResponse, error)
	Update(id int64, dto ReportDTO) (*ReportResponse, error)
	Delete(id int64) error
	GetAccessOverview() ([]*AccessOverviewRow, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(validation.Error); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.HandleServiceError(w, err)
}

// ListMyReports serves the dashboard: the caller's assigned reports grouped
// by category.
func (h *Handler) ListMyReports(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no valid session")
		return
	}

	resp, err := h.Service.GetForUser(claims.UserID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// GetMyReportByPowerBIID serves the embed page for a single report the
// caller is assigned to.
func (h *Handler) GetMyReportByPowerBIID(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no valid session")
		return
	}

	resp, err := h.Service.GetByPowerBIIDForUser(claims.UserID, chi.URLParam(r, "powerBiId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.GetAll()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var dto ReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("failed to create report", "error", err)
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	var dto ReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("failed to update report", "report_id", id, "error", err)
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("failed to delete report", "report_id", id, "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Report deleted successfully",
	})
}

func (h *Handler) GetAccessOverview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.GetAccessOverview()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rows)
}
