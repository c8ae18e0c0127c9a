package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/report/models"
	"roster/pkg/platform/httputil"
)

// Service defines the report operations the handler depends on.
type Service interface {
	AttendanceSummary(ctx context.Context) ([]models.AttendanceSummary, error)
	SalaryInsights(ctx context.Context) (models.SalaryInsights, error)
}

// Handler serves the read-only report endpoints.
type Handler struct {
	reports Service
	logger  *slog.Logger
}

// New creates a new report Handler.
func New(reports Service, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, logger: logger}
}

// Register registers the report routes with the chi router. /employees/insights must
// be registered on the same router as /employees/{id} so chi prefers the static segment.
func (h *Handler) Register(r chi.Router) {
	r.Get("/attendance/summary", h.handleAttendanceSummary)
	r.Get("/employees/insights", h.handleSalaryInsights)
}

func (h *Handler) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.reports.AttendanceSummary(ctx)
	if err != nil {
		httputil.Fail(ctx, w, h.logger, "failed to compute attendance summary", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSalaryInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	insights, err := h.reports.SalaryInsights(ctx)
	if err != nil {
		httputil.Fail(ctx, w, h.logger, "failed to compute salary insights", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, insights)
}
