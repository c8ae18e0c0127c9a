package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/attendance/models"
	"roster/pkg/platform/httputil"
)

// Service defines the attendance operations the handler depends on.
type Service interface {
	Mark(ctx context.Context, req *models.MarkRequest) (*models.Record, error)
	History(ctx context.Context, employeeID string) ([]*models.Record, error)
}

// Handler serves attendance marking and per-employee history.
type Handler struct {
	attendance Service
	logger     *slog.Logger
}

// New creates a new attendance Handler.
func New(attendance Service, logger *slog.Logger) *Handler {
	return &Handler{attendance: attendance, logger: logger}
}

// Register registers the attendance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/attendance", h.handleMark)
	r.Get("/employees/{id}/attendance", h.handleHistory)
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.MarkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Fail(ctx, w, h.logger, "invalid mark attendance request", err)
		return
	}

	record, err := h.attendance.Mark(ctx, &req)
	if err != nil {
		httputil.Fail(ctx, w, h.logger, "failed to mark attendance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.attendance.History(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(ctx, w, h.logger, "failed to fetch attendance history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}
