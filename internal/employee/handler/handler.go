package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/employee/models"
	"roster/pkg/platform/httputil"
)

// Service defines the employee operations the handler depends on.
type Service interface {
	Create(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, id string, req *models.EmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}

// Handler serves the employee CRUD endpoints.
type Handler struct {
	employees Service
	logger    *slog.Logger
}

// New creates a new employee Handler.
func New(employees Service, logger *slog.Logger) *Handler {
	return &Handler{employees: employees, logger: logger}
}

// Register registers the employee routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{id}", h.handleGet)
	r.Put("/employees/{id}", h.handleUpdate)
	r.Delete("/employees/{id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.EmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid create employee request", err)
		return
	}

	e, err := h.employees.Create(ctx, &req)
	if err != nil {
		h.fail(ctx, w, "failed to create employee", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees, err := h.employees.List(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list employees", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := h.employees.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "failed to get employee", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.EmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid update employee request", err)
		return
	}

	e, err := h.employees.Update(ctx, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.fail(ctx, w, "failed to update employee", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.employees.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.fail(ctx, w, "failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	httputil.Fail(ctx, w, h.logger, msg, err)
}
