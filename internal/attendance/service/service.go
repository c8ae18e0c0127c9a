package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"roster/internal/attendance/metrics"
	"roster/internal/attendance/models"
	employeemodels "roster/internal/employee/models"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
	"roster/pkg/requestcontext"
)

// Store persists attendance marks. Upsert must be atomic per (employee, day).
type Store interface {
	Upsert(ctx context.Context, r *models.Record) (*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*models.Record, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

// EmployeeLookup resolves the employee a mark refers to.
type EmployeeLookup interface {
	FindByID(ctx context.Context, id string) (*employeemodels.Employee, error)
}

// Service records daily attendance.
type Service struct {
	store     Store
	employees EmployeeLookup
	location  *time.Location
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(s *Service)

// WithLocation sets the timezone that decides which calendar day "now" falls on.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, employees EmployeeLookup, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("attendance store is required")
	}
	if employees == nil {
		return nil, errors.New("employee lookup is required")
	}
	s := &Service{
		store:     store,
		employees: employees,
		location:  time.UTC,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Mark records the employee's status for the current day.
func (s *Service) Mark(ctx context.Context, req *models.MarkRequest) (*models.Record, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	day := models.DayOf(requestcontext.Now(ctx), s.location)
	return s.MarkOn(ctx, req.EmployeeID, req.Status, day)
}

// MarkOn records the employee's status for an explicit day, overwriting any earlier
// mark for that day.
func (s *Service) MarkOn(ctx context.Context, employeeID string, status models.Status, day models.Day) (*models.Record, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be Present or Absent")
	}
	if err := s.requireEmployee(ctx, employeeID); err != nil {
		s.metrics.IncrementUnknownEmployee()
		return nil, err
	}

	record, err := s.store.Upsert(ctx, &models.Record{
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
		UpdatedAt:  requestcontext.Now(ctx),
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error marking attendance")
	}

	s.logger.InfoContext(ctx, "attendance marked",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", employeeID,
		"date", day.String(),
		"status", string(status),
	)
	s.metrics.IncrementMark(string(status))
	return record, nil
}

// History returns an employee's marks ordered by day.
func (s *Service) History(ctx context.Context, employeeID string) ([]*models.Record, error) {
	if err := s.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	records, err := s.store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching attendance")
	}
	if records == nil {
		records = []*models.Record{}
	}
	return records, nil
}

// List returns every mark in insertion order.
func (s *Service) List(ctx context.Context) ([]*models.Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching attendance")
	}
	return records, nil
}

func (s *Service) requireEmployee(ctx context.Context, id string) error {
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Employee not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching employee")
	}
	return nil
}
