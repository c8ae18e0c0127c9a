package service

import (
	"context"
	"errors"
	"log/slog"

	"roster/internal/employee/metrics"
	"roster/internal/employee/models"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/sentinel"
	"roster/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AttendanceCleaner,TxRunner

// Store is the Record Store contract.
type Store interface {
	Create(ctx context.Context, e *models.Employee) error
	List(ctx context.Context) ([]*models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id string) error
}

// AttendanceCleaner removes attendance history owned by a deleted employee.
type AttendanceCleaner interface {
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

// TxRunner groups store writes into one transaction. Stores join it through the
// context passed to fn.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates employee record management.
type Service struct {
	store      Store
	attendance AttendanceCleaner
	tx         TxRunner
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(s *Service)

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

// WithAttendanceCleaner enables cascading deletes of attendance history.
func WithAttendanceCleaner(c AttendanceCleaner) Option {
	return func(s *Service) {
		s.attendance = c
	}
}

// WithTxRunner makes the cascading delete atomic on backends that support transactions.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("employee store is required")
	}
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create validates and persists a new employee. A duplicate email leaves the store unchanged.
func (s *Service) Create(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	e := &models.Employee{CreatedAt: now}
	e.ApplyFields(req, now)

	if err := s.store.Create(ctx, e); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.metrics.IncrementDuplicateEmail()
			return nil, dErrors.New(dErrors.CodeDuplicateKey, "Email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error creating employee")
	}

	s.logger.InfoContext(ctx, "employee created",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", e.ID,
	)
	s.metrics.IncrementCreated()
	return e, nil
}

// List returns every employee.
func (s *Service) List(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching employees")
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	return employees, nil
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Employee, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching employee")
	}
	return e, nil
}

// Update replaces all mutable fields of an existing employee.
func (s *Service) Update(ctx context.Context, id string, req *models.EmployeeRequest) (*models.Employee, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e.ApplyFields(req, requestcontext.Now(ctx))

	if err := s.store.Update(ctx, e); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "Employee not found")
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			s.metrics.IncrementDuplicateEmail()
			return nil, dErrors.New(dErrors.CodeDuplicateKey, "Email already exists")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error updating employee")
		}
	}

	s.metrics.IncrementUpdated()
	return e, nil
}

// Delete removes an employee. Deleting an id that does not exist succeeds, so the
// operation is safe to retry. Attendance is removed before the employee, so a failed
// cascade leaves the employee in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.runInTx(ctx, func(ctx context.Context) error {
		if s.attendance != nil {
			if err := s.attendance.DeleteByEmployee(ctx, id); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "Error deleting employee attendance")
			}
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "Error deleting employee")
		}
		return nil
	})
	if err != nil {
		if _, ok := dErrors.As(err); ok {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Error deleting employee")
	}

	s.logger.InfoContext(ctx, "employee deleted",
		"request_id", requestcontext.RequestID(ctx),
		"employee_id", id,
	)
	s.metrics.IncrementDeleted()
	return nil
}

func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.RunInTx(ctx, fn)
}
