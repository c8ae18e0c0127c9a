package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	attendancemodels "roster/internal/attendance/models"
	employeemodels "roster/internal/employee/models"
	"roster/internal/report"
	"roster/internal/report/metrics"
	"roster/internal/report/models"
	dErrors "roster/pkg/domain-errors"
)

// EmployeeSource lists the roster.
type EmployeeSource interface {
	List(ctx context.Context) ([]*employeemodels.Employee, error)
}

// AttendanceSource lists every attendance mark.
type AttendanceSource interface {
	List(ctx context.Context) ([]*attendancemodels.Record, error)
}

// SalaryAggregator is implemented by employee stores that can compute salary
// insights themselves.
type SalaryAggregator interface {
	SalaryInsights(ctx context.Context) (models.SalaryInsights, error)
}

// AttendanceAggregator is implemented by attendance stores that can group marks
// themselves.
type AttendanceAggregator interface {
	AttendanceSummary(ctx context.Context) ([]models.AttendanceSummary, error)
}

// Service computes reports on demand. Nothing is cached between calls.
type Service struct {
	employees  EmployeeSource
	attendance AttendanceSource
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

// New constructs a Service. When a source also implements the matching aggregator
// interface the report is computed by the store.
func New(employees EmployeeSource, attendance AttendanceSource, opts ...Option) (*Service, error) {
	if employees == nil {
		return nil, errors.New("employee source is required")
	}
	if attendance == nil {
		return nil, errors.New("attendance source is required")
	}
	s := &Service{
		employees:  employees,
		attendance: attendance,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AttendanceSummary returns the per-employee attendance rollup.
func (s *Service) AttendanceSummary(ctx context.Context) ([]models.AttendanceSummary, error) {
	defer s.metrics.ObserveDuration("attendance_summary", time.Now())

	if agg, ok := s.attendance.(AttendanceAggregator); ok {
		summary, err := agg.AttendanceSummary(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching attendance summary")
		}
		if summary == nil {
			summary = []models.AttendanceSummary{}
		}
		return summary, nil
	}

	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching attendance summary")
	}
	return report.SummarizeAttendance(records), nil
}

// SalaryInsights returns the roster-wide salary rollup.
func (s *Service) SalaryInsights(ctx context.Context) (models.SalaryInsights, error) {
	defer s.metrics.ObserveDuration("salary_insights", time.Now())

	if agg, ok := s.employees.(SalaryAggregator); ok {
		insights, err := agg.SalaryInsights(ctx)
		if err != nil {
			return models.SalaryInsights{}, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching salary insights")
		}
		return insights, nil
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return models.SalaryInsights{}, dErrors.Wrap(err, dErrors.CodeInternal, "Error fetching salary insights")
	}
	return report.ComputeSalaryInsights(employees), nil
}
