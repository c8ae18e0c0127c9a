// Package dashboard is the operator front end for the roster API: a cached copy of
// the roster and attendance report, local filtering, derived statistics and a
// spreadsheet export.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	attendancemodels "roster/internal/attendance/models"
	employeemodels "roster/internal/employee/models"
	reportmodels "roster/internal/report/models"
)

// API is the subset of the roster API the dashboard drives.
type API interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	CreateEmployee(ctx context.Context, req *employeemodels.EmployeeRequest) (*Employee, error)
	UpdateEmployee(ctx context.Context, id string, req *employeemodels.EmployeeRequest) (*Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	MarkAttendance(ctx context.Context, employeeID string, status attendancemodels.Status) (*attendancemodels.Record, error)
	AttendanceSummary(ctx context.Context) ([]reportmodels.AttendanceSummary, error)
}

// Dashboard caches the roster and the attendance summary. Every mutation goes to the
// API first and then reloads both.
type Dashboard struct {
	api    API
	logger *slog.Logger

	mu        sync.RWMutex
	employees []Employee
	summary   []reportmodels.AttendanceSummary
}

type Option func(d *Dashboard)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

// New constructs an empty Dashboard. Call Refresh to load it.
func New(api API, opts ...Option) *Dashboard {
	d := &Dashboard{api: api, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refresh reloads the roster and the attendance summary concurrently. The cache is
// replaced only when both loads succeed.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var (
		employees []Employee
		summary   []reportmodels.AttendanceSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = d.api.ListEmployees(gctx)
		if err != nil {
			return fmt.Errorf("fetch employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		summary, err = d.api.AttendanceSummary(gctx)
		if err != nil {
			return fmt.Errorf("fetch attendance summary: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d.mu.Lock()
	d.employees = employees
	d.summary = summary
	d.mu.Unlock()

	d.logger.DebugContext(ctx, "dashboard refreshed",
		"employees", len(employees),
		"attendance_rows", len(summary),
	)
	return nil
}

// Employees returns a copy of the cached roster.
func (d *Dashboard) Employees() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Employee(nil), d.employees...)
}

// Summary returns a copy of the cached attendance summary.
func (d *Dashboard) Summary() []reportmodels.AttendanceSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]reportmodels.AttendanceSummary(nil), d.summary...)
}

// View returns the cached roster narrowed by f.
func (d *Dashboard) View(f Filter) []Employee {
	return f.Apply(d.Employees())
}

// AddEmployee creates an employee, storing its department in normalised form.
func (d *Dashboard) AddEmployee(ctx context.Context, req *employeemodels.EmployeeRequest) (*Employee, error) {
	req.Department = NormalizeDepartment(req.Department)
	e, err := d.api.CreateEmployee(ctx, req)
	if err != nil {
		return nil, err
	}
	return e, d.Refresh(ctx)
}

// UpdateEmployee replaces an employee's fields, storing its department in normalised form.
func (d *Dashboard) UpdateEmployee(ctx context.Context, id string, req *employeemodels.EmployeeRequest) (*Employee, error) {
	req.Department = NormalizeDepartment(req.Department)
	e, err := d.api.UpdateEmployee(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return e, d.Refresh(ctx)
}

func (d *Dashboard) DeleteEmployee(ctx context.Context, id string) error {
	if err := d.api.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

func (d *Dashboard) MarkAttendance(ctx context.Context, employeeID string, status attendancemodels.Status) (*attendancemodels.Record, error) {
	r, err := d.api.MarkAttendance(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return r, d.Refresh(ctx)
}

// AttendancePercent is the formatted attendance of one cached employee.
func (d *Dashboard) AttendancePercent(employeeID string) string {
	return AttendancePercent(d.Summary(), employeeID)
}

// AttendanceInsights summarises the cached attendance report.
func (d *Dashboard) AttendanceInsights() AttendanceInsights {
	return ComputeAttendanceInsights(d.Summary())
}
