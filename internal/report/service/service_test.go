package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendancemodels "roster/internal/attendance/models"
	attendancestore "roster/internal/attendance/store"
	employeemodels "roster/internal/employee/models"
	employeestore "roster/internal/employee/store"
	"roster/internal/report/metrics"
	"roster/internal/report/models"
	dErrors "roster/pkg/domain-errors"
)

func seedEmployees(t *testing.T, salaries ...float64) (*employeestore.InMemory, []string) {
	t.Helper()
	store := employeestore.NewInMemory()
	ids := make([]string, 0, len(salaries))
	for i, salary := range salaries {
		e := &employeemodels.Employee{
			Name:   "Employee",
			Email:  string(rune('a'+i)) + "@example.com",
			Salary: salary,
		}
		require.NoError(t, store.Create(context.Background(), e))
		ids = append(ids, e.ID)
	}
	return store, ids
}

func TestSalaryInsightsFromListing(t *testing.T) {
	employees, _ := seedEmployees(t, 30000, 50000, 70000)
	reg := prometheus.NewRegistry()
	svc, err := New(employees, attendancestore.NewInMemory(), WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	insights, err := svc.SalaryInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SalaryInsights{
		TotalEmployees: 3,
		TotalSalary:    150000,
		AvgSalary:      50000,
		HighestSalary:  70000,
		LowestSalary:   30000,
	}, insights)

	count, err := testutil.GatherAndCount(reg, "roster_report_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSalaryInsightsEmptyRoster(t *testing.T) {
	svc, err := New(employeestore.NewInMemory(), attendancestore.NewInMemory())
	require.NoError(t, err)

	insights, err := svc.SalaryInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SalaryInsights{}, insights)
}

func TestAttendanceSummaryReflectsLastWrite(t *testing.T) {
	ctx := context.Background()
	employees, ids := seedEmployees(t, 40000)
	records := attendancestore.NewInMemory()
	day := attendancemodels.NewDay(2024, time.July, 1)

	for _, status := range []attendancemodels.Status{attendancemodels.StatusPresent, attendancemodels.StatusAbsent} {
		_, err := records.Upsert(ctx, &attendancemodels.Record{EmployeeID: ids[0], Date: day, Status: status})
		require.NoError(t, err)
	}

	svc, err := New(employees, records)
	require.NoError(t, err)
	summary, err := svc.AttendanceSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, models.AttendanceSummary{EmployeeID: ids[0], TotalDays: 1, PresentDays: 0, Percentage: 0}, summary[0])
}

type aggregatingEmployees struct {
	insights models.SalaryInsights
	err      error
}

func (a aggregatingEmployees) List(context.Context) ([]*employeemodels.Employee, error) {
	return nil, errors.New("listing must not be used when the store aggregates")
}

func (a aggregatingEmployees) SalaryInsights(context.Context) (models.SalaryInsights, error) {
	return a.insights, a.err
}

type aggregatingAttendance struct {
	summary []models.AttendanceSummary
}

func (a aggregatingAttendance) List(context.Context) ([]*attendancemodels.Record, error) {
	return nil, errors.New("listing must not be used when the store aggregates")
}

func (a aggregatingAttendance) AttendanceSummary(context.Context) ([]models.AttendanceSummary, error) {
	return a.summary, nil
}

func TestDelegatesToStoreAggregation(t *testing.T) {
	want := models.SalaryInsights{TotalEmployees: 1, TotalSalary: 10, AvgSalary: 10, HighestSalary: 10, LowestSalary: 10}
	svc, err := New(aggregatingEmployees{insights: want}, aggregatingAttendance{})
	require.NoError(t, err)

	got, err := svc.SalaryInsights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	summary, err := svc.AttendanceSummary(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, summary)
	assert.Empty(t, summary)
}

func TestAggregationFailureIsInternal(t *testing.T) {
	svc, err := New(aggregatingEmployees{err: errors.New("connection reset")}, aggregatingAttendance{})
	require.NoError(t, err)

	_, err = svc.SalaryInsights(context.Background())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
