package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/internal/report/models"
	"roster/pkg/testutil"
)

type stubReports struct {
	summary  []models.AttendanceSummary
	insights models.SalaryInsights
	err      error
}

func (s stubReports) AttendanceSummary(context.Context) ([]models.AttendanceSummary, error) {
	return s.summary, s.err
}

func (s stubReports) SalaryInsights(context.Context) (models.SalaryInsights, error) {
	return s.insights, s.err
}

func newRouter(reports Service) http.Handler {
	r := chi.NewRouter()
	New(reports, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Register(r)
	return r
}

func TestAttendanceSummary(t *testing.T) {
	router := newRouter(stubReports{summary: []models.AttendanceSummary{
		{EmployeeID: "e1", TotalDays: 4, PresentDays: 3, Percentage: 75},
	}})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/attendance/summary"))
	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t, `[{"employeeId":"e1","totalDays":4,"presentDays":3,"percentage":75}]`, rr.Body.String())
}

func TestSalaryInsightsZeros(t *testing.T) {
	router := newRouter(stubReports{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/employees/insights"))
	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t,
		`{"totalEmployees":0,"totalSalary":0,"avgSalary":0,"highestSalary":0,"lowestSalary":0}`,
		rr.Body.String())
}

func TestInternalFailureHidesCause(t *testing.T) {
	router := newRouter(stubReports{err: errors.New("pq: connection refused")})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/employees/insights"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
	testutil.AssertErrorCode(t, rr, "internal_error")
}
