package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	attendancehandler "roster/internal/attendance/handler"
	attendanceservice "roster/internal/attendance/service"
	attendancestore "roster/internal/attendance/store"
	employeehandler "roster/internal/employee/handler"
	employeemodels "roster/internal/employee/models"
	employeeservice "roster/internal/employee/service"
	employeestore "roster/internal/employee/store"
	"roster/internal/platform/metrics"
	"roster/internal/platform/middleware"
	reporthandler "roster/internal/report/handler"
	reportmodels "roster/internal/report/models"
	reportservice "roster/internal/report/service"
	"roster/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	employees := employeestore.NewInMemory()
	records := attendancestore.NewInMemory()

	employeeSvc, err := employeeservice.New(employees, employeeservice.WithAttendanceCleaner(records))
	s.Require().NoError(err)
	attendanceSvc, err := attendanceservice.New(records, employees)
	s.Require().NoError(err)
	reportSvc, err := reportservice.New(employees, records)
	s.Require().NoError(err)

	s.router = NewRouter(Deps{
		Logger:   logger,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Modules: []Registrar{
			reporthandler.New(reportSvc, logger),
			employeehandler.New(employeeSvc, logger),
			attendancehandler.New(attendanceSvc, logger),
		},
	})
}

func (s *RouterSuite) createEmployee(name, email string, salary float64) *employeemodels.Employee {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/employees", map[string]any{
		"Name":       name,
		"Email":      email,
		"Phone":      "555-0100",
		"Address":    "1 Main St",
		"Department": "Engineering",
		"Salary":     salary,
	})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[employeemodels.Employee](s.T(), rr)
}

func (s *RouterSuite) TestHealth() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "ok")
	s.NotEmpty(rr.Header().Get(middleware.RequestIDHeader))
}

func (s *RouterSuite) TestInsightsRouteIsNotAnEmployeeID() {
	s.createEmployee("Ada", "ada@example.com", 30000)
	s.createEmployee("Grace", "grace@example.com", 50000)
	s.createEmployee("Linus", "linus@example.com", 70000)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/employees/insights"))
	testutil.AssertStatusOK(s.T(), rr)
	insights := testutil.UnmarshalResponse[reportmodels.SalaryInsights](s.T(), rr)
	s.Equal(reportmodels.SalaryInsights{
		TotalEmployees: 3,
		TotalSalary:    150000,
		AvgSalary:      50000,
		HighestSalary:  70000,
		LowestSalary:   30000,
	}, *insights)
}

func (s *RouterSuite) TestAttendanceFlow() {
	e := s.createEmployee("Ada", "ada@example.com", 30000)

	for _, status := range []string{"Present", "Absent"} {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/attendance", map[string]string{
			"employeeId": e.ID,
			"status":     status,
		})
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/attendance/summary"))
	testutil.AssertStatusOK(s.T(), rr)
	summary := testutil.UnmarshalResponse[[]reportmodels.AttendanceSummary](s.T(), rr)
	s.Require().Len(*summary, 1)
	s.Equal(1, (*summary)[0].TotalDays)
	s.Equal(0, (*summary)[0].PresentDays)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/employees/"+e.ID+"/attendance"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `"status":"Absent"`)

	// deleting the employee cascades to its history
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/employees/"+e.ID))
	s.Equal(http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/attendance/summary"))
	s.JSONEq(`[]`, rr.Body.String())
}

func (s *RouterSuite) TestMarkUnknownEmployee() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/attendance", map[string]string{
		"employeeId": "does-not-exist",
		"status":     "Present",
	})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestUnknownRoute() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nope"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *RouterSuite) TestCORSPreflight() {
	req := testutil.NewRequest(s.T(), http.MethodOptions, "/employees")
	req.Header.Set("Origin", "http://localhost:5173")
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusNoContent, rr.Code)
	s.Equal("*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestRejectsNonJSONBody() {
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("Name=Ada"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnsupportedMediaType, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(Deps{Metrics: metrics.New(reg), Gatherer: reg})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `roster_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
