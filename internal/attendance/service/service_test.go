package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"roster/internal/attendance/metrics"
	"roster/internal/attendance/models"
	attendancestore "roster/internal/attendance/store"
	employeemodels "roster/internal/employee/models"
	employeestore "roster/internal/employee/store"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/requestcontext"
)

type AttendanceServiceSuite struct {
	suite.Suite
	ctx        context.Context
	employees  *employeestore.InMemory
	records    *attendancestore.InMemory
	metrics    *metrics.Metrics
	service    *Service
	employeeID string
}

func TestAttendanceServiceSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceSuite))
}

func (s *AttendanceServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, time.March, 4, 20, 0, 0, 0, time.UTC))
	s.employees = employeestore.NewInMemory()
	s.records = attendancestore.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())

	svc, err := New(s.records, s.employees, WithMetrics(s.metrics))
	s.Require().NoError(err)
	s.service = svc

	e := &employeemodels.Employee{Name: "Ada", Email: "ada@example.com", Salary: 70000}
	s.Require().NoError(s.employees.Create(context.Background(), e))
	s.employeeID = e.ID
}

func (s *AttendanceServiceSuite) TestNewRequiresDependencies() {
	_, err := New(nil, s.employees)
	s.Error(err)
	_, err = New(s.records, nil)
	s.Error(err)
}

func (s *AttendanceServiceSuite) TestMark() {
	s.Run("rejects missing employee id", func() {
		_, err := s.service.Mark(s.ctx, &models.MarkRequest{Status: models.StatusPresent})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects unknown status", func() {
		_, err := s.service.Mark(s.ctx, &models.MarkRequest{EmployeeID: s.employeeID, Status: "Late"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects unknown employee", func() {
		_, err := s.service.Mark(s.ctx, &models.MarkRequest{EmployeeID: "missing", Status: models.StatusPresent})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.UnknownEmployee))
	})

	s.Run("records today's mark in UTC by default", func() {
		record, err := s.service.Mark(s.ctx, &models.MarkRequest{EmployeeID: " " + s.employeeID + " ", Status: models.StatusPresent})
		s.Require().NoError(err)
		s.Equal(s.employeeID, record.EmployeeID)
		s.Equal("2024-03-04", record.Date.String())
		s.Equal(models.StatusPresent, record.Status)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Marks.WithLabelValues("Present")))
	})
}

func (s *AttendanceServiceSuite) TestRemarkSameDayOverwrites() {
	_, err := s.service.Mark(s.ctx, &models.MarkRequest{EmployeeID: s.employeeID, Status: models.StatusPresent})
	s.Require().NoError(err)
	_, err = s.service.Mark(s.ctx, &models.MarkRequest{EmployeeID: s.employeeID, Status: models.StatusAbsent})
	s.Require().NoError(err)

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(models.StatusAbsent, all[0].Status)
}

func (s *AttendanceServiceSuite) TestConfiguredLocationDecidesTheDay() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	s.Require().NoError(err)
	svc, err := New(s.records, s.employees, WithLocation(loc))
	s.Require().NoError(err)

	record, err := svc.Mark(s.ctx, &models.MarkRequest{EmployeeID: s.employeeID, Status: models.StatusPresent})
	s.Require().NoError(err)
	s.Equal("2024-03-05", record.Date.String())
}

func (s *AttendanceServiceSuite) TestHistory() {
	_, err := s.service.MarkOn(s.ctx, s.employeeID, models.StatusAbsent, models.NewDay(2024, time.March, 2))
	s.Require().NoError(err)
	_, err = s.service.MarkOn(s.ctx, s.employeeID, models.StatusPresent, models.NewDay(2024, time.March, 1))
	s.Require().NoError(err)

	records, err := s.service.History(s.ctx, s.employeeID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("2024-03-01", records[0].Date.String())

	_, err = s.service.History(s.ctx, "missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AttendanceServiceSuite) TestHistoryEmptyIsNotNil() {
	records, err := s.service.History(s.ctx, s.employeeID)
	s.Require().NoError(err)
	s.NotNil(records)
	s.Empty(records)
}

type failingStore struct{ Store }

func (failingStore) Upsert(context.Context, *models.Record) (*models.Record, error) {
	return nil, errors.New("disk on fire")
}

func (s *AttendanceServiceSuite) TestStoreFailureIsInternal() {
	svc, err := New(failingStore{}, s.employees)
	s.Require().NoError(err)
	_, err = svc.Mark(s.ctx, &models.MarkRequest{EmployeeID: s.employeeID, Status: models.StatusPresent})
	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
}
