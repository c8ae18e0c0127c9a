//go:build integration

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roster/internal/attendance/models"
	"roster/internal/platform/postgres"
	reportmodels "roster/internal/report/models"
	"roster/pkg/testutil/containers"
)

type backend interface {
	Upsert(ctx context.Context, r *models.Record) (*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*models.Record, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
	AttendanceSummary(ctx context.Context) ([]reportmodels.AttendanceSummary, error)
}

// BackendSuite runs the attendance store contract against a real database.
type BackendSuite struct {
	suite.Suite
	ctx   context.Context
	store backend
	reset func(ctx context.Context) error
	newID func() string
}

func (s *BackendSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.reset(s.ctx))
}

func (s *BackendSuite) upsert(employeeID string, day models.Day, status models.Status) *models.Record {
	out, err := s.store.Upsert(s.ctx, &models.Record{
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
		UpdatedAt:  time.Now().UTC(),
	})
	s.Require().NoError(err)
	return out
}

func (s *BackendSuite) TestUpsertOverwritesSameDay() {
	employeeID := s.newID()
	day := models.NewDay(2024, time.March, 4)

	first := s.upsert(employeeID, day, models.StatusPresent)
	second := s.upsert(employeeID, day, models.StatusAbsent)
	s.Equal(first.ID, second.ID)
	s.Equal("2024-03-04", second.Date.String())
	s.Equal(employeeID, second.EmployeeID)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(models.StatusAbsent, all[0].Status)
}

func (s *BackendSuite) TestConcurrentFirstMarks() {
	employeeID := s.newID()
	day := models.NewDay(2024, time.March, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Upsert(s.ctx, &models.Record{
				EmployeeID: employeeID, Date: day, Status: models.StatusPresent, UpdatedAt: time.Now().UTC(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	records, err := s.store.ListByEmployee(s.ctx, employeeID)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *BackendSuite) TestSummaryAndCascade() {
	a, b := s.newID(), s.newID()
	s.upsert(a, models.NewDay(2024, time.March, 1), models.StatusPresent)
	s.upsert(b, models.NewDay(2024, time.March, 1), models.StatusAbsent)
	s.upsert(a, models.NewDay(2024, time.March, 2), models.StatusAbsent)

	summary, err := s.store.AttendanceSummary(s.ctx)
	s.Require().NoError(err)
	s.Equal([]reportmodels.AttendanceSummary{
		{EmployeeID: a, TotalDays: 2, PresentDays: 1, Percentage: 50},
		{EmployeeID: b, TotalDays: 1, PresentDays: 0, Percentage: 0},
	}, summary)

	s.Require().NoError(s.store.DeleteByEmployee(s.ctx, a))
	s.Require().NoError(s.store.DeleteByEmployee(s.ctx, "malformed"))
	remaining, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(b, remaining[0].EmployeeID)
}

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	suite.Run(t, &BackendSuite{store: NewPostgres(pg.DB), reset: pg.Truncate, newID: uuid.NewString})
}

func TestPostgresDeleteJoinsTransaction(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	runner := postgres.NewTxRunner(pg.DB)
	ctx := context.Background()

	employeeID := uuid.NewString()
	_, err := store.Upsert(ctx, &models.Record{
		EmployeeID: employeeID,
		Date:       models.NewDay(2024, time.March, 4),
		Status:     models.StatusPresent,
		UpdatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	err = runner.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, store.DeleteByEmployee(ctx, employeeID))
		return errors.New("employee delete failed")
	})
	require.Error(t, err)

	history, err := store.ListByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, history, 1, "rolled back delete must keep history")

	require.NoError(t, runner.RunInTx(ctx, func(ctx context.Context) error {
		return store.DeleteByEmployee(ctx, employeeID)
	}))
	history, err = store.ListByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestMongoStore(t *testing.T) {
	mg := containers.NewMongoContainer(t)
	suite.Run(t, &BackendSuite{
		store: NewMongo(mg.DB),
		reset: mg.Clear,
		newID: func() string { return primitive.NewObjectID().Hex() },
	})
}
