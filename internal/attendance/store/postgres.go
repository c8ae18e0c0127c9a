package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"roster/internal/attendance/models"
	"roster/internal/platform/postgres"
	reportmodels "roster/internal/report/models"
	"roster/pkg/platform/sentinel"
	"roster/pkg/platform/tx"
)

// PostgresStore persists attendance marks in PostgreSQL. The unique index on
// (employee_id, day) turns concurrent marks into a single row.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed attendance store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `id, employee_id, day::text, status, updated_at`

func (s *PostgresStore) Upsert(ctx context.Context, r *models.Record) (*models.Record, error) {
	if _, err := uuid.Parse(r.EmployeeID); err != nil {
		return nil, sentinel.ErrNotFound
	}
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	row := s.exec(ctx).QueryRowContext(ctx,
		`INSERT INTO attendance (id, employee_id, day, status, updated_at)
		 VALUES ($1, $2, $3::date, $4, $5)
		 ON CONFLICT (employee_id, day)
		 DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		 RETURNING `+recordColumns,
		id, r.EmployeeID, r.Date.String(), string(r.Status), r.UpdatedAt,
	)
	out, err := scanRecord(row)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, sentinel.ErrAlreadyUsed
		}
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Record, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM attendance ORDER BY seq`)
}

func (s *PostgresStore) ListByEmployee(ctx context.Context, employeeID string) ([]*models.Record, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, nil
	}
	return s.query(ctx, `SELECT `+recordColumns+` FROM attendance WHERE employee_id = $1 ORDER BY day`, employeeID)
}

func (s *PostgresStore) DeleteByEmployee(ctx context.Context, employeeID string) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil
	}
	if _, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

// exec joins the transaction in ctx, if any.
func (s *PostgresStore) exec(ctx context.Context) tx.Executor {
	return tx.ExecutorFor(ctx, s.db)
}

// AttendanceSummary groups in the database, ordered by each employee's first mark.
func (s *PostgresStore) AttendanceSummary(ctx context.Context) ([]reportmodels.AttendanceSummary, error) {
	rows, err := s.exec(ctx).QueryContext(ctx,
		`SELECT employee_id, COUNT(*), COUNT(*) FILTER (WHERE status = 'Present')
		 FROM attendance
		 GROUP BY employee_id
		 ORDER BY MIN(seq)`)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance summary: %w", err)
	}
	defer rows.Close()

	out := []reportmodels.AttendanceSummary{}
	for rows.Next() {
		var row reportmodels.AttendanceSummary
		if err := rows.Scan(&row.EmployeeID, &row.TotalDays, &row.PresentDays); err != nil {
			return nil, fmt.Errorf("scan attendance summary: %w", err)
		}
		row.Percentage = reportmodels.Percentage(row.PresentDays, row.TotalDays)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance summary: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []*models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		r      models.Record
		day    string
		status string
	)
	if err := row.Scan(&r.ID, &r.EmployeeID, &day, &status, &r.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := models.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrInvalidState, err)
	}
	r.Date = d
	r.Status = models.Status(status)
	return &r, nil
}
