package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"roster/internal/employee/models"
	"roster/internal/platform/postgres"
	reportmodels "roster/internal/report/models"
	"roster/pkg/platform/sentinel"
	"roster/pkg/platform/tx"
)

// PostgresStore persists employees in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed employee store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeColumns = `id, name, email, phone, address, department, salary, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, e *models.Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.exec(ctx).ExecContext(ctx,
		`INSERT INTO employees (`+employeeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Name, e.Email, e.Phone, e.Address, e.Department, e.Salary, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sentinel.ErrNotFound
	}
	row := s.exec(ctx).QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *PostgresStore) Update(ctx context.Context, e *models.Employee) error {
	if _, err := uuid.Parse(e.ID); err != nil {
		return sentinel.ErrNotFound
	}
	res, err := s.exec(ctx).ExecContext(ctx,
		`UPDATE employees
		 SET name = $2, email = $3, phone = $4, address = $5, department = $6, salary = $7, updated_at = $8
		 WHERE id = $1`,
		e.ID, e.Name, e.Email, e.Phone, e.Address, e.Department, e.Salary, e.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// exec joins the transaction in ctx, if any.
func (s *PostgresStore) exec(ctx context.Context) tx.Executor {
	return tx.ExecutorFor(ctx, s.db)
}

// SalaryInsights aggregates in the database instead of shipping the roster to the caller.
func (s *PostgresStore) SalaryInsights(ctx context.Context) (reportmodels.SalaryInsights, error) {
	var out reportmodels.SalaryInsights
	err := s.exec(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(salary), 0),
		        COALESCE(AVG(salary), 0),
		        COALESCE(MAX(salary), 0),
		        COALESCE(MIN(salary), 0)
		 FROM employees`,
	).Scan(&out.TotalEmployees, &out.TotalSalary, &out.AvgSalary, &out.HighestSalary, &out.LowestSalary)
	if err != nil {
		return reportmodels.SalaryInsights{}, fmt.Errorf("aggregate salary insights: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var e models.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Address, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}
