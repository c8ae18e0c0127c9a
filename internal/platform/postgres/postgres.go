// Package postgres opens the relational backend and owns its schema.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Open connects to dsn and verifies the connection before returning.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// schema is idempotent; Migrate may run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id          UUID PRIMARY KEY,
		seq         BIGSERIAL,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL,
		address     TEXT NOT NULL,
		department  TEXT NOT NULL,
		salary      DOUBLE PRECISION NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS employees_email_key ON employees (email)`,
	`CREATE INDEX IF NOT EXISTS employees_salary_idx ON employees (salary)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id           UUID PRIMARY KEY,
		seq          BIGSERIAL,
		employee_id  UUID NOT NULL,
		day          DATE NOT NULL,
		status       TEXT NOT NULL CHECK (status IN ('Present', 'Absent')),
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS attendance_employee_day_key ON attendance (employee_id, day)`,
}

// Migrate creates tables and indexes when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
