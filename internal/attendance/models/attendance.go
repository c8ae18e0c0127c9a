package models

import (
	"strings"
	"time"

	dErrors "roster/pkg/domain-errors"
)

// Status is the outcome recorded for an employee on a day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one attendance mark. (EmployeeID, Date) is unique; marking the same
// employee twice on one day overwrites Status.
//
// EmployeeID references an employee without owning it.
type Record struct {
	ID         string    `json:"_id"`
	EmployeeID string    `json:"employeeId"`
	Date       Day       `json:"date"`
	Status     Status    `json:"status"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Key returns the composite identity of the record.
func (r *Record) Key() string {
	return r.EmployeeID + "|" + r.Date.String()
}

// MarkRequest is the body of POST /attendance.
type MarkRequest struct {
	EmployeeID string `json:"employeeId"`
	Status     Status `json:"status"`
}

// Normalize trims the employee reference.
func (r *MarkRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
}

// Validate requires an employee reference and a known status.
func (r *MarkRequest) Validate() error {
	if r.EmployeeID == "" {
		return dErrors.New(dErrors.CodeValidation, "employeeId is required")
	}
	if !r.Status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "status must be Present or Absent")
	}
	return nil
}
