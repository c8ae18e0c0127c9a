package models

import "time"

// Employee is a single roster entry.
//
// Invariants:
//   - ID is assigned by the store on creation and never changes
//   - Email is unique across all employees
//   - Department is free text; case and whitespace are kept as submitted
//
// JSON field names match the wire format the dashboard has always used.
type Employee struct {
	ID         string    `json:"_id"`
	Name       string    `json:"Name"`
	Email      string    `json:"Email"`
	Phone      string    `json:"Phone"`
	Address    string    `json:"Address"`
	Department string    `json:"Department"`
	Salary     float64   `json:"Salary"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ApplyFields replaces every mutable field from a validated request.
func (e *Employee) ApplyFields(req *EmployeeRequest, now time.Time) {
	e.Name = req.Name
	e.Email = req.Email
	e.Phone = req.Phone
	e.Address = req.Address
	e.Department = req.Department
	e.Salary = req.Salary.Value
	e.UpdatedAt = now
}
