package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	dErrors "roster/pkg/domain-errors"
)

// EmployeeRequest is the body of both create and full-replace update.
type EmployeeRequest struct {
	Name       string `json:"Name"`
	Email      string `json:"Email"`
	Phone      string `json:"Phone"`
	Address    string `json:"Address"`
	Department string `json:"Department"`
	Salary     Salary `json:"Salary"`
}

// Normalize trims identifying fields. Department is left exactly as submitted.
func (r *EmployeeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
}

// Validate enforces presence of every field and a numeric salary.
func (r *EmployeeRequest) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"Name", r.Name},
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"Address", r.Address},
		{"Department", r.Department},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if !r.Salary.Present {
		missing = append(missing, "Salary")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	if !r.Salary.Valid {
		return dErrors.New(dErrors.CodeValidation, "Salary must be a number")
	}
	return nil
}

// Salary accepts a JSON number or a numeric string, the way browser forms submit it.
// Present reports whether a non-empty value was supplied; Valid whether it parsed.
type Salary struct {
	Value   float64
	Present bool
	Valid   bool
}

// NewSalary returns a present, valid salary.
func NewSalary(v float64) Salary {
	return Salary{Value: v, Present: true, Valid: true}
}

func (s *Salary) UnmarshalJSON(data []byte) error {
	*s = Salary{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	} else {
		raw = string(data)
	}

	s.Present = true
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	s.Value = v
	s.Valid = true
	return nil
}

func (s Salary) MarshalJSON() ([]byte, error) {
	if !s.Present || !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
