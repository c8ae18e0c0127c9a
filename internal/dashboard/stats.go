package dashboard

import (
	"fmt"
	"sort"

	reportmodels "roster/internal/report/models"
)

// DefaultTopSalaries is how many employees the salary chart shows.
const DefaultTopSalaries = 12

// Insights summarises salaries over a filtered view. Malformed salaries count as 0.
type Insights struct {
	TotalEmployees int     `json:"totalEmployees"`
	TotalSalary    float64 `json:"totalSalary"`
	AvgSalary      float64 `json:"avgSalary"`
	HighestSalary  float64 `json:"highestSalary"`
	LowestSalary   float64 `json:"lowestSalary"`
}

// ComputeInsights derives Insights from employees.
func ComputeInsights(employees []Employee) Insights {
	if len(employees) == 0 {
		return Insights{}
	}
	out := Insights{
		TotalEmployees: len(employees),
		HighestSalary:  employees[0].SalaryValue(),
		LowestSalary:   employees[0].SalaryValue(),
	}
	for _, e := range employees {
		v := e.SalaryValue()
		out.TotalSalary += v
		out.HighestSalary = max(out.HighestSalary, v)
		out.LowestSalary = min(out.LowestSalary, v)
	}
	out.AvgSalary = out.TotalSalary / float64(len(employees))
	return out
}

// SalaryPoint is one bar of the top-salaries chart.
type SalaryPoint struct {
	Name   string  `json:"name"`
	Salary float64 `json:"salary"`
}

// TopSalaries returns the n best-paid employees, highest first. Ties keep roster order.
func TopSalaries(employees []Employee, n int) []SalaryPoint {
	points := make([]SalaryPoint, 0, len(employees))
	for _, e := range employees {
		name := e.Name
		if name == "" {
			name = "Unknown"
		}
		points = append(points, SalaryPoint{Name: name, Salary: e.SalaryValue()})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Salary > points[j].Salary })
	if n >= 0 && len(points) > n {
		points = points[:n]
	}
	return points
}

// DepartmentTotal is the salary spend of one department.
type DepartmentTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// DepartmentCount is the headcount of one department.
type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SalaryByDepartment totals salary per normalised department, in order of first
// appearance.
func SalaryByDepartment(employees []Employee) []DepartmentTotal {
	var out []DepartmentTotal
	index := make(map[string]int)
	for _, e := range employees {
		key := NormalizeDepartment(e.Department)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DepartmentTotal{Name: FormatDepartment(key)})
		}
		out[i].Total += e.SalaryValue()
	}
	return out
}

// CountByDepartment counts employees per normalised department, in order of first
// appearance.
func CountByDepartment(employees []Employee) []DepartmentCount {
	var out []DepartmentCount
	index := make(map[string]int)
	for _, e := range employees {
		key := NormalizeDepartment(e.Department)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DepartmentCount{Name: FormatDepartment(key)})
		}
		out[i].Count++
	}
	return out
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// AttendancePercent returns the formatted attendance of one employee, or "0%" when
// the employee has no marks.
func AttendancePercent(summary []reportmodels.AttendanceSummary, employeeID string) string {
	for _, s := range summary {
		if s.EmployeeID == employeeID {
			return FormatPercent(s.Percentage)
		}
	}
	return "0%"
}

// AttendanceInsights summarises the attendance report.
type AttendanceInsights struct {
	Average float64 `json:"average"`
	Perfect int     `json:"perfect"`
	Poor    int     `json:"poor"`
	Tracked int     `json:"tracked"`
}

// AverageLabel renders Average the way the dashboard shows it.
func (a AttendanceInsights) AverageLabel() string {
	if a.Tracked == 0 {
		return "0%"
	}
	return FormatPercent(a.Average)
}

// PoorAttendanceThreshold is the percentage below which attendance counts as poor.
const PoorAttendanceThreshold = 50

// ComputeAttendanceInsights averages percentages and counts perfect (100%) and poor
// (below 50%) attendance.
func ComputeAttendanceInsights(summary []reportmodels.AttendanceSummary) AttendanceInsights {
	out := AttendanceInsights{Tracked: len(summary)}
	if len(summary) == 0 {
		return out
	}
	var total float64
	for _, s := range summary {
		total += s.Percentage
		if s.Percentage == 100 {
			out.Perfect++
		}
		if s.Percentage < PoorAttendanceThreshold {
			out.Poor++
		}
	}
	out.Average = total / float64(len(summary))
	return out
}
