package models

// AttendanceSummary is the per-employee attendance rollup.
type AttendanceSummary struct {
	EmployeeID  string  `json:"employeeId"`
	TotalDays   int     `json:"totalDays"`
	PresentDays int     `json:"presentDays"`
	Percentage  float64 `json:"percentage"`
}

// SalaryInsights is the single-row roster salary rollup. Every field is zero for an
// empty roster.
type SalaryInsights struct {
	TotalEmployees int     `json:"totalEmployees"`
	TotalSalary    float64 `json:"totalSalary"`
	AvgSalary      float64 `json:"avgSalary"`
	HighestSalary  float64 `json:"highestSalary"`
	LowestSalary   float64 `json:"lowestSalary"`
}

// Percentage returns present/total*100, and exactly 0 when total is 0.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}
