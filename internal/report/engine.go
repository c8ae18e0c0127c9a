// Package report derives attendance and salary rollups from stored records.
//
// The functions here are pure; callers pass the current store contents and get a
// freshly computed report back.
package report

import (
	attendancemodels "roster/internal/attendance/models"
	employeemodels "roster/internal/employee/models"
	"roster/internal/report/models"
)

// SummarizeAttendance groups records by employee. Employees without records do not
// appear. Rows are ordered by each employee's first record in the input.
func SummarizeAttendance(records []*attendancemodels.Record) []models.AttendanceSummary {
	out := []models.AttendanceSummary{}
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.EmployeeID]
		if !ok {
			i = len(out)
			index[r.EmployeeID] = i
			out = append(out, models.AttendanceSummary{EmployeeID: r.EmployeeID})
		}
		out[i].TotalDays++
		if r.Status == attendancemodels.StatusPresent {
			out[i].PresentDays++
		}
	}
	for i := range out {
		out[i].Percentage = models.Percentage(out[i].PresentDays, out[i].TotalDays)
	}
	return out
}

// ComputeSalaryInsights rolls up salaries across the whole roster.
func ComputeSalaryInsights(employees []*employeemodels.Employee) models.SalaryInsights {
	if len(employees) == 0 {
		return models.SalaryInsights{}
	}
	insights := models.SalaryInsights{
		TotalEmployees: len(employees),
		HighestSalary:  employees[0].Salary,
		LowestSalary:   employees[0].Salary,
	}
	for _, e := range employees {
		insights.TotalSalary += e.Salary
		insights.HighestSalary = max(insights.HighestSalary, e.Salary)
		insights.LowestSalary = min(insights.LowestSalary, e.Salary)
	}
	insights.AvgSalary = insights.TotalSalary / float64(len(employees))
	return insights
}
