package dashboard

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	reportmodels "roster/internal/report/models"
)

// Workbook sheet names.
const (
	SheetEmployees   = "Employees"
	SheetInsights    = "Insights"
	SheetDepartments = "Departments"
	SheetAttendance  = "Attendance"
)

// ExportXLSX writes the filtered view and its statistics as a workbook.
func (d *Dashboard) ExportXLSX(w io.Writer, f Filter) error {
	return WriteWorkbook(w, d.View(f), d.Summary())
}

// WriteWorkbook renders employees and the attendance summary into an .xlsx file.
func WriteWorkbook(w io.Writer, employees []Employee, summary []reportmodels.AttendanceSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetEmployees); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetInsights, SheetDepartments, SheetAttendance} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	names := make(map[string]string, len(employees))
	employeeRows := make([][]any, 0, len(employees))
	for i, e := range employees {
		names[e.ID] = e.Name
		employeeRows = append(employeeRows, []any{
			i + 1, e.Name, e.Email, e.Phone, e.Address,
			FormatDepartment(e.Department), e.SalaryValue(), AttendancePercent(summary, e.ID),
		})
	}

	insights := ComputeInsights(employees)
	attendance := ComputeAttendanceInsights(summary)
	insightRows := [][]any{
		{"Total employees", insights.TotalEmployees},
		{"Total salary", insights.TotalSalary},
		{"Average salary", insights.AvgSalary},
		{"Highest salary", insights.HighestSalary},
		{"Lowest salary", insights.LowestSalary},
		{"Average attendance", attendance.AverageLabel()},
		{"Perfect attendance", attendance.Perfect},
		{"Poor attendance", attendance.Poor},
	}

	counts := CountByDepartment(employees)
	totals := SalaryByDepartment(employees)
	departmentRows := make([][]any, 0, len(counts))
	for i := range counts {
		departmentRows = append(departmentRows, []any{counts[i].Name, counts[i].Count, totals[i].Total})
	}

	attendanceRows := make([][]any, 0, len(summary))
	for _, s := range summary {
		attendanceRows = append(attendanceRows, []any{
			s.EmployeeID, names[s.EmployeeID], s.TotalDays, s.PresentDays, FormatPercent(s.Percentage),
		})
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
	}{
		{SheetEmployees, []any{"No", "Name", "Email", "Phone", "Address", "Department", "Salary", "Attendance %"}, employeeRows},
		{SheetInsights, []any{"Metric", "Value"}, insightRows},
		{SheetDepartments, []any{"Department", "Employees", "Total salary"}, departmentRows},
		{SheetAttendance, []any{"Employee ID", "Name", "Total days", "Present days", "Percentage"}, attendanceRows},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, header, s.columns, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, columns []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}
	return nil
}
