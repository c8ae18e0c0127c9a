package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	attendancemodels "roster/internal/attendance/models"
	"roster/internal/dashboard"
	employeemodels "roster/internal/employee/models"
)

// DashboardOptions holds flags shared by the dashboard subcommands.
type DashboardOptions struct {
	*RootOptions
	APIURL  string
	Timeout time.Duration
	Search  string
	Band    string
}

// NewDashboardCommand creates the dashboard command group.
func NewDashboardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DashboardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse and edit the roster through the API",
		Long: `Browse and edit the roster through a running roster API.

The API address comes from --api or ROSTER_API_URL (default http://localhost:8000).`,
	}
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", "", "roster API base URL (overrides ROSTER_API_URL)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 8*time.Second, "per-request timeout for API calls")

	cmd.AddCommand(newDashboardListCommand(opts))
	cmd.AddCommand(newDashboardInsightsCommand(opts))
	cmd.AddCommand(newDashboardAttendanceCommand(opts))
	cmd.AddCommand(newDashboardAddCommand(opts))
	cmd.AddCommand(newDashboardUpdateCommand(opts))
	cmd.AddCommand(newDashboardDeleteCommand(opts))
	cmd.AddCommand(newDashboardMarkCommand(opts))
	cmd.AddCommand(newDashboardExportCommand(opts))

	return cmd
}

func (o *DashboardOptions) addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Search, "search", "", "case-insensitive match on name, email, phone or department")
	cmd.Flags().StringVar(&o.Band, "band", "all", "salary band (all|low|high)")
}

func (o *DashboardOptions) filter() (dashboard.Filter, error) {
	band, err := dashboard.ParseSalaryBand(o.Band)
	if err != nil {
		return dashboard.Filter{}, err
	}
	return dashboard.Filter{Search: o.Search, Band: band}, nil
}

// dashboard builds an empty Dashboard against the configured API. Mutations refresh
// it on their own.
func (o *DashboardOptions) dashboard() *dashboard.Dashboard {
	apiURL := o.APIURL
	if apiURL == "" {
		apiURL = o.Config.Dashboard.APIURL
	}
	client := dashboard.NewClient(apiURL, dashboard.WithHTTPClient(&http.Client{Timeout: o.Timeout}))
	return dashboard.New(client, dashboard.WithLogger(o.Logger))
}

// load builds a Dashboard and fills its cache.
func (o *DashboardOptions) load(cmd *cobra.Command) (*dashboard.Dashboard, error) {
	d := o.dashboard()
	if err := d.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return d, nil
}

func (o *DashboardOptions) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDashboardListCommand(opts *DashboardOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees with their attendance",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter()
			if err != nil {
				return err
			}
			d, err := opts.load(cmd)
			if err != nil {
				return err
			}
			view := d.View(f)
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), view)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NO\tID\tNAME\tEMAIL\tPHONE\tDEPARTMENT\tSALARY\tATTENDANCE")
			for i, e := range view {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
					i+1, e.ID, e.Name, e.Email, e.Phone,
					dashboard.FormatDepartment(e.Department), e.SalaryValue(), d.AttendancePercent(e.ID))
			}
			return tw.Flush()
		},
	}
	opts.addFilterFlags(cmd)
	return cmd
}

type insightsReport struct {
	Salary      dashboard.Insights          `json:"salary"`
	Top         []dashboard.SalaryPoint     `json:"topSalaries"`
	Departments []dashboard.DepartmentCount `json:"departments"`
	Spend       []dashboard.DepartmentTotal `json:"salaryByDepartment"`
}

func newDashboardInsightsCommand(opts *DashboardOptions) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Salary statistics over the filtered roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter()
			if err != nil {
				return err
			}
			d, err := opts.load(cmd)
			if err != nil {
				return err
			}
			view := d.View(f)
			report := insightsReport{
				Salary:      dashboard.ComputeInsights(view),
				Top:         dashboard.TopSalaries(view, top),
				Departments: dashboard.CountByDepartment(view),
				Spend:       dashboard.SalaryByDepartment(view),
			}
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total employees\t%d\n", report.Salary.TotalEmployees)
			fmt.Fprintf(tw, "Total salary\t%.2f\n", report.Salary.TotalSalary)
			fmt.Fprintf(tw, "Average salary\t%.2f\n", report.Salary.AvgSalary)
			fmt.Fprintf(tw, "Highest salary\t%.2f\n", report.Salary.HighestSalary)
			fmt.Fprintf(tw, "Lowest salary\t%.2f\n", report.Salary.LowestSalary)
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "DEPARTMENT\tEMPLOYEES\tSALARY")
			for i, c := range report.Departments {
				fmt.Fprintf(tw, "%s\t%d\t%.2f\n", c.Name, c.Count, report.Spend[i].Total)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "TOP SALARIES\t")
			for _, p := range report.Top {
				fmt.Fprintf(tw, "%s\t%.2f\n", p.Name, p.Salary)
			}
			return tw.Flush()
		},
	}
	opts.addFilterFlags(cmd)
	cmd.Flags().IntVar(&top, "top", dashboard.DefaultTopSalaries, "number of top salaries to show")
	return cmd
}

func newDashboardAttendanceCommand(opts *DashboardOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "Attendance percentages and insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd)
			if err != nil {
				return err
			}
			insights := d.AttendanceInsights()
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), map[string]any{
					"summary":  d.Summary(),
					"insights": insights,
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NO\tNAME\tDEPARTMENT\tATTENDANCE")
			for i, e := range d.Employees() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.Name, dashboard.FormatDepartment(e.Department), d.AttendancePercent(e.ID))
			}
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Average attendance\t%s\n", insights.AverageLabel())
			fmt.Fprintf(tw, "Perfect attendance\t%d\n", insights.Perfect)
			fmt.Fprintf(tw, "Poor attendance (<%d%%)\t%d\n", dashboard.PoorAttendanceThreshold, insights.Poor)
			return tw.Flush()
		},
	}
}

type employeeFlags struct {
	req    employeemodels.EmployeeRequest
	salary string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.req.Name, "name", "", "employee name")
	cmd.Flags().StringVar(&f.req.Email, "email", "", "employee email")
	cmd.Flags().StringVar(&f.req.Phone, "phone", "", "employee phone")
	cmd.Flags().StringVar(&f.req.Address, "address", "", "employee address")
	cmd.Flags().StringVar(&f.req.Department, "department", "", "employee department")
	cmd.Flags().StringVar(&f.salary, "salary", "", "employee salary")
}

// request converts the flags into an API request; the salary string is sent
// as-is and validated by the server.
func (f *employeeFlags) request() (*employeemodels.EmployeeRequest, error) {
	req := f.req
	raw, err := json.Marshal(f.salary)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &req.Salary); err != nil {
		return nil, err
	}
	if req.Salary.Present && !req.Salary.Valid {
		return nil, fmt.Errorf("salary %q is not a number", f.salary)
	}
	return &req, nil
}

func (o *DashboardOptions) printEmployee(cmd *cobra.Command, verb string, e *dashboard.Employee) error {
	if o.Format == "json" {
		return o.writeJSON(cmd.OutOrStdout(), e)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Employee %s successfully (%s)\n", verb, e.ID)
	return nil
}

func newDashboardAddCommand(opts *DashboardOptions) *cobra.Command {
	flags := &employeeFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			d := opts.dashboard()
			e, err := d.AddEmployee(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.printEmployee(cmd, "added", e)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDashboardUpdateCommand(opts *DashboardOptions) *cobra.Command {
	flags := &employeeFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an employee's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			d := opts.dashboard()
			e, err := d.UpdateEmployee(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return opts.printEmployee(cmd, "updated", e)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDashboardDeleteCommand(opts *DashboardOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := opts.dashboard()
			if err := d.DeleteEmployee(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %s deleted\n", args[0])
			return nil
		},
	}
}

func newDashboardMarkCommand(opts *DashboardOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <id> <Present|Absent>",
		Short: "Mark today's attendance for an employee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := attendancemodels.Status(args[1])
			if !status.IsValid() {
				return fmt.Errorf("status must be Present or Absent, got %q", args[1])
			}
			d := opts.dashboard()
			record, err := d.MarkAttendance(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return opts.writeJSON(cmd.OutOrStdout(), record)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s on %s (attendance %s)\n",
				record.EmployeeID, record.Status, record.Date, d.AttendancePercent(record.EmployeeID))
			return nil
		},
	}
}

func newDashboardExportCommand(opts *DashboardOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered roster and reports to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter()
			if err != nil {
				return err
			}
			d, err := opts.load(cmd)
			if err != nil {
				return err
			}
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := d.ExportXLSX(file, f); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	opts.addFilterFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "roster.xlsx", "output file")
	return cmd
}
