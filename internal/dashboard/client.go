package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	attendancemodels "roster/internal/attendance/models"
	employeemodels "roster/internal/employee/models"
	reportmodels "roster/internal/report/models"
	"roster/pkg/platform/httputil"
)

// Employee is an employee as the dashboard receives it. Salary is decoded leniently
// so a malformed value degrades to zero in the statistics instead of failing the load.
type Employee struct {
	ID         string                `json:"_id"`
	Name       string                `json:"Name"`
	Email      string                `json:"Email"`
	Phone      string                `json:"Phone"`
	Address    string                `json:"Address"`
	Department string                `json:"Department"`
	Salary     employeemodels.Salary `json:"Salary"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// SalaryValue returns the numeric salary, or 0 when it is missing or malformed.
func (e Employee) SalaryValue() float64 {
	if !e.Salary.Present || !e.Salary.Valid {
		return 0
	}
	return e.Salary.Value
}

// APIError is a non-2xx response from the roster API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error returns the server's message verbatim so it can be shown as-is.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return http.StatusText(e.Status)
}

// Client talks to the roster HTTP API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(c *Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient constructs a Client for the API at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req *employeemodels.EmployeeRequest) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPost, "/employees", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, req *employeemodels.EmployeeRequest) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil)
}

func (c *Client) MarkAttendance(ctx context.Context, employeeID string, status attendancemodels.Status) (*attendancemodels.Record, error) {
	body := attendancemodels.MarkRequest{EmployeeID: employeeID, Status: status}
	var out attendancemodels.Record
	if err := c.do(ctx, http.MethodPost, "/attendance", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AttendanceSummary(ctx context.Context) ([]reportmodels.AttendanceSummary, error) {
	var out []reportmodels.AttendanceSummary
	if err := c.do(ctx, http.MethodGet, "/attendance/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SalaryInsights(ctx context.Context) (reportmodels.SalaryInsights, error) {
	var out reportmodels.SalaryInsights
	err := c.do(ctx, http.MethodGet, "/employees/insights", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope httputil.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Code = envelope.Error
			apiErr.Message = envelope.ErrorDescription
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
