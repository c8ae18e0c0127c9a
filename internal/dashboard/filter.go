package dashboard

import (
	"fmt"
	"strings"
)

// SalaryThreshold splits the low and high salary bands.
const SalaryThreshold = 50000

// SalaryBand selects employees by salary.
type SalaryBand string

const (
	BandAll  SalaryBand = "all"
	BandLow  SalaryBand = "low"
	BandHigh SalaryBand = "high"
)

// ParseSalaryBand accepts "", "all", "low" or "high".
func ParseSalaryBand(s string) (SalaryBand, error) {
	switch b := SalaryBand(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BandAll:
		return BandAll, nil
	case BandLow, BandHigh:
		return b, nil
	default:
		return "", fmt.Errorf("unknown salary band %q: must be all, low or high", s)
	}
}

// Filter narrows the cached roster without a round trip to the API.
type Filter struct {
	Search string
	Band   SalaryBand
}

// Matches reports whether e passes both the search and the salary band.
func (f Filter) Matches(e Employee) bool {
	return f.matchesSearch(e) && f.matchesBand(e)
}

// Apply returns the employees that match, preserving order.
func (f Filter) Apply(employees []Employee) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) matchesSearch(e Employee) bool {
	q := strings.ToLower(f.Search)
	if q == "" {
		return true
	}
	for _, v := range []string{e.Name, e.Email, e.Phone, e.Department} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func (f Filter) matchesBand(e Employee) bool {
	// A malformed salary never falls in either band.
	switch f.Band {
	case BandLow:
		return e.Salary.Valid && e.Salary.Value < SalaryThreshold
	case BandHigh:
		return e.Salary.Valid && e.Salary.Value >= SalaryThreshold
	default:
		return true
	}
}
