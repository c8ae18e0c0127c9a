package dashboard

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnassignedDepartment groups employees whose department is blank.
const UnassignedDepartment = "unassigned"

var (
	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
)

// NormalizeDepartment is the grouping key for a department: trimmed and lowercased.
func NormalizeDepartment(dept string) string {
	dept = strings.TrimSpace(dept)
	if dept == "" {
		return UnassignedDepartment
	}
	return lower.String(dept)
}

// FormatDepartment renders a department label with only the first letter capitalised.
func FormatDepartment(dept string) string {
	dept = strings.TrimSpace(dept)
	if dept == "" {
		return "Unassigned"
	}
	first, size := utf8.DecodeRuneInString(dept)
	return upper.String(string(first)) + lower.String(dept[size:])
}
