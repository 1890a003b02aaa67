// Package aggregate computes read-only views over an employee list.
// Functions are pure: no I/O, no shared state, and the input slice is never
// modified.
package aggregate

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"employee-api/internal/domain"
)

// DefaultTopN is the size used by the top earners view.
const DefaultTopN = 10

// HighestSalary returns the largest salary among records that have one,
// or 0 when none do (including an empty or nil list).
func HighestSalary(employees []domain.Employee) int {
	highest, found := 0, false
	for _, e := range employees {
		if !e.HasSalary() {
			continue
		}
		if !found || *e.Salary > highest {
			highest, found = *e.Salary, true
		}
	}
	return highest
}

// TopNEarners returns the names of the n best paid employees, highest first.
// Records without a salary or a name are skipped. Equal salaries keep their
// input order.
func TopNEarners(employees []domain.Employee, n int) []string {
	if n <= 0 {
		return []string{}
	}

	ranked := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.HasSalary() && e.HasName() {
			ranked = append(ranked, e)
		}
	}

	slices.SortStableFunc(ranked, func(a, b domain.Employee) int {
		// descending
		switch {
		case *a.Salary > *b.Salary:
			return -1
		case *a.Salary < *b.Salary:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	names := make([]string, 0, len(ranked))
	for _, e := range ranked {
		names = append(names, e.Name)
	}
	return names
}

// NameSearch returns the records whose name contains query under Unicode
// case folding ("STRASSE" finds "Straße"), in input order. A blank query is rejected before reaching here.
func NameSearch(employees []domain.Employee, query string) []domain.Employee {
	out := make([]domain.Employee, 0)
	needle := fold(query)
	for _, e := range employees {
		if !e.HasName() {
			continue
		}
		if strings.Contains(fold(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// fold applies full Unicode case folding. A Caser is stateful, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
