package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"employee-api/internal/domain"
)

// Keep header order EXACT.
var rosterHeader = []string{
	"ID",
	"NAME",
	"SALARY",
	"AGE",
	"TITLE",
	"EMAIL",
}

// WriteRosterCSV writes one row per employee. Salary and age are left empty
// when upstream did not supply them.
func WriteRosterCSV(w io.Writer, emps []domain.Employee) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(rosterHeader); err != nil {
		return err
	}
	for _, e := range emps {
		if err := cw.Write(toRosterRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRosterRow(e domain.Employee) []string {
	salary := ""
	if e.HasSalary() {
		salary = strconv.Itoa(*e.Salary)
	}
	age := ""
	if e.Age > 0 {
		age = strconv.Itoa(e.Age)
	}
	return []string{
		strings.TrimSpace(e.ID),
		cleanString(e.Name),
		salary,
		age,
		cleanString(e.Title),
		strings.TrimSpace(e.Email),
	}
}

// cleanString trims s and flattens embedded newlines.
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
