package export

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"employee-api/internal/domain"
)

type xmlRoster struct {
	XMLName     xml.Name      `xml:"employee_roster"`
	GeneratedAt string        `xml:"generated_at,attr,omitempty"`
	Count       int           `xml:"count,attr"`
	Employees   []xmlEmployee `xml:"employee"`
}

type xmlEmployee struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name"`
	Salary *int   `xml:"salary,omitempty"`
	Age    int    `xml:"age,omitempty"`
	Title  string `xml:"title,omitempty"`
	Email  string `xml:"email,omitempty"`
}

// WriteRosterXML writes emps as an <employee_roster> document. A zero
// generatedAt omits the attribute.
func WriteRosterXML(w io.Writer, emps []domain.Employee, generatedAt time.Time) error {
	out := xmlRoster{
		Count:     len(emps),
		Employees: make([]xmlEmployee, 0, len(emps)),
	}
	if !generatedAt.IsZero() {
		out.GeneratedAt = generatedAt.UTC().Format(time.RFC3339)
	}
	for _, e := range emps {
		out.Employees = append(out.Employees, xmlEmployee{
			ID:     strings.TrimSpace(e.ID),
			Name:   cleanString(e.Name),
			Salary: e.Salary,
			Age:    e.Age,
			Title:  cleanString(e.Title),
			Email:  strings.TrimSpace(e.Email),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
