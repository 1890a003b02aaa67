package domain

import "strings"

// Employee is one record as served by the upstream employee service.
// Salary is nil when upstream omits it; Name is "" when absent.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary *int   `json:"employee_salary,omitempty"`
	Age    int    `json:"employee_age,omitempty"`
	Title  string `json:"employee_title,omitempty"`
	Email  string `json:"employee_email,omitempty"`
}

// HasSalary reports whether upstream supplied a salary.
func (e Employee) HasSalary() bool { return e.Salary != nil }

// HasName reports whether the record carries a non-blank name.
func (e Employee) HasName() bool { return strings.TrimSpace(e.Name) != "" }

// CreateEmployeeRequest is the body accepted by the create operation.
// Field rules are enforced by the routing layer before dispatch.
type CreateEmployeeRequest struct {
	Name   string `json:"name" validate:"required,notblank"`
	Salary int    `json:"salary" validate:"required,min=1"`
	Age    int    `json:"age" validate:"required,min=16,max=75"`
	Title  string `json:"title" validate:"required,notblank"`
	Email  string `json:"email" validate:"required,email"`
}

// DeleteEmployeeRequest is the upstream delete body; upstream deletes by name.
type DeleteEmployeeRequest struct {
	Name string `json:"name"`
}

// IntPtr is a small helper for building records with a salary.
func IntPtr(v int) *int { return &v }
