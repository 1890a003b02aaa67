package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeDecodesUpstreamFields(t *testing.T) {
	raw := `{
		"id": "4a76c411-e94b-4cff-bbc2-a746249f175d",
		"employee_name": "Reid Graham",
		"employee_salary": 90155,
		"employee_age": 25,
		"employee_title": "Construction Producer",
		"employee_email": "konklux@company.com",
		"unknown_field": "ignored"
	}`

	var e Employee
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "4a76c411-e94b-4cff-bbc2-a746249f175d", e.ID)
	assert.Equal(t, "Reid Graham", e.Name)
	require.True(t, e.HasSalary())
	assert.Equal(t, 90155, *e.Salary)
	assert.Equal(t, 25, e.Age)
	assert.Equal(t, "Construction Producer", e.Title)
	assert.Equal(t, "konklux@company.com", e.Email)
}

func TestEmployeeMissingSalaryAndName(t *testing.T) {
	var e Employee
	require.NoError(t, json.Unmarshal([]byte(`{"id": "x", "employee_salary": null}`), &e))

	assert.False(t, e.HasSalary())
	assert.False(t, e.HasName())

	e.Name = "   "
	assert.False(t, e.HasName(), "blank name counts as absent")
}

func TestCreateEmployeeRequestWireNames(t *testing.T) {
	b, err := json.Marshal(CreateEmployeeRequest{Name: "Jill", Salary: 10, Age: 30, Title: "Eng", Email: "jill@company.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jill","salary":10,"age":30,"title":"Eng","email":"jill@company.com"}`, string(b))
}
