package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-api/internal/apperr"
	"employee-api/internal/domain"
	"employee-api/internal/upstream/upstreamtest"
)

func runCLI(t *testing.T, fake *upstreamtest.Fake, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	err := run(context.Background(), append([]string{"-base-url", srv.URL}, args...), &out, &errOut)
	return out.String(), err
}

func seeded() *upstreamtest.Fake {
	return upstreamtest.New(upstreamtest.WithEmployees(
		domain.Employee{ID: "a", Name: "Tom Lang", Salary: domain.IntPtr(200), Email: "lang@company.com"},
		domain.Employee{ID: "b", Name: "Jim Donga", Salary: domain.IntPtr(100)},
	))
}

func TestListWithFields(t *testing.T) {
	out, err := runCLI(t, seeded(), "-fields", "id,employee_name", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","employee_name":"Tom Lang"},{"id":"b","employee_name":"Jim Donga"}]`, out)
}

func TestScalarCommands(t *testing.T) {
	out, err := runCLI(t, seeded(), "highest-salary")
	require.NoError(t, err)
	assert.JSONEq(t, `200`, out)

	out, err = runCLI(t, seeded(), "top-earners")
	require.NoError(t, err)
	assert.JSONEq(t, `["Tom Lang","Jim Donga"]`, out)

	out, err = runCLI(t, seeded(), "search", "JIM")
	require.NoError(t, err)
	var found []domain.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "b", found[0].ID)
}

func TestCreateAndDelete(t *testing.T) {
	fake := upstreamtest.New()
	out, err := runCLI(t, fake, "create", "Jill Smith", "100", "30", "Engineer", "jill@company.com")
	require.NoError(t, err)
	assert.Contains(t, out, `"employee_name": "Jill Smith"`)

	id := fake.Employees()[0].ID
	out, err = runCLI(t, fake, "delete", id)
	require.NoError(t, err)
	assert.JSONEq(t, `"Jill Smith"`, out)
	assert.Empty(t, fake.Employees())
}

func TestGetMissingReportsKind(t *testing.T) {
	_, err := runCLI(t, seeded(), "get", "zzz")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"get"},
		{"frobnicate"},
		{"create", "a", "b"},
	} {
		_, err := runCLI(t, seeded(), args...)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	_, err := runCLI(t, seeded(), "create", "Jill", "lots", "30", "Engineer", "j@c.io")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateRejectsInvalidRequestBeforeUpstream(t *testing.T) {
	fake := upstreamtest.New()
	_, err := runCLI(t, fake, "create", "Jill", "-5", "200", "   ", "not-an-email")

	aerr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, aerr.Kind)
	assert.Contains(t, aerr.Fields, "salary")
	assert.Contains(t, aerr.Fields, "age")
	assert.Contains(t, aerr.Fields, "title")
	assert.Contains(t, aerr.Fields, "email")
	assert.Zero(t, fake.CountMethod(http.MethodPost))
	assert.Empty(t, fake.Employees())
}
