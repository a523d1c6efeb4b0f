package service

import (
	"context"
	"testing"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeCreate_ResolvesDepartmentName(t *testing.T) {
	env := newStoredEnv(t)

	dept, err := env.services.Departments.Create(asManager(), &dto.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	emp, err := env.services.Employees.Create(asManager(), &dto.CreateEmployeeRequest{Name: "Alice", DepartmentID: &dept.ID})
	require.NoError(t, err)

	require.NotNil(t, emp.Department)
	assert.Equal(t, "Engineering", *emp.Department)
	assert.Equal(t, dept.ID, *emp.DepartmentID)
	assert.Empty(t, emp.Tasks)
}

func TestEmployeeCreate_UnknownDepartmentLeavesStoreUnchanged(t *testing.T) {
	env := newStoredEnv(t)

	_, err := env.services.Employees.Create(asManager(), &dto.CreateEmployeeRequest{Name: "Bob", DepartmentID: int64Ptr(99)})
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)

	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "department_id", domainErr.Field)
	assert.Equal(t, int64(99), domainErr.ID)

	employees, err := env.repos.Employees.List(context.Background(), repository.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestEmployeeUpdate_ChangesDepartment(t *testing.T) {
	env := newStoredEnv(t)

	sales, err := env.services.Departments.Create(asManager(), &dto.CreateDepartmentRequest{Name: "Sales"})
	require.NoError(t, err)
	emp := env.createEmployee(t, "Alice")

	updated, err := env.services.Employees.Update(asManager(), emp.ID, &dto.UpdateEmployeeRequest{DepartmentID: &sales.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Sales", *updated.Department)
	assert.Equal(t, "Alice", updated.Name)

	_, err = env.services.Employees.Update(asManager(), emp.ID, &dto.UpdateEmployeeRequest{DepartmentID: int64Ptr(77)})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.Equal(t, "Sales", *env.employee(t, emp.ID).Department)
}

func TestDepartmentRename_RefreshesEmployees(t *testing.T) {
	env := newStoredEnv(t)

	dept, err := env.services.Departments.Create(asManager(), &dto.CreateDepartmentRequest{Name: "Eng"})
	require.NoError(t, err)
	emp, err := env.services.Employees.Create(asManager(), &dto.CreateEmployeeRequest{Name: "Alice", DepartmentID: &dept.ID})
	require.NoError(t, err)

	_, err = env.services.Departments.Update(asManager(), dept.ID, &dto.UpdateDepartmentRequest{Name: strPtr("Engineering")})
	require.NoError(t, err)

	assert.Equal(t, "Engineering", *env.employee(t, emp.ID).Department)
}

func TestDepartmentDelete_ClearsEmployees(t *testing.T) {
	env := newStoredEnv(t)

	dept, err := env.services.Departments.Create(asManager(), &dto.CreateDepartmentRequest{Name: "Eng"})
	require.NoError(t, err)
	emp, err := env.services.Employees.Create(asManager(), &dto.CreateEmployeeRequest{Name: "Alice", DepartmentID: &dept.ID})
	require.NoError(t, err)

	require.ErrorIs(t, env.services.Departments.Delete(asManager(), dept.ID), domain.ErrForbidden)
	require.NoError(t, env.services.Departments.Delete(asAdmin(), dept.ID))

	got := env.employee(t, emp.ID)
	assert.Nil(t, got.DepartmentID)
	assert.Nil(t, got.Department)

	assert.ErrorIs(t, env.services.Departments.Delete(asAdmin(), dept.ID), domain.ErrNotFound)
}

func TestEmployeeExport_Table(t *testing.T) {
	env := newStoredEnv(t)
	env.createEmployee(t, "Alice")
	env.createEmployee(t, "Bob")

	table, err := env.services.Employees.Export(asManager())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "Alice", table.Rows[0][1])

	_, err = env.services.Employees.Export(asEmployee())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
