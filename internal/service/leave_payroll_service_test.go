package service

import (
	"testing"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func notificationTypes(notes []domain.Notification) []string {
	types := make([]string, 0, len(notes))
	for _, n := range notes {
		types = append(types, n.Type)
	}
	return types
}

func TestLeave_ApplyThenApprove(t *testing.T) {
	env := newStoredEnv(t)

	leave, err := env.services.Leaves.Apply(asEmployee(), &dto.CreateLeaveRequest{
		EmployeeID: 5, StartDate: "2024-07-01", EndDate: "2024-07-05", Type: "annual",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, leave.Status)

	_, err = env.services.Leaves.Update(asEmployee(), leave.ID, &dto.UpdateLeaveRequest{Status: strPtr(domain.StatusApproved)})
	require.ErrorIs(t, err, domain.ErrForbidden)

	approved, err := env.services.Leaves.Update(asManager(), leave.ID, &dto.UpdateLeaveRequest{Status: strPtr(domain.StatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, "annual", approved.Type)

	notes := env.notifications(t)
	assert.Equal(t, []string{
		domain.NotifyLeaveApplied, domain.NotifyLeaveApplied,
		domain.NotifyLeaveApproved, domain.NotifyLeaveApproved,
	}, notificationTypes(notes))
	assert.Equal(t, int64(5), notes[2].UserID)
	assert.Equal(t, int64(testAdminID), notes[3].UserID)
	require.NotNil(t, notes[2].RelatedLeave)
	assert.Equal(t, leave.ID, *notes[2].RelatedLeave)
}

func TestLeave_RejectedOnCreate(t *testing.T) {
	env := newStoredEnv(t)

	_, err := env.services.Leaves.Apply(asManager(), &dto.CreateLeaveRequest{
		EmployeeID: 5, StartDate: "2024-07-01", EndDate: "2024-07-02", Type: "sick", Status: strPtr(domain.StatusRejected),
	})
	require.NoError(t, err)

	assert.Contains(t, notificationTypes(env.notifications(t)), domain.NotifyLeaveRejected)
}

func TestPayrollCreate_ComputesNetPay(t *testing.T) {
	env := newStoredEnv(t)

	payroll, err := env.services.Payrolls.Create(asManager(), &dto.CreatePayrollRequest{
		EmployeeID: 5, Period: "2024-06", BaseSalary: decPtr("1000"), Bonus: decPtr("200"), Deductions: decPtr("50"),
	})
	require.NoError(t, err)
	assert.True(t, payroll.NetPay.Equal(decimal.RequireFromString("1150")), payroll.NetPay.String())
	assert.Equal(t, domain.PayrollPending, payroll.Status)

	notes := env.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyPayrollCreated, notes[0].Type)
	assert.Equal(t, int64(5), notes[0].UserID)
}

func TestPayrollCreate_MissingAmountsAreZero(t *testing.T) {
	env := newStoredEnv(t)

	payroll, err := env.services.Payrolls.Create(asManager(), &dto.CreatePayrollRequest{
		EmployeeID: 5, Period: "2024-06", BaseSalary: decPtr("1000.50"),
	})
	require.NoError(t, err)
	assert.True(t, payroll.NetPay.Equal(decimal.RequireFromString("1000.50")))
}

func TestPayrollUpdate_RecomputesAndNotifiesPaid(t *testing.T) {
	env := newStoredEnv(t)

	payroll, err := env.services.Payrolls.Create(asManager(), &dto.CreatePayrollRequest{
		EmployeeID: 5, Period: "2024-06", BaseSalary: decPtr("1000"), Bonus: decPtr("200"), Deductions: decPtr("50"),
	})
	require.NoError(t, err)

	updated, err := env.services.Payrolls.Update(asManager(), payroll.ID, &dto.UpdatePayrollRequest{Bonus: decPtr("0")})
	require.NoError(t, err)
	assert.True(t, updated.NetPay.Equal(decimal.RequireFromString("950")), updated.NetPay.String())

	paid, err := env.services.Payrolls.Update(asManager(), payroll.ID, &dto.UpdatePayrollRequest{Status: strPtr(domain.PayrollPaid)})
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollPaid, paid.Status)
	assert.True(t, paid.NetPay.Equal(decimal.RequireFromString("950")))

	assert.Equal(t, []string{domain.NotifyPayrollCreated, domain.NotifyPayrollPaid}, notificationTypes(env.notifications(t)))
}

func TestPayroll_AmountsRoundedToStoredScale(t *testing.T) {
	env := newStoredEnv(t)

	payroll, err := env.services.Payrolls.Create(asManager(), &dto.CreatePayrollRequest{
		EmployeeID: 5, Period: "2024-06", BaseSalary: decPtr("0.005"), Bonus: decPtr("0.005"),
	})
	require.NoError(t, err)
	assert.True(t, payroll.BaseSalary.Equal(decimal.RequireFromString("0.01")), payroll.BaseSalary.String())
	assert.True(t, payroll.Bonus.Equal(decimal.RequireFromString("0.01")), payroll.Bonus.String())
	assert.True(t, payroll.NetPay.Equal(decimal.RequireFromString("0.02")), payroll.NetPay.String())

	updated, err := env.services.Payrolls.Update(asManager(), payroll.ID, &dto.UpdatePayrollRequest{
		BaseSalary: decPtr("1000.125"), Deductions: decPtr("0.004"),
	})
	require.NoError(t, err)
	assert.True(t, updated.BaseSalary.Equal(decimal.RequireFromString("1000.13")), updated.BaseSalary.String())
	assert.True(t, updated.Deductions.IsZero(), updated.Deductions.String())
	assert.True(t, updated.NetPay.Equal(decimal.RequireFromString("1000.14")), updated.NetPay.String())
	assert.True(t, updated.NetPay.Equal(domain.NetPay(updated.BaseSalary, updated.Bonus, updated.Deductions)))
}

func TestPayrollProcess(t *testing.T) {
	env := newStoredEnv(t)

	payroll, err := env.services.Payrolls.Process(asAdmin(), 9, &dto.ProcessPayrollRequest{
		Period: "2024-06", BaseSalary: decPtr("500"), Deductions: decPtr("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollProcessed, payroll.Status)
	assert.True(t, payroll.NetPay.Equal(decimal.RequireFromString("480")))

	notes := env.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyPayrollProcessed, notes[0].Type)
	assert.Equal(t, int64(9), notes[0].UserID)
}

func TestPayroll_EmployeeCannotList(t *testing.T) {
	env := newStoredEnv(t)

	_, err := env.services.Payrolls.List(asEmployee(), &dto.PayrollQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
