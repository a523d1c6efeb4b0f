package service

import (
	"context"
	"fmt"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
	"github.com/shopspring/decimal"
)

// PayrollService определяет интерфейс бизнес-логики для начислений
type PayrollService interface {
	Create(ctx context.Context, req *dto.CreatePayrollRequest) (*domain.Payroll, error)
	GetByID(ctx context.Context, id int64) (*domain.Payroll, error)
	List(ctx context.Context, query *dto.PayrollQuery) ([]domain.Payroll, error)
	Update(ctx context.Context, id int64, req *dto.UpdatePayrollRequest) (*domain.Payroll, error)
	Process(ctx context.Context, employeeID int64, req *dto.ProcessPayrollRequest) (*domain.Payroll, error)
	Delete(ctx context.Context, id int64) error
}

type payrollService struct {
	engine *Engine
}

// NewPayrollService создаёт новый экземпляр сервиса
func NewPayrollService(engine *Engine) PayrollService {
	return &payrollService{engine: engine}
}

func (s *payrollService) Create(ctx context.Context, req *dto.CreatePayrollRequest) (*domain.Payroll, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	status := domain.PayrollPending
	if req.Status != nil {
		status = *req.Status
	}
	payroll := newPayroll(req.EmployeeID, req.Period, req.BaseSalary, req.Bonus, req.Deductions, status)
	payroll.Notes = req.Notes

	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Payrolls.Create(ctx, payroll); err != nil {
			return err
		}
		out.add(payroll.EmployeeID, domain.NotifyPayrollCreated,
			fmt.Sprintf("Payroll for %s created: net pay %s", payroll.Period, payroll.NetPay.StringFixed(2)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payroll, nil
}

func (s *payrollService) GetByID(ctx context.Context, id int64) (*domain.Payroll, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Payrolls.GetByID(ctx, id)
}

func (s *payrollService) List(ctx context.Context, query *dto.PayrollQuery) ([]domain.Payroll, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}
	return s.engine.repos.Payrolls.List(ctx, repository.PayrollFilter{
		EmployeeID: query.EmployeeID,
		Period:     query.Period,
	})
}

// Update применяет изменения; при изменении сумм net_pay пересчитывается из итоговых значений
func (s *payrollService) Update(ctx context.Context, id int64, req *dto.UpdatePayrollRequest) (*domain.Payroll, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	var payroll *domain.Payroll
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		current, err := tx.Payrolls.GetByID(ctx, id)
		if err != nil {
			return err
		}

		base, bonus, deductions := roundMoney(req.BaseSalary), roundMoney(req.Bonus), roundMoney(req.Deductions)

		patch := repository.Patch{}
		setIf(patch, "base_salary", base)
		setIf(patch, "bonus", bonus)
		setIf(patch, "deductions", deductions)
		setIf(patch, "status", req.Status)
		setIf(patch, "notes", req.Notes)

		if base != nil || bonus != nil || deductions != nil {
			patch.Set("net_pay", domain.NetPay(
				valueOr(base, current.BaseSalary),
				valueOr(bonus, current.Bonus),
				valueOr(deductions, current.Deductions),
			))
		}

		payroll, err = tx.Payrolls.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		if req.Status != nil && *req.Status == domain.PayrollPaid {
			out.add(payroll.EmployeeID, domain.NotifyPayrollPaid,
				fmt.Sprintf("Payroll for %s has been paid", payroll.Period))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payroll, nil
}

// Process рассчитывает и сразу проводит начисление сотруднику
func (s *payrollService) Process(ctx context.Context, employeeID int64, req *dto.ProcessPayrollRequest) (*domain.Payroll, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	payroll := newPayroll(employeeID, req.Period, req.BaseSalary, req.Bonus, req.Deductions, domain.PayrollProcessed)
	err := s.engine.mutate(ctx, func(tx *repository.Registry, out *outbox) error {
		if err := tx.Payrolls.Create(ctx, payroll); err != nil {
			return err
		}
		out.add(payroll.EmployeeID, domain.NotifyPayrollProcessed,
			fmt.Sprintf("Payroll for %s processed: net pay %s", payroll.Period, payroll.NetPay.StringFixed(2)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payroll, nil
}

func (s *payrollService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Payrolls.Delete(ctx, id)
	})
}

func newPayroll(employeeID int64, period string, base, bonus, deductions *decimal.Decimal, status string) *domain.Payroll {
	p := &domain.Payroll{
		EmployeeID: employeeID,
		Period:     period,
		BaseSalary: domain.RoundMoney(valueOr(base, decimal.Zero)),
		Bonus:      domain.RoundMoney(valueOr(bonus, decimal.Zero)),
		Deductions: domain.RoundMoney(valueOr(deductions, decimal.Zero)),
		Status:     status,
	}
	p.NetPay = domain.NetPay(p.BaseSalary, p.Bonus, p.Deductions)
	return p
}

func roundMoney(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	rounded := domain.RoundMoney(*amount)
	return &rounded
}

func valueOr[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
