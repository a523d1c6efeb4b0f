package service

import (
	"context"
	"strings"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/export"
	"github.com/employee-management-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, query *dto.EmployeeQuery) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) (export.Table, error)
}

type employeeService struct {
	engine *Engine
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(engine *Engine) EmployeeService {
	return &employeeService{engine: engine}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		Name:              strings.TrimSpace(req.Name),
		Tasks:             []int64{},
		PerformanceScores: []float64{},
		PerformanceNotes:  []string{},
	}
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if req.DepartmentID != nil {
			name, err := resolveDepartment(ctx, tx.Departments, "employee", *req.DepartmentID)
			if err != nil {
				return err
			}
			emp.DepartmentID = req.DepartmentID
			emp.Department = &name
		}
		if err := tx.Employees.Create(ctx, emp); err != nil {
			return err
		}
		// Задачи, назначенные на этот id до появления сотрудника, попадают в его список
		assigned, err := tx.Tasks.List(ctx, repository.TaskFilter{AssignedTo: &emp.ID})
		if err != nil {
			return err
		}
		if len(assigned) == 0 {
			return nil
		}
		for _, task := range assigned {
			emp.AddTask(task.ID)
		}
		return tx.Employees.Save(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, query *dto.EmployeeQuery) ([]domain.Employee, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Employees.List(ctx, repository.EmployeeFilter{
		Department: query.Department,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	if req.Name != nil {
		patch.Set("name", strings.TrimSpace(*req.Name))
	}

	var emp *domain.Employee
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if req.DepartmentID != nil {
			name, err := resolveDepartment(ctx, tx.Departments, "employee", *req.DepartmentID)
			if err != nil {
				return err
			}
			patch.Set("department_id", *req.DepartmentID)
			patch.Set("department", name)
		}
		var err error
		emp, err = tx.Employees.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Employees.Delete(ctx, id)
	})
}

func (s *employeeService) Export(ctx context.Context) (export.Table, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return export.Table{}, err
	}

	employees, err := s.engine.repos.Employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return export.Table{}, err
	}
	return export.EmployeeTable(employees), nil
}
