package service

import (
	"context"
	"strings"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для подразделений
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentService struct {
	engine *Engine
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(engine *Engine) DepartmentService {
	return &departmentService{engine: engine}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	dept := &domain.Department{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Departments.Create(ctx, dept)
	})
	if err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Departments.GetByID(ctx, id)
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Departments.List(ctx)
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error) {
	if _, err := auth.Require(ctx, domain.Managers...); err != nil {
		return nil, err
	}

	patch := repository.Patch{}
	if req.Name != nil {
		patch.Set("name", strings.TrimSpace(*req.Name))
	}
	setIf(patch, "description", req.Description)

	var dept *domain.Department
	err := s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		var err error
		dept, err = tx.Departments.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		// Сотрудники хранят копию названия подразделения
		if patch.Has("name") {
			return tx.Employees.RenameDepartment(ctx, id, dept.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if err := tx.Departments.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Employees.ClearDepartment(ctx, id)
	})
}
