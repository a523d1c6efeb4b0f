package service

import (
	"context"
	"strings"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/repository"
)

// UserService определяет интерфейс управления учётными записями
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	engine *Engine
}

// NewUserService создаёт новый экземпляр сервиса
func NewUserService(engine *Engine) UserService {
	return &userService{engine: engine}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return nil, err
	}
	return s.engine.repos.Users.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if _, err := auth.Require(ctx, domain.AnyRole...); err != nil {
		return nil, err
	}
	return s.engine.repos.Users.GetByID(ctx, id)
}

// Update меняет учётную запись. Пользователь может менять только себя;
// роль и привязку к сотруднику меняет только администратор.
func (s *userService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error) {
	p, err := auth.Require(ctx, domain.AnyRole...)
	if err != nil {
		return nil, err
	}
	isAdmin := p.Role == domain.RoleAdmin
	if !isAdmin && (p.UserID != id || req.Role != nil || req.EmployeeID != nil) {
		return nil, domain.Forbidden("user", id)
	}

	patch := repository.Patch{}
	if req.Email != nil {
		patch.Set("email", strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	setIf(patch, "role", req.Role)
	setIf(patch, "employee_id", req.EmployeeID)

	var user *domain.User
	err = s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		if email, ok := patch["email"].(string); ok {
			existing, err := tx.Users.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return domain.Duplicate("user", "email")
			}
		}
		if req.EmployeeID != nil {
			if _, err := tx.Employees.GetByID(ctx, *req.EmployeeID); err != nil {
				if isNotFound(err) {
					return domain.ReferenceNotFound("employee", *req.EmployeeID, "employee_id")
				}
				return err
			}
		}
		var err error
		user, err = tx.Users.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := auth.Require(ctx, domain.AdminOnly...); err != nil {
		return err
	}

	return s.engine.mutate(ctx, func(tx *repository.Registry, _ *outbox) error {
		return tx.Users.Delete(ctx, id)
	})
}
