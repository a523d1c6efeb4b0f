package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с подразделениями
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentRepository struct {
	crud[domain.Department]
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{crud[domain.Department]{db: db, entity: "department"}}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.create(ctx, dept)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return r.getByID(ctx, id)
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Department, error) {
	return r.update(ctx, id, patch)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
