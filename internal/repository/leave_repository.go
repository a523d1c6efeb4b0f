package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// LeaveFilter - параметры выборки заявок на отпуск
type LeaveFilter struct {
	EmployeeID *int64
	Status     string
}

// LeaveRepository определяет интерфейс для работы с отпусками
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.Leave) error
	GetByID(ctx context.Context, id int64) (*domain.Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.Leave, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Leave, error)
	Delete(ctx context.Context, id int64) error
}

type leaveRepository struct {
	crud[domain.Leave]
}

// NewLeaveRepository создаёт новый экземпляр репозитория
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{crud[domain.Leave]{db: db, entity: "leave"}}
}

func (r *leaveRepository) Create(ctx context.Context, leave *domain.Leave) error {
	return r.create(ctx, leave)
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (*domain.Leave, error) {
	return r.getByID(ctx, id)
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.Leave, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var leaves []domain.Leave
	err := query.Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Leave, error) {
	return r.update(ctx, id, patch)
}

func (r *leaveRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
