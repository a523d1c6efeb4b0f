package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// CorrectionFilter - параметры выборки запросов на исправление
type CorrectionFilter struct {
	EmployeeID *int64
	Status     string
}

// CorrectionRepository определяет интерфейс для работы с запросами на исправление посещаемости
type CorrectionRepository interface {
	Create(ctx context.Context, req *domain.CorrectionRequest) error
	GetByID(ctx context.Context, id int64) (*domain.CorrectionRequest, error)
	List(ctx context.Context, filter CorrectionFilter) ([]domain.CorrectionRequest, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.CorrectionRequest, error)
}

type correctionRepository struct {
	crud[domain.CorrectionRequest]
}

// NewCorrectionRepository создаёт новый экземпляр репозитория
func NewCorrectionRepository(db *gorm.DB) CorrectionRepository {
	return &correctionRepository{crud[domain.CorrectionRequest]{db: db, entity: "correction request"}}
}

func (r *correctionRepository) Create(ctx context.Context, req *domain.CorrectionRequest) error {
	return r.create(ctx, req)
}

func (r *correctionRepository) GetByID(ctx context.Context, id int64) (*domain.CorrectionRequest, error) {
	return r.getByID(ctx, id)
}

func (r *correctionRepository) List(ctx context.Context, filter CorrectionFilter) ([]domain.CorrectionRequest, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var requests []domain.CorrectionRequest
	err := query.Find(&requests).Error
	return requests, err
}

func (r *correctionRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.CorrectionRequest, error) {
	return r.update(ctx, id, patch)
}
