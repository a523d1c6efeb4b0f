package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// DocumentFilter - параметры выборки документов
type DocumentFilter struct {
	EmployeeID *int64
	Category   string
	// WithExpiry оставляет только документы с заполненной датой истечения
	WithExpiry bool
}

// DocumentRepository определяет интерфейс для работы с метаданными документов
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error)
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	crud[domain.Document]
}

// NewDocumentRepository создаёт новый экземпляр репозитория
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{crud[domain.Document]{db: db, entity: "document"}}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	return r.create(ctx, doc)
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	return r.getByID(ctx, id)
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]domain.Document, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.WithExpiry {
		query = query.Where("expiry_date IS NOT NULL AND expiry_date <> ''")
	}

	var docs []domain.Document
	err := query.Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
