package repository

import (
	"context"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// PayrollFilter - параметры выборки начислений
type PayrollFilter struct {
	EmployeeID *int64
	Period     string
}

// PayrollRepository определяет интерфейс для работы с начислениями
type PayrollRepository interface {
	Create(ctx context.Context, payroll *domain.Payroll) error
	GetByID(ctx context.Context, id int64) (*domain.Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]domain.Payroll, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Payroll, error)
	Delete(ctx context.Context, id int64) error
}

type payrollRepository struct {
	crud[domain.Payroll]
}

// NewPayrollRepository создаёт новый экземпляр репозитория
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{crud[domain.Payroll]{db: db, entity: "payroll"}}
}

func (r *payrollRepository) Create(ctx context.Context, payroll *domain.Payroll) error {
	return r.create(ctx, payroll)
}

func (r *payrollRepository) GetByID(ctx context.Context, id int64) (*domain.Payroll, error) {
	return r.getByID(ctx, id)
}

func (r *payrollRepository) List(ctx context.Context, filter PayrollFilter) ([]domain.Payroll, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}

	var payrolls []domain.Payroll
	err := query.Find(&payrolls).Error
	return payrolls, err
}

func (r *payrollRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Payroll, error) {
	return r.update(ctx, id, patch)
}

func (r *payrollRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
