package repository

import (
	"context"
	"strings"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeFilter - параметры выборки сотрудников
type EmployeeFilter struct {
	Department string
	Search     string
	Page       int
	PageSize   int
}

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	ListIDsByDepartmentName(ctx context.Context, department string) ([]int64, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Employee, error)
	Save(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	ClearDepartment(ctx context.Context, departmentID int64) error
	RenameDepartment(ctx context.Context, departmentID int64, name string) error
}

type employeeRepository struct {
	crud[domain.Employee]
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{crud[domain.Employee]{db: db, entity: "employee"}}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.create(ctx, emp)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.getByID(ctx, id)
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Order("id ASC")

	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(department) LIKE ? OR LOWER(performance_notes) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filter.PageSize > 0 {
		page := max(filter.Page, 1)
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var employees []domain.Employee
	err := query.Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) ListIDsByDepartmentName(ctx context.Context, department string) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department = ?", department).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *employeeRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Employee, error) {
	return r.update(ctx, id, patch)
}

func (r *employeeRepository) Save(ctx context.Context, emp *domain.Employee) error {
	return r.save(ctx, emp)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// ClearDepartment обнуляет ссылку на подразделение у всех его сотрудников
func (r *employeeRepository) ClearDepartment(ctx context.Context, departmentID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department_id = ?", departmentID).
		Updates(map[string]any{"department_id": nil, "department": nil}).Error
}

// RenameDepartment обновляет кэш имени подразделения у его сотрудников
func (r *employeeRepository) RenameDepartment(ctx context.Context, departmentID int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department_id = ?", departmentID).
		Update("department", name).Error
}
