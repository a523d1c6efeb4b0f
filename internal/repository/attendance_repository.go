package repository

import (
	"context"
	"errors"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// AttendanceFilter - параметры выборки отметок посещаемости.
// EmployeeIDs == nil означает отсутствие фильтра, пустой срез не совпадает ни с чем.
type AttendanceFilter struct {
	EmployeeID  *int64
	EmployeeIDs []int64
	Status      string
	Date        string
	StartDate   string
	EndDate     string
}

// AttendanceRepository определяет интерфейс для работы с посещаемостью
type AttendanceRepository interface {
	Create(ctx context.Context, att *domain.Attendance) error
	GetByID(ctx context.Context, id int64) (*domain.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error)
	Latest(ctx context.Context, employeeID int64) (*domain.Attendance, error)
	Update(ctx context.Context, id int64, patch Patch) (*domain.Attendance, error)
	Delete(ctx context.Context, id int64) error
}

type attendanceRepository struct {
	crud[domain.Attendance]
}

// NewAttendanceRepository создаёт новый экземпляр репозитория
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{crud[domain.Attendance]{db: db, entity: "attendance"}}
}

func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	return r.create(ctx, att)
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (*domain.Attendance, error) {
	return r.getByID(ctx, id)
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, error) {
	if filter.EmployeeIDs != nil && len(filter.EmployeeIDs) == 0 {
		return []domain.Attendance{}, nil
	}

	query := r.db.WithContext(ctx).Order("id ASC")
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.EmployeeIDs != nil {
		query = query.Where("employee_id IN ?", filter.EmployeeIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	// Даты хранятся в ISO формате, поэтому строковое сравнение совпадает с календарным
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}

	var records []domain.Attendance
	err := query.Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Latest(ctx context.Context, employeeID int64) (*domain.Attendance, error) {
	var att domain.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Order("id DESC").
		First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("attendance for employee", employeeID)
		}
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) Update(ctx context.Context, id int64, patch Patch) (*domain.Attendance, error) {
	return r.update(ctx, id, patch)
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
