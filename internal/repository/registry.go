package repository

import (
	"context"

	"gorm.io/gorm"
)

// Registry объединяет все репозитории поверх одного подключения или транзакции
type Registry struct {
	db *gorm.DB

	Departments    DepartmentRepository
	Employees      EmployeeRepository
	Tasks          TaskRepository
	Attendance     AttendanceRepository
	Corrections    CorrectionRepository
	Leaves         LeaveRepository
	Payrolls       PayrollRepository
	Documents      DocumentRepository
	Notifications  NotificationRepository
	Users          UserRepository
	PasswordResets PasswordResetRepository
}

// NewRegistry создаёт набор репозиториев для db
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:             db,
		Departments:    NewDepartmentRepository(db),
		Employees:      NewEmployeeRepository(db),
		Tasks:          NewTaskRepository(db),
		Attendance:     NewAttendanceRepository(db),
		Corrections:    NewCorrectionRepository(db),
		Leaves:         NewLeaveRepository(db),
		Payrolls:       NewPayrollRepository(db),
		Documents:      NewDocumentRepository(db),
		Notifications:  NewNotificationRepository(db),
		Users:          NewUserRepository(db),
		PasswordResets: NewPasswordResetRepository(db),
	}
}

// Transaction выполняет fn в транзакции БД. Ошибка fn откатывает все изменения.
func (r *Registry) Transaction(ctx context.Context, fn func(tx *Registry) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRegistry(tx))
	})
}
