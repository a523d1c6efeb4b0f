package service

import (
	"github.com/employee-management-api/internal/auth"
)

// Services - набор сервисов приложения поверх одного движка
type Services struct {
	Engine        *Engine
	Departments   DepartmentService
	Employees     EmployeeService
	Tasks         TaskService
	Attendance    AttendanceService
	Corrections   CorrectionService
	Leaves        LeaveService
	Payrolls      PayrollService
	Documents     DocumentService
	Notifications NotificationService
	Auth          AuthService
	Users         UserService
}

// New собирает все сервисы
func New(engine *Engine, blobs BlobStore, tokens *auth.TokenIssuer, resets PasswordResetPolicy) *Services {
	return &Services{
		Engine:        engine,
		Departments:   NewDepartmentService(engine),
		Employees:     NewEmployeeService(engine),
		Tasks:         NewTaskService(engine),
		Attendance:    NewAttendanceService(engine),
		Corrections:   NewCorrectionService(engine),
		Leaves:        NewLeaveService(engine),
		Payrolls:      NewPayrollService(engine),
		Documents:     NewDocumentService(engine, blobs),
		Notifications: NewNotificationService(engine),
		Auth:          NewAuthService(engine, tokens, resets),
		Users:         NewUserService(engine),
	}
}
