package dto

import (
	"github.com/employee-management-api/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateDepartmentRequest - запрос на создание подразделения
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	DepartmentID *int64 `json:"department_id" validate:"omitempty,min=1"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника
type UpdateEmployeeRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	DepartmentID *int64  `json:"department_id" validate:"omitempty,min=1"`
}

// EmployeeQuery - параметры списка сотрудников
type EmployeeQuery struct {
	Department string
	Search     string
	Page       int `validate:"min=1"`
	PageSize   int `validate:"min=1,max=100"`
}

// CreateTaskRequest - запрос на создание задачи
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=300"`
	Description *string `json:"description"`
	AssignedTo  int64   `json:"assigned_to" validate:"required,min=1"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,min=1,max=32"`
}

// UpdateTaskRequest - запрос на обновление задачи
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string `json:"description"`
	AssignedTo  *int64  `json:"assigned_to" validate:"omitempty,min=1"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,min=1,max=32"`
}

// ReviewTaskRequest - оценка выполнения задачи
type ReviewTaskRequest struct {
	Score *float64 `json:"score" validate:"omitempty,min=0"`
	Notes *string  `json:"notes"`
}

// TaskQuery - параметры списка задач
type TaskQuery struct {
	AssignedTo *int64
	Status     string
}

// CreateAttendanceRequest - запрос на создание отметки посещаемости
type CreateAttendanceRequest struct {
	EmployeeID int64   `json:"employee_id" validate:"required,min=1"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string  `json:"status" validate:"required,min=1,max=32"`
	Notes      *string `json:"notes"`
}

// UpdateAttendanceRequest - запрос на обновление отметки посещаемости
type UpdateAttendanceRequest struct {
	Status *string `json:"status" validate:"omitempty,min=1,max=32"`
	Notes  *string `json:"notes"`
}

// AttendanceQuery - фильтры посещаемости для списков и отчётов
type AttendanceQuery struct {
	EmployeeID *int64
	Department string
	Status     string
	StartDate  string `validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `validate:"omitempty,datetime=2006-01-02"`
}

// TrendQuery - параметры динамики посещаемости
type TrendQuery struct {
	AttendanceQuery
	Period string `validate:"oneof=weekly monthly"`
}

// ExportQuery - параметры выгрузки отчёта по посещаемости
type ExportQuery struct {
	AttendanceQuery
	Format string `validate:"oneof=csv excel"`
}

// KPIQuery - день, за который считаются показатели. Пустая дата - сегодня.
type KPIQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

// AttendanceSummary - сводка посещаемости по статусам
type AttendanceSummary struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

// AttendanceKPI - показатели посещаемости за день
type AttendanceKPI struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

// AttendanceStatusResponse - последняя отметка сотрудника
type AttendanceStatusResponse struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

// BulkUploadResponse - результат загрузки CSV
type BulkUploadResponse struct {
	Inserted int `json:"inserted"`
}

// CreateCorrectionRequest - запрос сотрудника на исправление посещаемости
type CreateCorrectionRequest struct {
	AttendanceID    int64   `json:"attendance_id" validate:"required,min=1"`
	EmployeeID      int64   `json:"employee_id" validate:"required,min=1"`
	RequestedStatus string  `json:"requested_status" validate:"required,min=1,max=32"`
	Reason          *string `json:"reason"`
}

// UpdateCorrectionRequest - решение по запросу на исправление
type UpdateCorrectionRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	ManagerNotes *string `json:"manager_notes"`
}

// CreateLeaveRequest - заявка на отпуск
type CreateLeaveRequest struct {
	EmployeeID int64   `json:"employee_id" validate:"required,min=1"`
	StartDate  string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type       string  `json:"type" validate:"required,min=1,max=64"`
	Reason     *string `json:"reason"`
	Status     *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// UpdateLeaveRequest - изменение заявки на отпуск
type UpdateLeaveRequest struct {
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Type      *string `json:"type" validate:"omitempty,min=1,max=64"`
	Reason    *string `json:"reason"`
	Status    *string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// LeaveQuery - параметры списка отпусков
type LeaveQuery struct {
	EmployeeID *int64
	Status     string
}

// CreatePayrollRequest - запрос на создание начисления
type CreatePayrollRequest struct {
	EmployeeID int64            `json:"employee_id" validate:"required,min=1"`
	Period     string           `json:"period" validate:"required,min=1,max=16"`
	BaseSalary *decimal.Decimal `json:"base_salary" validate:"required"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
	Status     *string          `json:"status" validate:"omitempty,oneof=pending processed paid"`
	Notes      *string          `json:"notes"`
}

// UpdatePayrollRequest - изменение начисления
type UpdatePayrollRequest struct {
	BaseSalary *decimal.Decimal `json:"base_salary"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
	Status     *string          `json:"status" validate:"omitempty,oneof=pending processed paid"`
	Notes      *string          `json:"notes"`
}

// ProcessPayrollRequest - расчёт и проведение начисления сотруднику
type ProcessPayrollRequest struct {
	Period     string           `json:"period" validate:"required,min=1,max=16"`
	BaseSalary *decimal.Decimal `json:"base_salary" validate:"required"`
	Bonus      *decimal.Decimal `json:"bonus"`
	Deductions *decimal.Decimal `json:"deductions"`
}

// PayrollQuery - параметры списка начислений
type PayrollQuery struct {
	EmployeeID *int64
	Period     string
}

// UploadDocumentRequest - метаданные загружаемого документа
type UploadDocumentRequest struct {
	EmployeeID  int64   `validate:"required,min=1"`
	Category    string  `validate:"required"`
	AccessLevel string  `validate:"required"`
	ExpiryDate  *string `validate:"omitempty"`
	Notes       *string
	Filename    string `validate:"required"`
	ContentType string
}

// DocumentQuery - параметры списка документов
type DocumentQuery struct {
	EmployeeID *int64
	Category   string
}

// RegisterRequest - регистрация пользователя
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest - вход по логину и паролю
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - выданный access токен
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ResetPasswordRequest - запрос кода сброса пароля
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordConfirm - установка нового пароля по коду
type ResetPasswordConfirm struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest - изменение учётной записи
type UpdateUserRequest struct {
	Email      *string      `json:"email" validate:"omitempty,email"`
	Role       *domain.Role `json:"role" validate:"omitempty,oneof=admin manager employee"`
	EmployeeID *int64       `json:"employee_id" validate:"omitempty,min=1"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse - ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
