package domain

// Статусы задач
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Статусы посещаемости
const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
	AttendanceAbsent  = "absent"
)

// Статусы заявок (отпуск, исправление посещаемости)
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Статусы начислений
const (
	PayrollPending   = "pending"
	PayrollProcessed = "processed"
	PayrollPaid      = "paid"
)

// Типы уведомлений
const (
	NotifyTaskAssigned        = "task_assigned"
	NotifyTaskCompleted       = "task_completed"
	NotifyTaskReviewed        = "task_reviewed"
	NotifyAttendanceLate      = "attendance_late"
	NotifyAttendanceAbsent    = "attendance_absent"
	NotifyCorrectionRequested = "correction_requested"
	NotifyCorrectionApproved  = "correction_approved"
	NotifyCorrectionRejected  = "correction_rejected"
	NotifyLeaveApplied        = "leave_applied"
	NotifyLeaveApproved       = "leave_approved"
	NotifyLeaveRejected       = "leave_rejected"
	NotifyPayrollCreated      = "payroll_created"
	NotifyPayrollProcessed    = "payroll_processed"
	NotifyPayrollPaid         = "payroll_paid"
)

// Категории документов
var DocumentCategories = []string{"ID", "Contract", "Certificate", "Other"}

// Уровни доступа к документам
var DocumentAccessLevels = []string{"employee", "manager", "admin"}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// ValidDocumentCategory проверяет категорию документа
func ValidDocumentCategory(c string) bool {
	return contains(DocumentCategories, c)
}

// ValidDocumentAccessLevel проверяет уровень доступа документа
func ValidDocumentAccessLevel(l string) bool {
	return contains(DocumentAccessLevels, l)
}
