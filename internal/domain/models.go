package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Department представляет подразделение организации
type Department struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Employee представляет сотрудника.
// Department хранит кэш имени подразделения, на которое ссылается DepartmentID.
// Tasks содержит идентификаторы задач, у которых assigned_to == ID.
type Employee struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string    `json:"name" gorm:"type:varchar(200);not null"`
	DepartmentID      *int64    `json:"department_id" gorm:"index"`
	Department        *string   `json:"department" gorm:"type:varchar(200)"`
	Tasks             []int64   `json:"tasks" gorm:"type:text;serializer:json"`
	PerformanceScores []float64 `json:"performance_scores" gorm:"type:text;serializer:json"`
	PerformanceNotes  []string  `json:"performance_notes" gorm:"type:text;serializer:json"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// AfterFind гарантирует, что списки никогда не отдаются как null
func (e *Employee) AfterFind(_ *gorm.DB) error {
	if e.Tasks == nil {
		e.Tasks = []int64{}
	}
	if e.PerformanceScores == nil {
		e.PerformanceScores = []float64{}
	}
	if e.PerformanceNotes == nil {
		e.PerformanceNotes = []string{}
	}
	return nil
}

// HasTask сообщает, числится ли задача за сотрудником
func (e *Employee) HasTask(taskID int64) bool {
	for _, id := range e.Tasks {
		if id == taskID {
			return true
		}
	}
	return false
}

// AddTask добавляет задачу в конец списка, если её там ещё нет
func (e *Employee) AddTask(taskID int64) bool {
	if e.HasTask(taskID) {
		return false
	}
	e.Tasks = append(e.Tasks, taskID)
	return true
}

// RemoveTask убирает задачу из списка
func (e *Employee) RemoveTask(taskID int64) bool {
	for i, id := range e.Tasks {
		if id == taskID {
			e.Tasks = append(e.Tasks[:i:i], e.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Task представляет задачу, назначенную сотруднику
type Task struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string    `json:"title" gorm:"type:varchar(300);not null"`
	Description      *string   `json:"description" gorm:"type:text"`
	AssignedTo       int64     `json:"assigned_to" gorm:"not null;index"`
	DueDate          *string   `json:"due_date" gorm:"type:varchar(32)"`
	Status           string    `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	PerformanceScore *float64  `json:"performance_score"`
	ReviewNotes      *string   `json:"review_notes" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Task) TableName() string {
	return "tasks"
}

// Attendance - отметка посещаемости за день.
// Несколько записей на одну пару (employee_id, date) допускаются.
type Attendance struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `json:"employee_id" gorm:"not null;index"`
	Date       string    `json:"date" gorm:"type:varchar(10);not null;index"`
	Status     string    `json:"status" gorm:"type:varchar(32);not null"`
	Notes      *string   `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Attendance) TableName() string {
	return "attendance"
}

// CorrectionRequest - запрос сотрудника на исправление отметки посещаемости
type CorrectionRequest struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AttendanceID    int64     `json:"attendance_id" gorm:"not null;index"`
	EmployeeID      int64     `json:"employee_id" gorm:"not null;index"`
	RequestedStatus string    `json:"requested_status" gorm:"type:varchar(32);not null"`
	Reason          *string   `json:"reason" gorm:"type:text"`
	Status          string    `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	ManagerNotes    *string   `json:"manager_notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (CorrectionRequest) TableName() string {
	return "correction_requests"
}

// Leave - заявка на отпуск
type Leave struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `json:"employee_id" gorm:"not null;index"`
	StartDate  string    `json:"start_date" gorm:"type:varchar(10);not null"`
	EndDate    string    `json:"end_date" gorm:"type:varchar(10);not null"`
	Type       string    `json:"type" gorm:"type:varchar(64);not null"`
	Reason     *string   `json:"reason" gorm:"type:text"`
	Status     string    `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Leave) TableName() string {
	return "leaves"
}

// Payroll - начисление за период. NetPay всегда равен BaseSalary + Bonus - Deductions.
type Payroll struct {
	ID         int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64           `json:"employee_id" gorm:"not null;index"`
	Period     string          `json:"period" gorm:"type:varchar(16);not null;index"`
	BaseSalary decimal.Decimal `json:"base_salary" gorm:"type:numeric(14,2);not null"`
	Bonus      decimal.Decimal `json:"bonus" gorm:"type:numeric(14,2);not null"`
	Deductions decimal.Decimal `json:"deductions" gorm:"type:numeric(14,2);not null"`
	NetPay     decimal.Decimal `json:"net_pay" gorm:"type:numeric(14,2);not null"`
	Status     string          `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	Notes      *string         `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Payroll) TableName() string {
	return "payrolls"
}

// MoneyScale - число знаков после запятой в денежных колонках (numeric(14,2))
const MoneyScale = 2

// RoundMoney приводит сумму к точности хранения, как это сделает БД
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// NetPay вычисляет сумму к выплате из сумм, уже приведённых к точности хранения
func NetPay(baseSalary, bonus, deductions decimal.Decimal) decimal.Decimal {
	return RoundMoney(baseSalary).Add(RoundMoney(bonus)).Sub(RoundMoney(deductions))
}

// Document - метаданные загруженного документа сотрудника
type Document struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64     `json:"employee_id" gorm:"not null;index"`
	Category    string    `json:"category" gorm:"type:varchar(32);not null"`
	AccessLevel string    `json:"access_level" gorm:"type:varchar(32);not null"`
	ExpiryDate  *string   `json:"expiry_date" gorm:"type:varchar(32)"`
	Notes       *string   `json:"notes" gorm:"type:text"`
	Filename    string    `json:"filename" gorm:"type:varchar(255);not null"`
	ContentType string    `json:"content_type" gorm:"type:varchar(255)"`
	StorageKey  string    `json:"-" gorm:"type:varchar(255);not null"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Document) TableName() string {
	return "documents"
}

// Notification - сообщение пользователю о событии в системе
type Notification struct {
	ID                int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID            int64     `json:"user_id" gorm:"not null;index"`
	Message           string    `json:"message" gorm:"type:text;not null"`
	Type              string    `json:"type" gorm:"type:varchar(64);not null"`
	Timestamp         time.Time `json:"timestamp" gorm:"autoCreateTime"`
	RelatedTask       *int64    `json:"related_task,omitempty"`
	RelatedAttendance *int64    `json:"related_attendance,omitempty"`
	RelatedLeave      *int64    `json:"related_leave,omitempty"`
}

// TableName задаёт имя таблицы для GORM
func (Notification) TableName() string {
	return "notifications"
}

// User - учётная запись для входа в систему
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         Role      `json:"role" gorm:"type:varchar(32);not null;default:employee"`
	EmployeeID   *int64    `json:"employee_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// PasswordReset - одноразовый код для сброса пароля
type PasswordReset struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;index"`
	OTP       string    `json:"-" gorm:"column:otp;type:varchar(16);not null"`
	Attempts  int       `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (PasswordReset) TableName() string {
	return "password_resets"
}

// AllModels перечисляет модели для AutoMigrate
func AllModels() []any {
	return []any{
		&Department{},
		&Employee{},
		&Task{},
		&Attendance{},
		&CorrectionRequest{},
		&Leave{},
		&Payroll{},
		&Document{},
		&Notification{},
		&User{},
		&PasswordReset{},
	}
}
