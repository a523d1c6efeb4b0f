package domain

// Role - роль пользователя в системе
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Наборы ролей, которые чаще всего встречаются в правилах доступа
var (
	AdminOnly     = []Role{RoleAdmin}
	Managers      = []Role{RoleAdmin, RoleManager}
	EmployeesOnly = []Role{RoleEmployee}
	AnyRole       = []Role{RoleAdmin, RoleManager, RoleEmployee}
)

// Valid сообщает, является ли роль одной из известных
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Authorize - единственный предикат проверки доступа
func Authorize(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
