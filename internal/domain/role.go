package domain

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker" // стилист
	RoleAdmin    Role = "admin"
)

// StaffRoles роли персонала салона
var StaffRoles = []Role{RoleWorker, RoleAdmin}

// In возвращает true, если роль входит в набор
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

// User пользователь (клиент, стилист или администратор)
// Роль читается только из хранилища, не из токена
type User struct {
	ID   int64
	Name string
	Role Role
}

// SystemUserID идентификатор внутреннего вызывающего (sweep-задачи)
const SystemUserID int64 = 0
