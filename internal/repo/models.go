package repo

// Role określa uprawnienia użytkownika.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleInspector Role = "INSPECTOR"
)

// User reprezentuje lokalny rekord użytkownika powiązany 1:1
// z zewnętrznym subject id dostawcy tożsamości.
type User struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

// IsAdmin to jedyne źródło prawdy o uprawnieniach administracyjnych.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
