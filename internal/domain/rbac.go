package domain

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// IsPrivilegedRole reports whether role may act on other employees' payroll data.
func IsPrivilegedRole(role string) bool {
	return role == RoleAdmin || role == RoleHR
}
