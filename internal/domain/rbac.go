package domain

const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleClientAdmin = "CLIENT_ADMIN"
	RoleEmployee    = "EMPLOYEE"
	RoleParent      = "PARENT"
)

// IsPrivilegedRole reports whether role manages a whole company.
func IsPrivilegedRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleClientAdmin:
		return true
	default:
		return false
	}
}

type EnforceRequest struct {
	Role      string `json:"role" binding:"required"`
	CompanyID string `json:"company_id" binding:"required"`
	Resource  string `json:"resource" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
}
