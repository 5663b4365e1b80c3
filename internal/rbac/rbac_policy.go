package rbac

import "karma-manager/internal/domain"

const AllCompanies = "*"

type Policy struct {
	Role     string
	Resource string
	Action   string
	Label    string
}

var (
	attendanceRead     = Policy{Resource: "attendance", Action: "read", Label: "View own attendance"}
	attendanceReadAll  = Policy{Resource: "attendance", Action: "read_all", Label: "View company attendance"}
	attendancePunch    = Policy{Resource: "attendance", Action: "punch", Label: "Punch in and out"}
	attendancePunchAny = Policy{Resource: "attendance", Action: "punch_any", Label: "Punch for another person"}
	peopleRead         = Policy{Resource: "people", Action: "read", Label: "View people directory"}
	presenceRead       = Policy{Resource: "presence", Action: "read", Label: "View who is in"}
	rbacRead           = Policy{Resource: "rbac", Action: "read", Label: "View own permissions"}
)

var rolePermissions = map[string][]Policy{
	domain.RoleSuperAdmin: {
		attendanceRead, attendanceReadAll, attendancePunch, attendancePunchAny,
		peopleRead, presenceRead, rbacRead,
	},
	domain.RoleClientAdmin: {
		attendanceRead, attendanceReadAll, attendancePunch, attendancePunchAny,
		peopleRead, presenceRead, rbacRead,
	},
	domain.RoleEmployee: {
		attendanceRead, attendancePunch, rbacRead,
	},
	domain.RoleParent: {
		attendanceRead, rbacRead,
	},
}

// DefaultPolicies is the built-in permission set of the dashboard roles.
func DefaultPolicies() []Policy {
	var out []Policy
	for role, perms := range rolePermissions {
		for _, p := range perms {
			p.Role = role
			out = append(out, p)
		}
	}
	return out
}
