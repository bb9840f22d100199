package models

// Council roles carried in the users table and in JWT claims.
const (
	RoleSuperAdmin = "super_admin"
	RoleChairman   = "SK_Chairman"
	RoleSecretary  = "Secretary"
	RoleTreasurer  = "Treasurer"
	RoleBMO        = "BMO"
)

var allRoles = []string{RoleSuperAdmin, RoleChairman, RoleSecretary, RoleTreasurer, RoleBMO}

func ValidRole(role string) bool {
	for _, r := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AutoApproves reports whether ledger writes by this role bypass the pending
// queue. The chairman is the approving authority, so their own entries are
// approved on creation; super_admin overrides everything.
func AutoApproves(role string) bool {
	return role == RoleChairman || role == RoleSuperAdmin
}

// CanApprove reports whether the role may approve or reject pending entries
// and allocations.
func CanApprove(role string) bool {
	return role == RoleChairman || role == RoleSuperAdmin
}
