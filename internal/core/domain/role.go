package domain

// Role is the closed set of access roles a user can hold. Platform roles
// operate across tenants; tenant roles are scoped to a single tenant.
// A user carries exactly one role.
type Role string

const (
	// Platform roles.
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleDeveloper    Role = "DEVELOPER"
	RoleBillingAdmin Role = "BILLING_ADMIN"
	RoleSupport      Role = "SUPPORT"

	// Tenant roles.
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleAccountant Role = "ACCOUNTANT"
	RoleCashier    Role = "CASHIER"
	RoleViewer     Role = "VIEWER"

	// RoleNone marks an absent or unrecognized role.
	RoleNone Role = ""
)

// Roles lists every recognized role, platform roles first.
var Roles = []Role{
	RoleSuperAdmin,
	RoleDeveloper,
	RoleBillingAdmin,
	RoleSupport,
	RoleAdmin,
	RoleManager,
	RoleAccountant,
	RoleCashier,
	RoleViewer,
}

// ParseRole converts a raw string to a Role. Anything outside the closed
// enumeration parses to RoleNone rather than an error — downstream consumers
// fail open to the minimal capability set.
func ParseRole(s string) Role {
	r := Role(s)
	if r.Valid() {
		return r
	}
	return RoleNone
}

// Valid reports whether r belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleDeveloper, RoleBillingAdmin, RoleSupport,
		RoleAdmin, RoleManager, RoleAccountant, RoleCashier, RoleViewer:
		return true
	}
	return false
}

// Platform reports whether r is a platform-level role.
func (r Role) Platform() bool {
	switch r {
	case RoleSuperAdmin, RoleDeveloper, RoleBillingAdmin, RoleSupport:
		return true
	}
	return false
}

// Tenant reports whether r is a tenant-scoped role.
func (r Role) Tenant() bool {
	return r.Valid() && !r.Platform()
}

func (r Role) String() string {
	return string(r)
}
