package navigation

import "github.com/reyvanevan/saas-admin-gateway/internal/core/domain"

// defaultSet is shown when nobody is signed in or the role is unrecognized:
// minimal but never empty.
var defaultSet = []domain.NavGroup{
	{Title: "General", Items: []domain.NavItem{itemDashboard}},
}

// roleSets maps every recognized role to its fixed navigation set. The table
// is data, not control flow; TestResolve_EveryRoleMapped keeps it exhaustive
// against the domain.Roles enumeration.
var roleSets = map[domain.Role][]domain.NavGroup{
	domain.RoleSuperAdmin: {
		{Title: "Platform Management", Items: []domain.NavItem{
			itemDashboard, itemTenants, itemSubscriptions, itemAnalytics, itemPlatformUsers, itemSettings,
		}},
	},
	domain.RoleDeveloper: catalog,
	domain.RoleBillingAdmin: {
		{Title: "Billing", Items: []domain.NavItem{
			itemDashboard, itemSubscriptions, itemTenants, itemReportsDoc,
		}},
	},
	domain.RoleSupport: {
		{Title: "Support", Items: []domain.NavItem{
			itemDashboard, itemTenants, itemTickets,
		}},
	},
	domain.RoleAdmin: {
		{Title: "Operations", Items: []domain.NavItem{
			itemDashboard, itemPOS, itemInventory, itemProducts, itemOutlets, itemSuppliers,
		}},
		{Title: "Management", Items: []domain.NavItem{
			itemReports, itemUsers, itemSettings,
		}},
	},
	domain.RoleManager: {
		{Title: "Operations", Items: []domain.NavItem{
			itemDashboard, itemPOS, itemInventory, itemProducts, itemOutlets, itemReports,
		}},
	},
	domain.RoleAccountant: {
		{Title: "Analytics", Items: []domain.NavItem{
			itemDashboard, itemReports, itemTransactions, itemInventory, itemProducts,
		}},
	},
	domain.RoleCashier: {
		{Title: "General", Items: []domain.NavItem{
			itemDashboard, itemPOS, itemProducts,
		}},
	},
	domain.RoleViewer: {
		{Title: "General", Items: []domain.NavItem{
			itemDashboard, itemReportsRO,
		}},
	},
}

// Resolve maps a role to its navigation set. Pure and deterministic: the same
// role always yields a value-equal structure, and the result is a fresh copy
// the caller may mutate freely. Unrecognized or absent roles fall back to the
// default set; Resolve never fails.
func Resolve(role domain.Role) []domain.NavGroup {
	if set, ok := roleSets[role]; ok {
		return domain.CloneNavGroups(set)
	}
	return domain.CloneNavGroups(defaultSet)
}

// ResolveString is Resolve for callers holding a raw role claim.
func ResolveString(role string) []domain.NavGroup {
	return Resolve(domain.ParseRole(role))
}
