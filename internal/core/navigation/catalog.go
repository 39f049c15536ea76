// Package navigation owns the static navigation catalog and the role →
// navigation-set resolution used by the dashboard shell.
package navigation

import "github.com/reyvanevan/saas-admin-gateway/internal/core/domain"

// Capability icon tags. The shell maps these to glyphs; the gateway only
// promises they are stable per capability.
const (
	iconDashboard     = "layout-dashboard"
	iconTenants       = "building"
	iconSubscriptions = "credit-card"
	iconAnalytics     = "bar-chart"
	iconUsers         = "users"
	iconSettings      = "settings"
	iconPOS           = "shopping-cart"
	iconInventory     = "warehouse"
	iconProducts      = "package"
	iconOutlets       = "store"
	iconSuppliers     = "truck"
	iconReports       = "line-chart"
	iconTransactions  = "file-text"
	iconSupport       = "headphones"
	iconReadOnly      = "eye"
)

// Every navigable item defined exactly once. Role sets below compose groups
// out of these; they never invent items of their own.
var (
	itemDashboard     = domain.NavItem{Title: "Dashboard", URL: "/", Icon: iconDashboard}
	itemTenants       = domain.NavItem{Title: "Tenants", URL: "/tenants", Icon: iconTenants}
	itemSubscriptions = domain.NavItem{Title: "Subscriptions", URL: "/subscriptions", Icon: iconSubscriptions}
	itemAnalytics     = domain.NavItem{Title: "Analytics", URL: "/analytics", Icon: iconAnalytics}
	itemPlatformUsers = domain.NavItem{Title: "Platform Users", URL: "/users", Icon: iconUsers}
	itemSettings      = domain.NavItem{Title: "Settings", URL: "/settings", Icon: iconSettings}
	itemPOS           = domain.NavItem{Title: "POS", URL: "/pos", Icon: iconPOS}
	itemInventory     = domain.NavItem{Title: "Inventory", URL: "/inventory", Icon: iconInventory}
	itemProducts      = domain.NavItem{Title: "Products", URL: "/products", Icon: iconProducts}
	itemOutlets       = domain.NavItem{Title: "Outlets", URL: "/outlets", Icon: iconOutlets}
	itemSuppliers     = domain.NavItem{Title: "Suppliers", URL: "/suppliers", Icon: iconSuppliers}
	itemReports       = domain.NavItem{Title: "Reports", URL: "/reports", Icon: iconReports}
	itemReportsRO     = domain.NavItem{Title: "Reports", URL: "/reports", Icon: iconReadOnly}
	itemReportsDoc    = domain.NavItem{Title: "Reports", URL: "/reports", Icon: iconTransactions}
	itemTransactions  = domain.NavItem{Title: "Transactions", URL: "/transactions", Icon: iconTransactions}
	itemUsers         = domain.NavItem{Title: "Users", URL: "/users", Icon: iconUsers}
	itemTickets       = domain.NavItem{Title: "Support Tickets", URL: "/support", Icon: iconSupport}
)

// catalog is the complete navigation surface: every group and item the
// dashboard can ever show. Only the DEVELOPER role sees it whole; every other
// role receives a least-privilege slice.
var catalog = []domain.NavGroup{
	{Title: "General", Items: []domain.NavItem{
		itemDashboard,
	}},
	{Title: "Platform Management", Items: []domain.NavItem{
		itemTenants,
		itemSubscriptions,
		itemAnalytics,
		itemPlatformUsers,
	}},
	{Title: "Operations", Items: []domain.NavItem{
		itemPOS,
		itemInventory,
		itemProducts,
		itemOutlets,
		itemSuppliers,
	}},
	{Title: "Analytics", Items: []domain.NavItem{
		itemReports,
		itemTransactions,
	}},
	{Title: "Administration", Items: []domain.NavItem{
		itemUsers,
		itemSettings,
		itemTickets,
	}},
}

// Catalog returns a copy of the full navigation surface.
func Catalog() []domain.NavGroup {
	return domain.CloneNavGroups(catalog)
}

// CatalogItemCount is the number of items across the full catalog.
func CatalogItemCount() int {
	n := 0
	for _, g := range catalog {
		n += len(g.Items)
	}
	return n
}
