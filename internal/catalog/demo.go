package catalog

import (
	"strconv"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// DemoProducts returns the static catalog shown to every signed-in user.
func DemoProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Security Dashboard", Description: "Monitor and manage security policies across your organization",
			Category: "Security", IconName: "shield", HasAccess: true, URL: "/security"},
		{ID: "2", Name: "Analytics Platform", Description: "Advanced analytics and reporting tools for business insights",
			Category: "Analytics", IconName: "chart", HasAccess: true, URL: "/analytics"},
		{ID: "3", Name: "User Management", Description: "Manage users, roles, and permissions",
			Category: "Administration", IconName: "users", HasAccess: true, URL: "/users"},
		{ID: "4", Name: "Data Warehouse", Description: "Enterprise data storage and processing",
			Category: "Data", IconName: "database", HasAccess: false, URL: "/warehouse"},
		{ID: "5", Name: "Documentation Hub", Description: "Access technical documentation and guides",
			Category: "Resources", IconName: "document", HasAccess: true, URL: "/docs"},
		{ID: "6", Name: "System Settings", Description: "Configure system-wide settings and preferences",
			Category: "Administration", IconName: "settings", HasAccess: false, URL: "/settings"},
	}
}

const defaultItemsPerRow = 3

// GridClasses returns the container classes for a product grid policy.
// Unknown layouts render as a grid.
func GridClasses(g models.ProductGrid) string {
	n := g.ItemsPerRow
	if n <= 0 {
		n = defaultItemsPerRow
	}
	switch g.Layout {
	case models.GridLayoutList:
		return "product-grid list-layout"
	case models.GridLayoutCards:
		return "product-grid cards-layout cards-" + strconv.Itoa(n)
	default:
		return "product-grid grid-" + strconv.Itoa(n)
	}
}
