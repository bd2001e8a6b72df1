package templates

import (
	_ "embed"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

var (
	//go:embed builtin/tech-startup-dashboard.html
	techStartupDashboard string

	//go:embed builtin/tech-startup-dashboard.css
	techStartupStyles string
)

const builtinVersion = "1.0.0"

// Builtins returns the templates shipped with the portal, encoded for storage.
func Builtins() []*models.TenantTemplate {
	return []*models.TenantTemplate{
		{
			TenantID:     "tech-startup",
			TemplateType: models.TemplateTypeDashboard,
			Template:     Encode(techStartupDashboard),
			Styles:       techStartupStyles,
			Version:      builtinVersion,
		},
	}
}
