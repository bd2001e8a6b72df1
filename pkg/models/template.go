package models

import "time"

// TemplateType names the view a custom template replaces.
type TemplateType string

const (
	TemplateTypeDashboard TemplateType = "dashboard"
	TemplateTypeAuth      TemplateType = "auth"
	TemplateTypeProfile   TemplateType = "profile"
)

func (t TemplateType) Valid() bool {
	switch t {
	case TemplateTypeDashboard, TemplateTypeAuth, TemplateTypeProfile:
		return true
	}
	return false
}

// TenantTemplate is an alternate rendering of one view for one tenant.
// Template holds base64-encoded UTF-8 markup; Styles is optional plain CSS
// shipped alongside it.
type TenantTemplate struct {
	TenantID     string       `db:"tenant_id"     json:"tenantId"`
	TemplateType TemplateType `db:"template_type" json:"templateType"`
	Template     string       `db:"template"      json:"template"`
	Styles       string       `db:"styles"        json:"styles,omitempty"`
	Version      string       `db:"version"       json:"version"`
	CreatedAt    time.Time    `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at"    json:"updatedAt"`
}
