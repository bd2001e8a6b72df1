package models

// Product is a catalog entry shown on the dashboard. Products are read-only
// inputs to the portal; entitlement is decided upstream and carried in HasAccess.
type Product struct {
	ID          string         `json:"id"                 yaml:"id"`
	Name        string         `json:"name"               yaml:"name"`
	Description string         `json:"description"        yaml:"description"`
	Category    string         `json:"category"           yaml:"category"`
	IconName    string         `json:"iconName"           yaml:"iconName"`
	HasAccess   bool           `json:"hasAccess"          yaml:"hasAccess"`
	URL         string         `json:"url,omitempty"      yaml:"url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
