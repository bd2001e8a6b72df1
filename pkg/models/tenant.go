// Package models contains shared data models used across the tenant portal codebase.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompletePalette is returned when a color palette is missing one of its shade stops.
var ErrIncompletePalette = errors.New("palette must define all 10 shade stops")

// TenantConfiguration is the full presentation contract of one tenant.
// TenantID is the registry key and must not change after creation.
type TenantConfiguration struct {
	TenantID       string         `json:"tenantId"       yaml:"tenantId"`
	Name           string         `json:"name"           yaml:"name"`
	Logo           Logo           `json:"logo"           yaml:"logo"`
	Theme          Theme          `json:"theme"          yaml:"theme"`
	Layout         Layout         `json:"layout"         yaml:"layout"`
	Components     Components     `json:"components"     yaml:"components"`
	Authentication Authentication `json:"authentication" yaml:"authentication"`
	Dashboard      Dashboard      `json:"dashboard"      yaml:"dashboard"`
	Customization  Customization  `json:"customization"  yaml:"customization"`
}

type Logo struct {
	URL    string `json:"url"              yaml:"url"`
	Alt    string `json:"alt"              yaml:"alt"`
	Width  string `json:"width,omitempty"  yaml:"width,omitempty"`
	Height string `json:"height,omitempty" yaml:"height,omitempty"`
}

type Theme struct {
	Colors     Colors     `json:"colors"              yaml:"colors"`
	Typography Typography `json:"typography"          yaml:"typography"`
	Spacing    Spacing    `json:"spacing"             yaml:"spacing"`
	CustomCSS  string     `json:"customCss,omitempty" yaml:"customCss,omitempty"`
}

type Colors struct {
	Primary   Palette `json:"primary"   yaml:"primary"`
	Secondary Palette `json:"secondary" yaml:"secondary"`
	Accent    Palette `json:"accent"    yaml:"accent"`
}

// Palette holds the ten shade stops of one named color, as hex strings.
type Palette struct {
	S50  string `json:"50"  yaml:"50"`
	S100 string `json:"100" yaml:"100"`
	S200 string `json:"200" yaml:"200"`
	S300 string `json:"300" yaml:"300"`
	S400 string `json:"400" yaml:"400"`
	S500 string `json:"500" yaml:"500"`
	S600 string `json:"600" yaml:"600"`
	S700 string `json:"700" yaml:"700"`
	S800 string `json:"800" yaml:"800"`
	S900 string `json:"900" yaml:"900"`
}

// ShadeStop pairs a lightness level (50..900) with its hex color.
type ShadeStop struct {
	Level int
	Hex   string
}

// Stops returns the palette's shade stops ordered from 50 to 900.
func (p Palette) Stops() [10]ShadeStop {
	return [10]ShadeStop{
		{50, p.S50}, {100, p.S100}, {200, p.S200}, {300, p.S300}, {400, p.S400},
		{500, p.S500}, {600, p.S600}, {700, p.S700}, {800, p.S800}, {900, p.S900},
	}
}

// Validate rejects partial palettes.
func (p Palette) Validate() error {
	var missing []string
	for _, s := range p.Stops() {
		if strings.TrimSpace(s.Hex) == "" {
			missing = append(missing, fmt.Sprint(s.Level))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompletePalette, strings.Join(missing, ", "))
	}
	return nil
}

type Typography struct {
	PrimaryFont   string `json:"primaryFont"   yaml:"primaryFont"`
	SecondaryFont string `json:"secondaryFont" yaml:"secondaryFont"`
	HeadingWeight string `json:"headingWeight" yaml:"headingWeight"`
	BodyWeight    string `json:"bodyWeight"    yaml:"bodyWeight"`
}

type Spacing struct {
	BorderRadius string `json:"borderRadius" yaml:"borderRadius"`
	SpacingUnit  string `json:"spacingUnit"  yaml:"spacingUnit"`
}

type Layout struct {
	ContainerMaxWidth string        `json:"containerMaxWidth" yaml:"containerMaxWidth"`
	GridColumns       int           `json:"gridColumns"       yaml:"gridColumns"`
	Sidebar           SidebarLayout `json:"sidebar"           yaml:"sidebar"`
	Header            HeaderLayout  `json:"header"            yaml:"header"`
	Footer            FooterLayout  `json:"footer"            yaml:"footer"`
}

type SidebarLayout struct {
	Enabled  bool   `json:"enabled"  yaml:"enabled"`
	Width    string `json:"width"    yaml:"width"`
	Position string `json:"position" yaml:"position"`
}

type HeaderLayout struct {
	Height         string `json:"height"         yaml:"height"`
	Sticky         bool   `json:"sticky"         yaml:"sticky"`
	ShowLogo       bool   `json:"showLogo"       yaml:"showLogo"`
	ShowNavigation bool   `json:"showNavigation" yaml:"showNavigation"`
}

type FooterLayout struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Content string `json:"content" yaml:"content"`
}

type Authentication struct {
	Title              string      `json:"title"                     yaml:"title"`
	Subtitle           string      `json:"subtitle"                  yaml:"subtitle"`
	ShowRememberMe     bool        `json:"showRememberMe"            yaml:"showRememberMe"`
	ShowForgotPassword bool        `json:"showForgotPassword"        yaml:"showForgotPassword"`
	BackgroundImage    string      `json:"backgroundImage,omitempty" yaml:"backgroundImage,omitempty"`
	CustomFields       []AuthField `json:"customFields,omitempty"    yaml:"customFields,omitempty"`
}

// AuthField is an extra input rendered on a tenant's sign-in form.
type AuthField struct {
	ID          string        `json:"id"                    yaml:"id"`
	Type        string        `json:"type"                  yaml:"type"`
	Label       string        `json:"label"                 yaml:"label"`
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool          `json:"required"              yaml:"required"`
	Validation  string        `json:"validation,omitempty"  yaml:"validation,omitempty"`
	Options     []FieldOption `json:"options,omitempty"     yaml:"options,omitempty"`
}

type FieldOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

const (
	GridLayoutGrid  = "grid"
	GridLayoutList  = "list"
	GridLayoutCards = "cards"
)

type Dashboard struct {
	WelcomeMessage string      `json:"welcomeMessage"           yaml:"welcomeMessage"`
	ShowStats      bool        `json:"showStats"                yaml:"showStats"`
	ProductGrid    ProductGrid `json:"productGrid"              yaml:"productGrid"`
	CustomTemplate string      `json:"customTemplate,omitempty" yaml:"customTemplate,omitempty"`
}

type ProductGrid struct {
	Layout         string `json:"layout"         yaml:"layout"`
	ItemsPerRow    int    `json:"itemsPerRow"    yaml:"itemsPerRow"`
	ShowCategories bool   `json:"showCategories" yaml:"showCategories"`
}

type Customization struct {
	EnableCustomCSS       bool     `json:"enableCustomCss"                 yaml:"enableCustomCss"`
	CustomJavaScript      string   `json:"customJavaScript,omitempty"      yaml:"customJavaScript,omitempty"`
	AdditionalFonts       []string `json:"additionalFonts,omitempty"       yaml:"additionalFonts,omitempty"`
	EnableCustomTemplates bool     `json:"enableCustomTemplates,omitempty" yaml:"enableCustomTemplates,omitempty"`
	TemplateVersion       string   `json:"templateVersion,omitempty"       yaml:"templateVersion,omitempty"`
}

// Validate checks the structural invariants of a configuration.
func (c *TenantConfiguration) Validate() error {
	if strings.TrimSpace(c.TenantID) == "" {
		return fmt.Errorf("tenantId is required")
	}
	palettes := []struct {
		name string
		p    Palette
	}{
		{"primary", c.Theme.Colors.Primary},
		{"secondary", c.Theme.Colors.Secondary},
		{"accent", c.Theme.Colors.Accent},
	}
	for _, pal := range palettes {
		if err := pal.p.Validate(); err != nil {
			return fmt.Errorf("tenant %q %s palette: %w", c.TenantID, pal.name, err)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can derive a tenant from another
// without aliasing slices.
func (c *TenantConfiguration) Clone() *TenantConfiguration {
	cp := *c
	if c.Authentication.CustomFields != nil {
		cp.Authentication.CustomFields = make([]AuthField, len(c.Authentication.CustomFields))
		for i, f := range c.Authentication.CustomFields {
			f.Options = append([]FieldOption(nil), f.Options...)
			cp.Authentication.CustomFields[i] = f
		}
	}
	cp.Customization.AdditionalFonts = append([]string(nil), c.Customization.AdditionalFonts...)
	return &cp
}
