// Package theme derives design tokens from a tenant configuration and
// commits them to a TokenStore.
package theme

import (
	"strconv"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// CustomCSSID is the element id of the tenant-supplied stylesheet. Reusing it
// makes repeated injections replace rather than accumulate.
const CustomCSSID = "tenant-custom-css"

// Applicator commits a configuration's theme to a TokenStore.
type Applicator struct {
	store *TokenStore
}

func NewApplicator(store *TokenStore) *Applicator {
	return &Applicator{store: store}
}

func (a *Applicator) Store() *TokenStore {
	return a.store
}

// Apply writes every palette stop as an RGB triple, the semantic aliases in
// hex and RGB form, typography and spacing tokens, and the custom stylesheet.
// Malformed colors degrade to black for that token only.
func (a *Applicator) Apply(cfg *models.TenantConfiguration) {
	if cfg == nil {
		return
	}
	colors := cfg.Theme.Colors

	palettes := []struct {
		name string
		p    models.Palette
	}{
		{"primary", colors.Primary},
		{"secondary", colors.Secondary},
		{"accent", colors.Accent},
	}
	for _, pal := range palettes {
		for _, stop := range pal.p.Stops() {
			a.store.Commit(pal.name+"-"+strconv.Itoa(stop.Level), HexToRGB(stop.Hex))
		}
	}

	// Solid fills need literal colors; alpha overlays need the triples.
	aliases := []struct {
		key string
		hex string
	}{
		{"primary-main", colors.Primary.S500},
		{"accent-main", colors.Accent.S500},
		{"primary-bg", colors.Primary.S50},
		{"accent-bg", colors.Accent.S50},
	}
	for _, al := range aliases {
		a.store.Commit(al.key, al.hex)
		a.store.Commit(al.key+"-rgb", HexToRGB(al.hex))
	}
	a.store.Commit("secondary-bg", colors.Secondary.S50)

	a.store.Commit("font-primary", cfg.Theme.Typography.PrimaryFont)
	a.store.Commit("font-secondary", cfg.Theme.Typography.SecondaryFont)
	a.store.Commit("border-radius", cfg.Theme.Spacing.BorderRadius)
	a.store.Commit("spacing-unit", cfg.Theme.Spacing.SpacingUnit)

	if cfg.Theme.CustomCSS != "" {
		a.store.InjectStylesheet(CustomCSSID, cfg.Theme.CustomCSS)
	} else {
		a.store.RemoveStylesheet(CustomCSSID)
	}
}
