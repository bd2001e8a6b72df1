package theme_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kiranshivaraju/tenantportal/internal/theme"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func palette(base string) models.Palette {
	return models.Palette{
		S50: base + "0", S100: base + "1", S200: base + "2", S300: base + "3", S400: base + "4",
		S500: base + "5", S600: base + "6", S700: base + "7", S800: base + "8", S900: base + "9",
	}
}

func testConfig(id, css string) *models.TenantConfiguration {
	cfg := &models.TenantConfiguration{TenantID: id, Name: id}
	cfg.Theme.Colors = models.Colors{
		Primary:   palette("#3b82f"),
		Secondary: palette("#64748"),
		Accent:    palette("#0ea5e"),
	}
	cfg.Theme.Typography = models.Typography{PrimaryFont: "Inter", SecondaryFont: "Space Grotesk"}
	cfg.Theme.Spacing = models.Spacing{BorderRadius: "0.75rem", SpacingUnit: "1.25rem"}
	cfg.Theme.CustomCSS = css
	return cfg
}

// --- HexToRGB ---

func TestHexToRGB_Scenario(t *testing.T) {
	assert.Equal(t, "59, 130, 246", theme.HexToRGB("#3b82f6"))
}

func TestHexToRGB_WithoutHashAndUpperCase(t *testing.T) {
	assert.Equal(t, "59, 130, 246", theme.HexToRGB("3B82F6"))
	assert.Equal(t, "255, 255, 255", theme.HexToRGB("#FFFFFF"))
}

func TestHexToRGB_MalformedFallsBackToBlack(t *testing.T) {
	for _, in := range []string{"bad", "", "#", "#fff", "#3b82f", "#3b82f6a", "#gggggg", "##3b82f6", "rgb(1,2,3)"} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, theme.BlackRGB, theme.HexToRGB(in))
			})
		})
	}
}

func TestHexToRGB_RoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				hex := fmt.Sprintf("#%02X%02x%02X", r, g, b)
				back, err := theme.RGBToHex(theme.HexToRGB(hex))
				require.NoError(t, err)
				assert.Equal(t, strings.ToLower(hex), back)
			}
		}
	}
}

func TestRGBToHex_Invalid(t *testing.T) {
	_, err := theme.RGBToHex("300, 0, 0")
	assert.Error(t, err)
	_, err = theme.RGBToHex("nope")
	assert.Error(t, err)
}

// --- TokenStore ---

func TestTokenStore_InjectReplacesSameID(t *testing.T) {
	s := theme.NewTokenStore()
	s.InjectStylesheet("tenant-custom-css", ".a{}")
	s.InjectStylesheet("other", ".o{}")
	s.InjectStylesheet("tenant-custom-css", ".b{}")

	sheets := s.Stylesheets()
	require.Len(t, sheets, 2)
	assert.Equal(t, "other", sheets[0].ID)
	assert.Equal(t, ".b{}", sheets[1].CSS)
	assert.Equal(t, 2, sheets[1].Generation)
}

func TestTokenStore_CSS(t *testing.T) {
	s := theme.NewTokenStore()
	s.Commit("spacing-unit", "1rem")
	s.Commit("border-radius", "4px")
	s.InjectStylesheet("x", "  .x { color: red; }  ")

	css := s.CSS()
	assert.True(t, strings.HasPrefix(css, ":root {\n  --border-radius: 4px;\n  --spacing-unit: 1rem;\n}\n"))
	assert.Contains(t, css, "/* x */\n.x { color: red; }\n")
}

func TestTokenStore_RemoveMissingIsNoop(t *testing.T) {
	s := theme.NewTokenStore()
	s.RemoveStylesheet("nothing")
	_, ok := s.Stylesheet("nothing")
	assert.False(t, ok)
}

// --- Applicator ---

func TestApply_CommitsPaletteTokens(t *testing.T) {
	s := theme.NewTokenStore()
	cfg := testConfig("default", "")
	cfg.Theme.Colors.Primary.S500 = "#3b82f6"
	theme.NewApplicator(s).Apply(cfg)

	for _, name := range []string{"primary", "secondary", "accent"} {
		for _, stop := range []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900} {
			_, ok := s.Get(fmt.Sprintf("%s-%d", name, stop))
			assert.True(t, ok, "%s-%d", name, stop)
		}
	}

	v, _ := s.Get("primary-500")
	assert.Equal(t, "59, 130, 246", v)
	v, _ = s.Get("primary-main")
	assert.Equal(t, "#3b82f6", v)
	v, _ = s.Get("primary-main-rgb")
	assert.Equal(t, "59, 130, 246", v)
	v, _ = s.Get("accent-bg")
	assert.Equal(t, "#0ea5e0", v)
	v, _ = s.Get("accent-bg-rgb")
	assert.Equal(t, "14, 165, 224", v)
	v, _ = s.Get("secondary-bg")
	assert.Equal(t, "#647480", v)
	v, _ = s.Get("font-secondary")
	assert.Equal(t, "Space Grotesk", v)
	v, _ = s.Get("border-radius")
	assert.Equal(t, "0.75rem", v)
}

func TestApply_MalformedColorIsolatedPerToken(t *testing.T) {
	s := theme.NewTokenStore()
	cfg := testConfig("broken", "")
	cfg.Theme.Colors.Primary.S300 = "bad"

	assert.NotPanics(t, func() { theme.NewApplicator(s).Apply(cfg) })

	v, _ := s.Get("primary-300")
	assert.Equal(t, theme.BlackRGB, v)
	v, _ = s.Get("primary-400")
	assert.Equal(t, theme.HexToRGB("#3b82f4"), v)
	v, _ = s.Get("spacing-unit")
	assert.Equal(t, "1.25rem", v)
}

func TestApply_CustomCSSReplacedNotAppended(t *testing.T) {
	s := theme.NewTokenStore()
	a := theme.NewApplicator(s)

	a.Apply(testConfig("a", ".a{}"))
	a.Apply(testConfig("b", ".b{}"))

	sheets := s.Stylesheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, theme.CustomCSSID, sheets[0].ID)
	assert.Equal(t, ".b{}", sheets[0].CSS)
}

func TestApply_EmptyCustomCSSRemovesPrevious(t *testing.T) {
	s := theme.NewTokenStore()
	a := theme.NewApplicator(s)

	a.Apply(testConfig("a", ".a{}"))
	a.Apply(testConfig("b", ""))

	_, ok := s.Stylesheet(theme.CustomCSSID)
	assert.False(t, ok)
}

func TestApply_ReapplicationRestoresTokens(t *testing.T) {
	s := theme.NewTokenStore()
	a := theme.NewApplicator(s)
	cfgA := testConfig("a", ".a{}")
	cfgB := testConfig("b", ".b{}")
	cfgB.Theme.Colors.Primary = palette("#d946e")
	cfgB.Theme.Spacing.BorderRadius = "1rem"

	a.Apply(cfgA)
	first := s.Snapshot()
	firstCSS, _ := s.Stylesheet(theme.CustomCSSID)

	a.Apply(cfgB)
	assert.NotEqual(t, first, s.Snapshot())

	a.Apply(cfgA)
	assert.Equal(t, first, s.Snapshot())
	again, _ := s.Stylesheet(theme.CustomCSSID)
	assert.Equal(t, firstCSS.CSS, again.CSS)
}

func TestApply_NilConfig(t *testing.T) {
	s := theme.NewTokenStore()
	theme.NewApplicator(s).Apply(nil)
	assert.Empty(t, s.Snapshot())
}
