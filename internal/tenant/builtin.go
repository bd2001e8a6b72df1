package tenant

import "github.com/kiranshivaraju/tenantportal/pkg/models"

// DefaultTenantID is the configuration used for any unknown tenant id.
const DefaultTenantID = "default"

const systemFonts = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`

func components(v models.Variant, s models.Size) models.Components {
	c := models.ComponentConfig{Variant: v, Size: s}
	return models.Components{Button: c, Input: c, Card: c, Form: c}
}

// Builtins returns fresh copies of the shipped tenant configurations.
func Builtins() []*models.TenantConfiguration {
	return []*models.TenantConfiguration{
		defaultConfig(),
		enterpriseConfig(),
		startupConfig(),
		creativeConfig(),
		techStartupConfig(),
	}
}

func defaultConfig() *models.TenantConfiguration {
	return &models.TenantConfiguration{
		TenantID: DefaultTenantID,
		Name:     "TechCorp Solutions",
		Logo: models.Logo{
			URL: "https://logo.clearbit.com/microsoft.com", Alt: "TechCorp Solutions",
			Width: "120px", Height: "40px",
		},
		Theme: models.Theme{
			Colors: models.Colors{
				Primary: models.Palette{
					S50: "#eff8ff", S100: "#dbeefe", S200: "#bfdbfe", S300: "#93c5fd", S400: "#60a5fa",
					S500: "#3b82f6", S600: "#2563eb", S700: "#1d4ed8", S800: "#1e40af", S900: "#1e3a8a",
				},
				Secondary: models.Palette{
					S50: "#f8fafc", S100: "#f1f5f9", S200: "#e2e8f0", S300: "#cbd5e1", S400: "#94a3b8",
					S500: "#64748b", S600: "#475569", S700: "#334155", S800: "#1e293b", S900: "#0f172a",
				},
				Accent: models.Palette{
					S50: "#f0f9ff", S100: "#e0f2fe", S200: "#bae6fd", S300: "#7dd3fc", S400: "#38bdf8",
					S500: "#0ea5e9", S600: "#0284c7", S700: "#0369a1", S800: "#075985", S900: "#0c4a6e",
				},
			},
			Typography: models.Typography{
				PrimaryFont:   "Inter, " + systemFonts,
				SecondaryFont: "Inter, " + systemFonts,
				HeadingWeight: "600",
				BodyWeight:    "400",
			},
			Spacing: models.Spacing{BorderRadius: "0.75rem", SpacingUnit: "1.25rem"},
			CustomCSS: `
.gradient-bg { background: linear-gradient(135deg, #3b82f6 0%, #1d4ed8 100%); }
.card-shadow { box-shadow: 0 20px 25px -5px rgba(59, 130, 246, 0.15), 0 10px 10px -5px rgba(59, 130, 246, 0.1); }
.btn-gradient { background: linear-gradient(135deg, #3b82f6 0%, #2563eb 100%); transition: all 0.3s ease; }
.main-background { background: linear-gradient(135deg, #eff8ff 0%, #dbeafe 25%, #bfdbfe 50%, #ffffff 100%); }
.card-background { background: linear-gradient(145deg, #ffffff 0%, #f0f9ff 100%); border: 1px solid rgba(59, 130, 246, 0.1); }
`,
		},
		Layout: models.Layout{
			ContainerMaxWidth: "1200px",
			GridColumns:       3,
			Sidebar:           models.SidebarLayout{Enabled: false, Width: "250px", Position: "left"},
			Header:            models.HeaderLayout{Height: "64px", Sticky: true, ShowLogo: true, ShowNavigation: true},
			Footer:            models.FooterLayout{Enabled: true, Content: "© 2025 Default Organization. All rights reserved."},
		},
		Components: components(models.VariantDefault, models.SizeMedium),
		Authentication: models.Authentication{
			Title:              "Welcome Back",
			Subtitle:           "Sign in to access your applications",
			ShowRememberMe:     true,
			ShowForgotPassword: true,
		},
		Dashboard: models.Dashboard{
			WelcomeMessage: "Welcome to your dashboard",
			ShowStats:      true,
			ProductGrid:    models.ProductGrid{Layout: models.GridLayoutGrid, ItemsPerRow: 3, ShowCategories: true},
		},
		Customization: models.Customization{EnableCustomCSS: false},
	}
}

func enterpriseConfig() *models.TenantConfiguration {
	cfg := defaultConfig()
	cfg.TenantID = "enterprise"
	cfg.Name = "Goldman Sachs"
	cfg.Logo = models.Logo{URL: "https://logo.clearbit.com/goldmansachs.com", Alt: "Goldman Sachs", Width: "140px", Height: "45px"}
	cfg.Theme.Colors = models.Colors{
		Primary: models.Palette{
			S50: "#f7f8fc", S100: "#eceef8", S200: "#d4daee", S300: "#afbae0", S400: "#8395ce",
			S500: "#6175be", S600: "#4d5eab", S700: "#424d8b", S800: "#394170", S900: "#2c3459",
		},
		Secondary: models.Palette{
			S50: "#fefce8", S100: "#fef9c3", S200: "#fef08a", S300: "#fde047", S400: "#facc15",
			S500: "#eab308", S600: "#ca8a04", S700: "#a16207", S800: "#854d0e", S900: "#713f12",
		},
		Accent: models.Palette{
			S50: "#09090b", S100: "#18181b", S200: "#27272a", S300: "#3f3f46", S400: "#52525b",
			S500: "#71717a", S600: "#a1a1aa", S700: "#d4d4d8", S800: "#e4e4e7", S900: "#f4f4f5",
		},
	}
	cfg.Theme.Spacing = models.Spacing{BorderRadius: "0.375rem", SpacingUnit: "1.25rem"}
	cfg.Theme.CustomCSS = `
.gradient-bg { background: linear-gradient(135deg, #6175be 0%, #394170 100%); }
.card-shadow { box-shadow: 0 25px 50px -12px rgba(44, 52, 89, 0.3); }
.gold-accent { border-left: 4px solid #eab308; background: linear-gradient(to right, #fefce8, #ffffff); }
.luxury-gradient { background: linear-gradient(135deg, #2c3459 0%, #394170 50%, #eab308 100%); }
`
	cfg.Authentication = models.Authentication{
		Title:              "Enterprise Portal",
		Subtitle:           "Access your enterprise applications",
		ShowRememberMe:     false,
		ShowForgotPassword: true,
	}
	cfg.Layout.Sidebar = models.SidebarLayout{Enabled: true, Width: "280px", Position: "left"}
	return cfg
}

func startupConfig() *models.TenantConfiguration {
	cfg := defaultConfig()
	cfg.TenantID = "startup"
	cfg.Name = "Stripe Innovations"
	cfg.Logo = models.Logo{URL: "https://logo.clearbit.com/stripe.com", Alt: "Stripe Innovations", Width: "100px", Height: "35px"}
	cfg.Theme.Colors = models.Colors{
		Primary: models.Palette{
			S50: "#fdf4ff", S100: "#fae8ff", S200: "#f5d0fe", S300: "#f0abfc", S400: "#e879f9",
			S500: "#d946ef", S600: "#c026d3", S700: "#a21caf", S800: "#86198f", S900: "#701a75",
		},
		Secondary: models.Palette{
			S50: "#fef7ff", S100: "#fdeeff", S200: "#f9ddff", S300: "#f3bdff", S400: "#ea8dff",
			S500: "#dd56ff", S600: "#c632ff", S700: "#a318d3", S800: "#86198f", S900: "#701a75",
		},
		Accent: models.Palette{
			S50: "#fdf2f8", S100: "#fce7f3", S200: "#fbcfe8", S300: "#f9a8d4", S400: "#f472b6",
			S500: "#ec4899", S600: "#db2777", S700: "#be185d", S800: "#9d174d", S900: "#831843",
		},
	}
	cfg.Theme.Spacing = models.Spacing{BorderRadius: "1rem", SpacingUnit: "1rem"}
	cfg.Theme.CustomCSS = `
.gradient-bg { background: linear-gradient(135deg, #d946ef 0%, #c026d3 50%, #a21caf 100%); }
.card-shadow { box-shadow: 0 25px 50px -12px rgba(217, 70, 239, 0.25); }
.purple-accent { border-left: 4px solid #d946ef; background: linear-gradient(to right, #fdf4ff, #ffffff); }
.vibrant-gradient { background: linear-gradient(135deg, #d946ef 0%, #c026d3 25%, #a21caf 50%, #ec4899 75%, #f472b6 100%); }
`
	cfg.Authentication = models.Authentication{
		Title:              "Welcome to Stripe Innovations",
		Subtitle:           "Let's build something amazing together",
		ShowRememberMe:     true,
		ShowForgotPassword: false,
	}
	cfg.Components = components(models.VariantRounded, models.SizeMedium)
	return cfg
}

func creativeConfig() *models.TenantConfiguration {
	cfg := defaultConfig()
	cfg.TenantID = "creative"
	cfg.Name = "Pixel Studios"
	cfg.Logo = models.Logo{URL: "https://logo.clearbit.com/behance.net", Alt: "Pixel Studios", Width: "120px", Height: "40px"}
	cfg.Theme.Colors = models.Colors{
		Primary: models.Palette{
			S50: "#fff7ed", S100: "#ffedd5", S200: "#fed7aa", S300: "#fdba74", S400: "#fb923c",
			S500: "#f97316", S600: "#ea580c", S700: "#c2410c", S800: "#9a3412", S900: "#7c2d12",
		},
		Secondary: models.Palette{
			S50: "#f0fdf4", S100: "#dcfce7", S200: "#bbf7d0", S300: "#86efac", S400: "#4ade80",
			S500: "#22c55e", S600: "#16a34a", S700: "#15803d", S800: "#166534", S900: "#14532d",
		},
		Accent: models.Palette{
			S50: "#fffbeb", S100: "#fef3c7", S200: "#fde68a", S300: "#fcd34d", S400: "#fbbf24",
			S500: "#f59e0b", S600: "#d97706", S700: "#b45309", S800: "#92400e", S900: "#78350f",
		},
	}
	cfg.Theme.Typography = models.Typography{
		PrimaryFont:   `"Poppins", ` + systemFonts,
		SecondaryFont: `"Space Grotesk", ` + systemFonts,
		HeadingWeight: "700",
		BodyWeight:    "400",
	}
	cfg.Theme.Spacing = models.Spacing{BorderRadius: "1.5rem", SpacingUnit: "1.5rem"}
	cfg.Theme.CustomCSS = `
@import url('https://fonts.googleapis.com/css2?family=Poppins:wght@400;600;700&family=Space+Grotesk:wght@400;500;700&display=swap');
.gradient-bg { background: linear-gradient(135deg, #f97316 0%, #ea580c 50%, #f59e0b 100%); }
.creative-card { border-radius: 2rem; background: linear-gradient(145deg, #ffffff 0%, #fff7ed 100%); }
.glass-effect { backdrop-filter: blur(20px); background: rgba(255, 255, 255, 0.1); }
`
	cfg.Layout = models.Layout{
		ContainerMaxWidth: "1400px",
		GridColumns:       1,
		Sidebar:           models.SidebarLayout{Enabled: false, Width: "0px", Position: "left"},
		Header:            models.HeaderLayout{Height: "80px", Sticky: true, ShowLogo: true, ShowNavigation: false},
		Footer:            models.FooterLayout{Enabled: true, Content: "Copyright © 2025 Pixel Studios. All rights reserved."},
	}
	cfg.Dashboard = models.Dashboard{
		WelcomeMessage: "Create Something Amazing",
		ShowStats:      false,
		ProductGrid:    models.ProductGrid{Layout: models.GridLayoutCards, ItemsPerRow: 1, ShowCategories: false},
	}
	cfg.Authentication = models.Authentication{
		Title:              "Welcome to Pixel Studios",
		Subtitle:           "Where creativity meets technology",
		ShowRememberMe:     false,
		ShowForgotPassword: true,
	}
	cfg.Components = components(models.VariantCreative, models.SizeLarge)
	cfg.Customization.AdditionalFonts = []string{"Poppins", "Space Grotesk"}
	return cfg
}

// techStartupConfig is the tenant that owns the seeded custom dashboard template.
func techStartupConfig() *models.TenantConfiguration {
	cfg := startupConfig()
	cfg.TenantID = "tech-startup"
	cfg.Name = "NovaTech"
	cfg.Logo = models.Logo{URL: "https://logo.clearbit.com/github.com", Alt: "NovaTech", Width: "110px", Height: "36px"}
	cfg.Authentication.Title = "NovaTech Developer Portal"
	cfg.Authentication.Subtitle = "Ship faster with your team's toolchain"
	cfg.Dashboard.WelcomeMessage = "Mission control for developers"
	cfg.Components = components(models.VariantSharp, models.SizeMedium)
	cfg.Customization = models.Customization{
		EnableCustomCSS:       true,
		EnableCustomTemplates: true,
		TemplateVersion:       "1.0.0",
	}
	return cfg
}
