package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/kiranshivaraju/tenantportal/internal/api/middleware"
	"github.com/kiranshivaraju/tenantportal/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit
	// Metrics, when set, observes every request.
	Metrics        mw.RequestObserver
	MetricsHandler http.Handler

	HealthHandler http.HandlerFunc

	ListTenants    http.HandlerFunc
	ResolveTenant  http.HandlerFunc
	GetTenant      http.HandlerFunc
	TenantTokens   http.HandlerFunc
	TenantThemeCSS http.HandlerFunc

	GetTemplate      http.HandlerFunc
	ListTemplates    http.HandlerFunc
	SaveTemplate     http.HandlerFunc
	DeleteTemplate   http.HandlerFunc
	ValidateTemplate http.HandlerFunc

	SignIn       http.HandlerFunc
	SignOut      http.HandlerFunc
	Me           http.HandlerFunc
	SwitchTenant http.HandlerFunc

	ListProducts http.HandlerFunc
	OpenProduct  http.HandlerFunc

	Dashboard      http.HandlerFunc
	DashboardClick http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if deps.Metrics != nil {
		r.Use(mw.Instrument(deps.Metrics))
	}

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Public routes, limited per client address
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimit.Limit)

		r.Get("/api/v1/tenants", orNotImplemented(deps.ListTenants))
		r.Get("/api/v1/tenants/resolve", orNotImplemented(deps.ResolveTenant))
		r.Get("/api/v1/tenants/{id}", orNotImplemented(deps.GetTenant))
		r.Get("/api/v1/tenants/{id}/tokens", orNotImplemented(deps.TenantTokens))
		r.Get("/api/v1/tenants/{id}/theme.css", orNotImplemented(deps.TenantThemeCSS))

		r.Get("/api/templates/{tenantId}/{templateType}", orNotImplemented(deps.GetTemplate))
		r.Post("/api/templates/validate", orNotImplemented(deps.ValidateTemplate))

		r.Post("/api/v1/auth/signin", orNotImplemented(deps.SignIn))
	})

	// Session routes, limited per session
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/auth/signout", orNotImplemented(deps.SignOut))
		r.Get("/api/v1/me", orNotImplemented(deps.Me))
		r.Post("/api/v1/session/tenant", orNotImplemented(deps.SwitchTenant))

		r.Get("/api/v1/products", orNotImplemented(deps.ListProducts))
		r.Post("/api/v1/products/{id}/open", orNotImplemented(deps.OpenProduct))

		r.Get("/dashboard", orNotImplemented(deps.Dashboard))
		r.Post("/api/v1/dashboard/click", orNotImplemented(deps.DashboardClick))

		// Template administration
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireRole("admin"))

			r.Post("/api/templates", orNotImplemented(deps.SaveTemplate))
			r.Get("/api/templates/{tenantId}", orNotImplemented(deps.ListTemplates))
			r.Delete("/api/templates/{tenantId}/{templateType}", orNotImplemented(deps.DeleteTemplate))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
