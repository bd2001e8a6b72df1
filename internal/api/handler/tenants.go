package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiranshivaraju/tenantportal/internal/api/response"
	"github.com/kiranshivaraju/tenantportal/internal/tenant"
	"github.com/kiranshivaraju/tenantportal/internal/theme"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// TenantSummary is the list view of a tenant.
type TenantSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CustomTemplates bool   `json:"customTemplates"`
}

// NewListTenantsHandler returns an http.HandlerFunc for GET /api/v1/tenants.
func NewListTenantsHandler(dir *tenant.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		out := make([]TenantSummary, 0, dir.Len())
		for _, id := range dir.IDs() {
			cfg, _ := dir.Lookup(id)
			out = append(out, TenantSummary{
				ID:              cfg.TenantID,
				Name:            cfg.Name,
				CustomTemplates: cfg.Customization.EnableCustomTemplates,
			})
		}
		response.JSON(w, out)
	}
}

// NewResolveTenantHandler returns an http.HandlerFunc for
// GET /api/v1/tenants/resolve. The host query parameter defaults to the
// request's Host header.
func NewResolveTenantHandler(dir *tenant.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := r.URL.Query().Get("host")
		if host == "" {
			host = r.Host
		}
		cfg, _ := dir.Lookup(tenant.ResolveHost(host))
		response.JSON(w, map[string]string{
			"host":     host,
			"tenantId": cfg.TenantID,
			"name":     cfg.Name,
		})
	}
}

// NewGetTenantHandler returns an http.HandlerFunc for GET /api/v1/tenants/{id}.
func NewGetTenantHandler(dir *tenant.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := lookupTenant(w, r, dir)
		if !ok {
			return
		}
		response.JSON(w, cfg)
	}
}

// NewTenantTokensHandler returns an http.HandlerFunc for
// GET /api/v1/tenants/{id}/tokens: the design tokens the tenant's theme
// produces.
func NewTenantTokensHandler(dir *tenant.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := lookupTenant(w, r, dir)
		if !ok {
			return
		}
		response.JSON(w, map[string]any{
			"tenantId": cfg.TenantID,
			"tokens":   themeFor(cfg).Snapshot(),
		})
	}
}

// NewTenantThemeCSSHandler returns an http.HandlerFunc for
// GET /api/v1/tenants/{id}/theme.css.
func NewTenantThemeCSSHandler(dir *tenant.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := lookupTenant(w, r, dir)
		if !ok {
			return
		}
		response.Raw(w, http.StatusOK, "text/css; charset=utf-8", []byte(themeFor(cfg).CSS()))
	}
}

func lookupTenant(w http.ResponseWriter, r *http.Request, dir *tenant.Directory) (*models.TenantConfiguration, bool) {
	id := chi.URLParam(r, "id")
	cfg, found := dir.Lookup(id)
	if !found {
		response.Error(w, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found", nil)
		return nil, false
	}
	return cfg, true
}

func themeFor(cfg *models.TenantConfiguration) *theme.TokenStore {
	tokens := theme.NewTokenStore()
	theme.NewApplicator(tokens).Apply(cfg)
	return tokens
}
