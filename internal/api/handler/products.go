package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/kiranshivaraju/tenantportal/internal/api/middleware"
	"github.com/kiranshivaraju/tenantportal/internal/api/response"
	"github.com/kiranshivaraju/tenantportal/internal/catalog"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// NewListProductsHandler returns an http.HandlerFunc for GET /api/v1/products.
func NewListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		accessible, restricted := catalog.Partition(s.Products())
		if accessible == nil {
			accessible = []models.Product{}
		}
		if restricted == nil {
			restricted = []models.Product{}
		}
		response.JSON(w, map[string]any{
			"accessible": accessible,
			"restricted": restricted,
		})
	}
}

// NewOpenProductHandler returns an http.HandlerFunc for
// POST /api/v1/products/{id}/open.
func NewOpenProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		ev, err := s.OpenProductByID(chi.URLParam(r, "id"))
		switch {
		case errors.Is(err, portal.ErrProductNotFound):
			response.Error(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
		case errors.Is(err, portal.ErrProductRestricted):
			response.Error(w, http.StatusForbidden, "PRODUCT_RESTRICTED", "You do not have access to this product", nil)
		default:
			response.JSON(w, ev)
		}
	}
}
