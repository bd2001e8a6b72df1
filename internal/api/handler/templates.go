package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiranshivaraju/tenantportal/internal/api/response"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// TemplateService defines the template operations the handlers depend on.
type TemplateService interface {
	Fetch(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error)
	Save(ctx context.Context, req templates.SaveRequest) (*models.TenantTemplate, error)
	List(ctx context.Context, tenantID string) ([]*models.TenantTemplate, error)
	Delete(ctx context.Context, tenantID string, templateType models.TemplateType) error
}

// NewGetTemplateHandler returns an http.HandlerFunc for
// GET /api/templates/{tenantId}/{templateType}.
func NewGetTemplateHandler(svc TemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantId")
		templateType := models.TemplateType(chi.URLParam(r, "templateType"))
		if !templateType.Valid() {
			response.Error(w, http.StatusBadRequest, "INVALID_TEMPLATE_TYPE", "templateType must be one of dashboard, auth, profile", nil)
			return
		}

		tpl, err := svc.Fetch(r.Context(), tenantID, templateType)
		if errors.Is(err, templates.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Template not found", nil)
			return
		}
		if err != nil {
			slog.Error("fetching template failed", "tenant_id", tenantID, "template_type", templateType, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch template", nil)
			return
		}
		response.JSON(w, tpl)
	}
}

// NewListTemplatesHandler returns an http.HandlerFunc for
// GET /api/templates/{tenantId}.
func NewListTemplatesHandler(svc TemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantId")
		list, err := svc.List(r.Context(), tenantID)
		if err != nil {
			slog.Error("listing templates failed", "tenant_id", tenantID, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list templates", nil)
			return
		}
		if list == nil {
			list = []*models.TenantTemplate{}
		}
		response.JSON(w, list)
	}
}

// NewSaveTemplateHandler returns an http.HandlerFunc for POST /api/templates.
func NewSaveTemplateHandler(svc TemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req templates.SaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		saved, err := svc.Save(r.Context(), req)
		var verr *templates.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(w, http.StatusUnprocessableEntity, "INVALID_TEMPLATE", "Template failed validation", verr.Result)
			return
		case errors.Is(err, templates.ErrInvalidTemplateType):
			response.Error(w, http.StatusBadRequest, "INVALID_TEMPLATE_TYPE", "templateType must be one of dashboard, auth, profile", nil)
			return
		case err != nil:
			slog.Error("saving template failed", "tenant_id", req.TenantID, "template_type", req.TemplateType, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save template", nil)
			return
		}
		response.Created(w, saved)
	}
}

// NewDeleteTemplateHandler returns an http.HandlerFunc for
// DELETE /api/templates/{tenantId}/{templateType}.
func NewDeleteTemplateHandler(svc TemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantId")
		templateType := models.TemplateType(chi.URLParam(r, "templateType"))

		err := svc.Delete(r.Context(), tenantID, templateType)
		if errors.Is(err, templates.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Template not found", nil)
			return
		}
		if err != nil {
			slog.Error("deleting template failed", "tenant_id", tenantID, "template_type", templateType, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete template", nil)
			return
		}
		response.JSON(w, map[string]any{"deleted": true, "tenantId": tenantID, "templateType": templateType})
	}
}

// NewValidateTemplateHandler returns an http.HandlerFunc for
// POST /api/templates/validate. The body carries either base64 "template"
// or raw "markup"; the result is always 200 with the validation outcome.
func NewValidateTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Template string `json:"template"`
			Markup   string `json:"markup"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		markup := req.Markup
		if req.Template != "" {
			decoded, err := templates.Decode(req.Template)
			if err != nil {
				response.JSON(w, templates.ValidationResult{Errors: []string{"Template is not valid base64"}})
				return
			}
			markup = decoded
		}
		response.JSON(w, templates.Validate(markup))
	}
}
