package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kiranshivaraju/tenantportal/internal/cache"
	"github.com/kiranshivaraju/tenantportal/internal/store"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/kiranshivaraju/tenantportal/pkg/observe"
)

// ErrInvalidTemplateType is returned for template types other than
// dashboard, auth and profile.
var ErrInvalidTemplateType = errors.New("invalid template type")

// SaveRequest is the payload for persisting a template. Template is the
// base64-encoded markup.
type SaveRequest struct {
	TenantID     string              `json:"tenantId"`
	TemplateType models.TemplateType `json:"templateType"`
	Template     string              `json:"template"`
	Styles       string              `json:"styles,omitempty"`
	Version      string              `json:"version,omitempty"`
}

// Change identifies a template that was saved or deleted.
type Change struct {
	TenantID     string
	TemplateType models.TemplateType
}

// ChangeNotifier reports template saves and deletions so per-session caches
// can drop superseded copies.
type ChangeNotifier interface {
	SubscribeChanges(fn func(Change)) (unsubscribe func())
}

// Service reads templates through a cache and validates templates before
// persisting them.
type Service struct {
	store   store.Store
	cache   cache.Cache
	ttl     time.Duration
	now     func() time.Time
	changes *observe.Subject[Change]
}

// NewService creates a Service. c may be nil to disable caching.
func NewService(s store.Store, c cache.Cache, ttl time.Duration) *Service {
	return &Service{
		store:   s,
		cache:   c,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		changes: observe.NewSubject[Change](),
	}
}

// Fetch implements Fetcher.
func (s *Service) Fetch(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error) {
	if !templateType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplateType, templateType)
	}
	key := cache.TemplateKey(tenantID, string(templateType))

	if s.cache != nil {
		raw, found, err := s.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("template cache read failed", "key", key, "error", err)
		}
		if found {
			var tpl models.TenantTemplate
			if err := json.Unmarshal(raw, &tpl); err == nil {
				return &tpl, nil
			}
			slog.Warn("discarding corrupt cached template", "key", key)
		}
	}

	tpl, err := s.store.GetTemplate(ctx, tenantID, templateType)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(tpl); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				slog.Warn("template cache write failed", "key", key, "error", err)
			}
		}
	}
	return tpl, nil
}

// Save validates and persists a template, superseding any previous version.
// Markup problems are reported as *ValidationError.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*models.TenantTemplate, error) {
	if req.TenantID == "" {
		return nil, &ValidationError{Result: ValidationResult{Errors: []string{"tenantId is required"}}}
	}
	if !req.TemplateType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplateType, req.TemplateType)
	}
	markup, err := Decode(req.Template)
	if err != nil {
		return nil, &ValidationError{Result: ValidationResult{Errors: []string{"Template is not valid base64"}}}
	}
	if strings.TrimSpace(markup) == "" {
		return nil, &ValidationError{Result: ValidationResult{Errors: []string{"Template is empty"}}}
	}
	if res := Validate(markup); !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	version := req.Version
	if version == "" {
		version = s.now().Format(time.RFC3339Nano)
	}

	saved, err := s.store.SaveTemplate(ctx, &models.TenantTemplate{
		TenantID:     req.TenantID,
		TemplateType: req.TemplateType,
		Template:     Encode(markup),
		Styles:       req.Styles,
		Version:      version,
	})
	if err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	s.invalidate(ctx, req.TenantID, req.TemplateType)

	slog.Info("template saved", "tenant_id", saved.TenantID, "template_type", saved.TemplateType, "version", saved.Version)
	return saved, nil
}

// List returns every template of a tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]*models.TenantTemplate, error) {
	return s.store.ListTemplates(ctx, tenantID)
}

// Delete removes a template. Missing templates yield ErrNotFound.
func (s *Service) Delete(ctx context.Context, tenantID string, templateType models.TemplateType) error {
	err := s.store.DeleteTemplate(ctx, tenantID, templateType)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	s.invalidate(ctx, tenantID, templateType)
	return nil
}

// Seed stores the built-in templates that are not present yet.
func (s *Service) Seed(ctx context.Context) error {
	for _, tpl := range Builtins() {
		err := s.store.CreateTemplate(ctx, tpl)
		if errors.Is(err, store.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed template %s/%s: %w", tpl.TenantID, tpl.TemplateType, err)
		}
		slog.Info("seeded template", "tenant_id", tpl.TenantID, "template_type", tpl.TemplateType)
	}
	return nil
}

// SubscribeChanges registers fn for every later save or deletion. A new
// subscriber may also receive the most recent change once.
func (s *Service) SubscribeChanges(fn func(Change)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func (s *Service) invalidate(ctx context.Context, tenantID string, templateType models.TemplateType) {
	if s.cache != nil {
		key := cache.TemplateKey(tenantID, string(templateType))
		if err := s.cache.Delete(ctx, key); err != nil {
			slog.Warn("template cache invalidation failed", "key", key, "error", err)
		}
	}
	s.changes.Publish(Change{TenantID: tenantID, TemplateType: templateType})
}

var (
	_ Fetcher        = (*Service)(nil)
	_ ChangeNotifier = (*Service)(nil)
)
