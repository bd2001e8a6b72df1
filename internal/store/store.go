package store

import (
	"context"
	"errors"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface for tenant templates. A template is
// keyed by (tenant id, template type); saving a key again supersedes it.
type Store interface {
	Ping(ctx context.Context) error

	GetTemplate(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error)
	// SaveTemplate inserts or replaces a template and returns the stored row.
	SaveTemplate(ctx context.Context, tpl *models.TenantTemplate) (*models.TenantTemplate, error)
	// CreateTemplate inserts a template and fails with ErrDuplicateKey when
	// the key already exists.
	CreateTemplate(ctx context.Context, tpl *models.TenantTemplate) error
	ListTemplates(ctx context.Context, tenantID string) ([]*models.TenantTemplate, error)
	DeleteTemplate(ctx context.Context, tenantID string, templateType models.TemplateType) error
}
