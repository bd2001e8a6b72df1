package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const templateColumns = `tenant_id, template_type, template, styles, version, created_at, updated_at`

func scanTemplate(row pgx.Row) (*models.TenantTemplate, error) {
	var t models.TenantTemplate
	err := row.Scan(&t.TenantID, &t.TemplateType, &t.Template, &t.Styles, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresStore) GetTemplate(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error) {
	t, err := scanTemplate(s.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM tenant_templates WHERE tenant_id = $1 AND template_type = $2`,
		tenantID, templateType))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) SaveTemplate(ctx context.Context, tpl *models.TenantTemplate) (*models.TenantTemplate, error) {
	t, err := scanTemplate(s.pool.QueryRow(ctx,
		`INSERT INTO tenant_templates (tenant_id, template_type, template, styles, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 ON CONFLICT (tenant_id, template_type) DO UPDATE SET
		   template = EXCLUDED.template,
		   styles = EXCLUDED.styles,
		   version = EXCLUDED.version,
		   updated_at = NOW()
		 RETURNING `+templateColumns,
		tpl.TenantID, tpl.TemplateType, tpl.Template, tpl.Styles, tpl.Version))
	if err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) CreateTemplate(ctx context.Context, tpl *models.TenantTemplate) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenant_templates (tenant_id, template_type, template, styles, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
		tpl.TenantID, tpl.TemplateType, tpl.Template, tpl.Styles, tpl.Version)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTemplates(ctx context.Context, tenantID string) ([]*models.TenantTemplate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+templateColumns+` FROM tenant_templates WHERE tenant_id = $1 ORDER BY template_type`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []*models.TenantTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (s *PostgresStore) DeleteTemplate(ctx context.Context, tenantID string, templateType models.TemplateType) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tenant_templates WHERE tenant_id = $1 AND template_type = $2`, tenantID, templateType)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
