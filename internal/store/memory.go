package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

type templateKey struct {
	tenantID     string
	templateType models.TemplateType
}

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[templateKey]models.TenantTemplate
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[templateKey]models.TenantTemplate),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) GetTemplate(_ context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[templateKey{tenantID, templateType}]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) SaveTemplate(_ context.Context, tpl *models.TenantTemplate) (*models.TenantTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := templateKey{tpl.TenantID, tpl.TemplateType}
	now := s.now()

	t := *tpl
	t.CreatedAt = now
	if prev, ok := s.templates[key]; ok {
		t.CreatedAt = prev.CreatedAt
	}
	t.UpdatedAt = now
	s.templates[key] = t
	return &t, nil
}

func (s *MemoryStore) CreateTemplate(_ context.Context, tpl *models.TenantTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := templateKey{tpl.TenantID, tpl.TemplateType}
	if _, ok := s.templates[key]; ok {
		return ErrDuplicateKey
	}
	t := *tpl
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.templates[key] = t
	return nil
}

func (s *MemoryStore) ListTemplates(_ context.Context, tenantID string) ([]*models.TenantTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.TenantTemplate{}
	for k, t := range s.templates {
		if k.tenantID == tenantID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TemplateType < out[j].TemplateType })
	return out, nil
}

func (s *MemoryStore) DeleteTemplate(_ context.Context, tenantID string, templateType models.TemplateType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := templateKey{tenantID, templateType}
	if _, ok := s.templates[key]; !ok {
		return ErrNotFound
	}
	delete(s.templates, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
