package templates

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// SessionCache keeps the templates a session has fetched so repeated tenant
// switches do not hit the origin. Absence is not cached. Entries live until
// the TTL expires or Invalidate drops them; Session wires Invalidate to the
// origin's ChangeNotifier when it has one.
type SessionCache struct {
	origin Fetcher
	c      *gocache.Cache
}

func NewSessionCache(origin Fetcher, ttl time.Duration) *SessionCache {
	return &SessionCache{
		origin: origin,
		c:      gocache.New(ttl, 2*ttl),
	}
}

func sessionKey(tenantID string, templateType models.TemplateType) string {
	return tenantID + "/" + string(templateType)
}

// Fetch implements Fetcher.
func (s *SessionCache) Fetch(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error) {
	key := sessionKey(tenantID, templateType)
	if v, ok := s.c.Get(key); ok {
		return v.(*models.TenantTemplate), nil
	}

	tpl, err := s.origin.Fetch(ctx, tenantID, templateType)
	if err != nil {
		return nil, err
	}
	s.c.SetDefault(key, tpl)
	return tpl, nil
}

// Invalidate drops one cached template.
func (s *SessionCache) Invalidate(tenantID string, templateType models.TemplateType) {
	s.c.Delete(sessionKey(tenantID, templateType))
}

// Flush drops every cached template.
func (s *SessionCache) Flush() {
	s.c.Flush()
}

var _ Fetcher = (*SessionCache)(nil)
