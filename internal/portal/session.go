// Package portal wires the tenant registry, theme tokens, template resolver,
// product gate and identity provider into per-user sessions.
package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/catalog"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/internal/tenant"
	"github.com/kiranshivaraju/tenantportal/internal/theme"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductRestricted = errors.New("product restricted")
)

// Recorder observes session lifecycle and product launches (metrics).
type Recorder interface {
	SessionOpened()
	SessionClosed()
	ProductOpened(productID string, allowed bool)
}

// Options configures new sessions. Zero fields fall back to the built-in
// tenant directory, the demo catalog and the demo accounts.
type Options struct {
	Directory        *tenant.Directory
	Templates        templates.Fetcher
	Products         []models.Product
	NewProvider      func() auth.Provider
	TemplateChanges  templates.ChangeNotifier
	TemplateCacheTTL time.Duration
	FetchTimeout     time.Duration
	Switches         tenant.Switcher
	Resolutions      templates.ResolveObserver
	Recorder         Recorder
}

// Session is one user's portal: its own active tenant, style tokens,
// authentication state and dashboard view.
type Session struct {
	id        string
	createdAt time.Time
	provider  auth.Provider
	tokens    *theme.TokenStore
	registry  *tenant.Registry
	products  []models.Product
	gate      *catalog.Gate
	view      *View
	recorder  Recorder
	unwatch   func()

	mu        sync.Mutex
	opened    []catalog.OpenEvent
	closeOnce sync.Once
	closed    bool
}

type noTemplates struct{}

func (noTemplates) Fetch(context.Context, string, models.TemplateType) (*models.TenantTemplate, error) {
	return nil, templates.ErrNotFound
}

func NewSession(opts Options) *Session {
	dir := opts.Directory
	if dir == nil {
		dir = tenant.BuiltinDirectory()
	}
	products := opts.Products
	if products == nil {
		products = catalog.DemoProducts()
	}
	var provider auth.Provider
	if opts.NewProvider != nil {
		provider = opts.NewProvider()
	} else {
		provider = auth.NewMockProvider(auth.DemoAccounts())
	}

	s := &Session{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		provider:  provider,
		tokens:    theme.NewTokenStore(),
		products:  products,
		recorder:  opts.Recorder,
	}

	var regOpts []tenant.RegistryOption
	if opts.Switches != nil {
		regOpts = append(regOpts, tenant.WithSwitchObserver(opts.Switches))
	}
	s.registry = tenant.NewRegistry(dir, theme.NewApplicator(s.tokens), regOpts...)
	s.gate = catalog.NewGate(catalog.OpenerFunc(s.recordOpen))

	var fetcher templates.Fetcher = noTemplates{}
	if opts.Templates != nil {
		fetcher = opts.Templates
	}
	if opts.TemplateCacheTTL > 0 {
		sc := templates.NewSessionCache(fetcher, opts.TemplateCacheTTL)
		if opts.TemplateChanges != nil {
			s.unwatch = opts.TemplateChanges.SubscribeChanges(func(c templates.Change) {
				sc.Invalidate(c.TenantID, c.TemplateType)
			})
		}
		fetcher = sc
	}
	resolverOpts := []templates.ResolverOption{
		templates.WithStyleSink(s.tokens),
		templates.WithFetchTimeout(opts.FetchTimeout),
	}
	if opts.Resolutions != nil {
		resolverOpts = append(resolverOpts, templates.WithResolveObserver(opts.Resolutions))
	}
	actions := templates.Actions{OpenProduct: s.OpenProduct, SignOut: s.SignOut}
	resolver := templates.NewResolver(fetcher, actions, resolverOpts...)
	s.view = NewView(s.registry, s.provider, s.products, resolver, actions)

	if s.recorder != nil {
		s.recorder.SessionOpened()
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	return s.provider.SignIn(ctx, email, password)
}

func (s *Session) SignOut() { s.provider.SignOut() }

func (s *Session) Auth() models.AuthState { return s.provider.State() }

func (s *Session) Provider() auth.Provider { return s.provider }

// SwitchTenant activates id, falling back to the default tenant.
func (s *Session) SwitchTenant(id string) *models.TenantConfiguration {
	return s.registry.SetTenant(id)
}

// SwitchTenantFromHost activates the tenant a hostname maps to.
func (s *Session) SwitchTenantFromHost(host string) *models.TenantConfiguration {
	return s.registry.SetTenantFromHost(host)
}

// Tenant returns the active configuration, or nil before the first switch.
func (s *Session) Tenant() *models.TenantConfiguration { return s.registry.Current() }

func (s *Session) Tokens() *theme.TokenStore { return s.tokens }

func (s *Session) View() *View { return s.view }

func (s *Session) Products() []models.Product {
	return append([]models.Product(nil), s.products...)
}

// OpenProduct routes a product click through the access gate.
func (s *Session) OpenProduct(p models.Product) bool {
	allowed := s.gate.Click(p)
	if s.recorder != nil {
		s.recorder.ProductOpened(p.ID, allowed)
	}
	return allowed
}

// OpenProductByID opens a catalog product by id.
func (s *Session) OpenProductByID(id string) (catalog.OpenEvent, error) {
	p, ok := catalog.Find(s.products, id)
	if !ok {
		return catalog.OpenEvent{}, ErrProductNotFound
	}
	if !s.OpenProduct(p) {
		return catalog.OpenEvent{}, ErrProductRestricted
	}
	return catalog.OpenEvent{ProductID: p.ID, Name: p.Name, URL: p.URL}, nil
}

// Opened returns every open event emitted so far, oldest first.
func (s *Session) Opened() []catalog.OpenEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.OpenEvent(nil), s.opened...)
}

func (s *Session) recordOpen(e catalog.OpenEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = append(s.opened, e)
}

// Close tears the view down. Further tenant or auth events are ignored.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.view.Close()
		if s.unwatch != nil {
			s.unwatch()
		}
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		if s.recorder != nil {
			s.recorder.SessionClosed()
		}
	})
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
