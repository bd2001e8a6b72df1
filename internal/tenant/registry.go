package tenant

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/kiranshivaraju/tenantportal/pkg/observe"
)

// hostKeywords are checked in order against the lower-cased hostname.
var hostKeywords = []string{"enterprise", "startup", "creative"}

// ResolveHost maps a hostname to a tenant id by substring match, falling
// back to the default tenant.
func ResolveHost(host string) string {
	h := strings.ToLower(host)
	for _, kw := range hostKeywords {
		if strings.Contains(h, kw) {
			return kw
		}
	}
	return DefaultTenantID
}

// ThemeApplier commits a configuration's visual identity.
type ThemeApplier interface {
	Apply(cfg *models.TenantConfiguration)
}

// Switcher is the hook that observes tenant activations (metrics).
type Switcher interface {
	TenantActivated(requested, resolved string)
}

// Registry tracks the active configuration of one portal session. Exactly one
// configuration is active after the first SetTenant; each call replaces it.
type Registry struct {
	dir      *Directory
	theme    ThemeApplier
	switches Switcher

	// switchMu serializes whole activations so subscribers are notified in
	// the order configurations became current.
	switchMu sync.Mutex

	mu      sync.Mutex
	current *models.TenantConfiguration
	subject *observe.Subject[*models.TenantConfiguration]
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSwitchObserver reports every activation to s.
func WithSwitchObserver(s Switcher) RegistryOption {
	return func(r *Registry) {
		r.switches = s
	}
}

func NewRegistry(dir *Directory, applier ThemeApplier, opts ...RegistryOption) *Registry {
	r := &Registry{
		dir:     dir,
		theme:   applier,
		subject: observe.NewSubject[*models.TenantConfiguration](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTenant activates id, substituting the default configuration for unknown
// ids. The theme is applied before subscribers are notified so observers
// always see style tokens that match the configuration they receive.
// Concurrent calls are applied and published one at a time.
func (r *Registry) SetTenant(id string) *models.TenantConfiguration {
	cfg, found := r.dir.Lookup(id)
	if !found {
		slog.Debug("unknown tenant, using default", "tenant_id", id)
	}

	r.switchMu.Lock()
	defer r.switchMu.Unlock()

	r.mu.Lock()
	r.current = cfg
	if r.theme != nil {
		r.theme.Apply(cfg)
	}
	r.mu.Unlock()

	if r.switches != nil {
		r.switches.TenantActivated(id, cfg.TenantID)
	}
	r.subject.Publish(cfg)
	return cfg
}

// SetTenantFromHost activates the tenant inferred from a hostname.
func (r *Registry) SetTenantFromHost(host string) *models.TenantConfiguration {
	return r.SetTenant(ResolveHost(host))
}

// Current returns the active configuration, or nil before the first SetTenant.
func (r *Registry) Current() *models.TenantConfiguration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers fn for every activation. fn is called immediately with
// the active configuration when one exists.
func (r *Registry) Subscribe(fn func(*models.TenantConfiguration)) (unsubscribe func()) {
	return r.subject.Subscribe(fn)
}

// Directory returns the table this registry resolves against.
func (r *Registry) Directory() *Directory {
	return r.dir
}
