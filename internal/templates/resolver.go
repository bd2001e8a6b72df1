// Package templates resolves, decodes, binds and persists tenant-supplied
// view templates.
package templates

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// ErrNotFound is returned by a Fetcher when a tenant has no template of the
// requested type.
var ErrNotFound = errors.New("template not found")

// TemplateCSSID is the stylesheet id for styles shipped with a bound template.
const TemplateCSSID = "tenant-template-css"

// Fetcher loads one template by key.
type Fetcher interface {
	Fetch(ctx context.Context, tenantID string, templateType models.TemplateType) (*models.TenantTemplate, error)
}

// StyleSink receives template stylesheets. *theme.TokenStore implements it.
type StyleSink interface {
	InjectStylesheet(id, css string)
	RemoveStylesheet(id string)
}

// ResolveObserver is notified when a load settles (metrics).
type ResolveObserver interface {
	TemplateResolved(tenantID string, state State, elapsed time.Duration)
}

// State is the resolver's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateBound
	StateDefault
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateBound:
		return "bound"
	case StateDefault:
		return "default"
	}
	return "unknown"
}

var settled = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

type pendingLoad struct {
	markup string
	styles string
}

// Resolver decides, per dashboard view, whether the view renders its default
// structure or a custom template, and owns the custom content's lifecycle.
type Resolver struct {
	fetcher    Fetcher
	actions    Actions
	styles     StyleSink
	directives []Directive
	timeout    time.Duration
	observer   ResolveObserver

	mu       sync.Mutex
	state    State
	seq      uint64
	tenantID string
	cancel   context.CancelFunc
	done     chan struct{}
	template *models.TenantTemplate
	markup   string
	pending  *pendingLoad
	mount    *Mount
	data     BindingData
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithStyleSink(s StyleSink) ResolverOption {
	return func(r *Resolver) { r.styles = s }
}

func WithDirectives(d []Directive) ResolverOption {
	return func(r *Resolver) { r.directives = d }
}

// WithFetchTimeout bounds each fetch. Zero means no timeout.
func WithFetchTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

func WithResolveObserver(o ResolveObserver) ResolverOption {
	return func(r *Resolver) { r.observer = o }
}

func NewResolver(fetcher Fetcher, actions Actions, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher:    fetcher,
		actions:    actions,
		directives: DefaultDirectives,
		done:       settled,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Update reacts to a tenant or authentication change. The returned channel
// is closed once the resulting request has settled, whether its result was
// applied or discarded as stale.
func (r *Resolver) Update(cfg *models.TenantConfiguration, authenticated bool) <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !authenticated || cfg == nil {
		r.resetLocked(StateIdle)
		return settled
	}
	if !cfg.Customization.EnableCustomTemplates {
		r.resetLocked(StateDefault)
		return settled
	}
	if cfg.TenantID == r.tenantID && (r.state == StateLoading || r.state == StateBound) {
		return r.done
	}

	r.resetLocked(StateLoading)
	r.tenantID = cfg.TenantID

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), r.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done

	go r.load(ctx, r.seq, cfg.TenantID, done)
	return done
}

func (r *Resolver) load(ctx context.Context, seq uint64, tenantID string, done chan struct{}) {
	defer close(done)
	start := time.Now()
	tpl, err := r.fetcher.Fetch(ctx, tenantID, models.TemplateTypeDashboard)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Last request wins: a newer Update or a Teardown supersedes this one.
	if seq != r.seq || tenantID != r.tenantID || r.state != StateLoading {
		slog.Debug("discarding superseded template load", "tenant_id", tenantID)
		return
	}
	r.cancel()
	r.cancel = nil

	r.settleLocked(tpl, err)
	if r.observer != nil {
		r.observer.TemplateResolved(tenantID, r.state, time.Since(start))
	}
}

func (r *Resolver) settleLocked(tpl *models.TenantTemplate, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		slog.Debug("no custom template, using default dashboard", "tenant_id", r.tenantID)
		r.state = StateDefault
		return
	case err != nil:
		slog.Warn("template fetch failed, using default dashboard", "tenant_id", r.tenantID, "error", err)
		r.state = StateDefault
		return
	case tpl == nil || strings.TrimSpace(tpl.Template) == "":
		r.state = StateDefault
		return
	}

	markup, err := Decode(tpl.Template)
	if err != nil {
		slog.Warn("template decode failed, using default dashboard", "tenant_id", r.tenantID, "error", err)
		r.state = StateDefault
		return
	}

	r.state = StateBound
	r.template = tpl
	r.markup = markup
	load := &pendingLoad{markup: markup, styles: tpl.Styles}
	if r.mount == nil {
		r.pending = load
		return
	}
	r.mountLocked(load)
}

// AttachMount supplies the mount point. A load that completed before the
// mount existed is applied now, exactly once.
func (r *Resolver) AttachMount(m *Mount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mount = m
	if r.pending == nil {
		return
	}
	load := r.pending
	r.pending = nil
	r.mountLocked(load)
}

func (r *Resolver) mountLocked(load *pendingLoad) {
	if err := r.mount.SetContent(load.markup); err != nil {
		slog.Warn("template mount failed, using default dashboard", "tenant_id", r.tenantID, "error", err)
		r.detachLocked()
		r.state = StateDefault
		return
	}
	if r.styles != nil && strings.TrimSpace(load.styles) != "" {
		r.styles.InjectStylesheet(TemplateCSSID, load.styles)
	}
	Bind(r.mount, r.directives, r.data, r.actions)
}

// Rebind records new live data and, while Bound and mounted, re-runs the
// binding pass.
func (r *Resolver) Rebind(data BindingData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	if r.state == StateBound && r.mount != nil && r.pending == nil {
		Bind(r.mount, r.directives, r.data, r.actions)
	}
}

// Teardown detaches all custom content and returns to Idle. In-flight loads
// are discarded.
func (r *Resolver) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked(StateIdle)
	r.mount = nil
}

func (r *Resolver) resetLocked(next State) {
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.detachLocked()
	r.tenantID = ""
	r.done = settled
	r.state = next
}

func (r *Resolver) detachLocked() {
	if r.mount != nil {
		r.mount.Clear()
	}
	if r.styles != nil {
		r.styles.RemoveStylesheet(TemplateCSSID)
	}
	r.pending = nil
	r.template = nil
	r.markup = ""
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Markup returns the decoded markup while Bound.
func (r *Resolver) Markup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markup
}

// Template returns the bound template, or nil.
func (r *Resolver) Template() *models.TenantTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.template
}

// Pending reports whether a completed load is waiting for a mount point.
func (r *Resolver) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}
