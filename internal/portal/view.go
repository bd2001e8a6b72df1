package portal

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/catalog"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/internal/tenant"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

//go:embed dashboard.html.tmpl
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

var settled = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// View is the dashboard of one session. It follows the active tenant and the
// authentication state, drives the template resolver, and renders either the
// bound custom template or the default dashboard.
type View struct {
	registry *tenant.Registry
	provider auth.Provider
	products []models.Product
	resolver *templates.Resolver
	actions  templates.Actions
	mount    *templates.Mount

	mu          sync.Mutex
	closed      bool
	mounted     bool
	tenant      *models.TenantConfiguration
	auth        models.AuthState
	settled     <-chan struct{}
	unsubscribe []func()
}

func NewView(registry *tenant.Registry, provider auth.Provider, products []models.Product, resolver *templates.Resolver, actions templates.Actions) *View {
	v := &View{
		registry: registry,
		provider: provider,
		products: products,
		resolver: resolver,
		actions:  actions,
		mount:    templates.NewMount(),
		settled:  settled,
	}
	unsubAuth := provider.Subscribe(v.onAuth)
	unsubTenant := registry.Subscribe(v.onTenant)

	v.mu.Lock()
	v.unsubscribe = []func(){unsubAuth, unsubTenant}
	v.mu.Unlock()
	return v
}

func (v *View) onAuth(s models.AuthState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.auth = s
	v.refreshLocked()
}

func (v *View) onTenant(cfg *models.TenantConfiguration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.tenant = cfg
	v.refreshLocked()
}

func (v *View) refreshLocked() {
	v.resolver.Rebind(v.bindingDataLocked())
	v.settled = v.resolver.Update(v.tenant, v.auth.IsAuthenticated)
}

func (v *View) bindingDataLocked() templates.BindingData {
	d := templates.BindingData{Tenant: v.tenant, Products: v.products}
	if v.auth.IsAuthenticated {
		d.User = v.auth.User
	}
	return d
}

// Mount attaches the view's mount point to the resolver. A template that
// finished loading earlier is injected now.
func (v *View) Mount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.mounted {
		return
	}
	v.mounted = true
	v.resolver.AttachMount(v.mount)
}

// Settled is closed once the most recent template request has settled.
func (v *View) Settled() <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.settled
}

// Wait blocks until the most recent template request settles or ctx ends.
func (v *View) Wait(ctx context.Context) error {
	select {
	case <-v.Settled():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *View) State() templates.State {
	return v.resolver.State()
}

// Custom reports whether the view shows a bound custom template.
func (v *View) Custom() bool {
	return v.resolver.State() == templates.StateBound
}

// Click dispatches a click on the element carrying attr=val. Custom
// templates use their bound handlers; the default dashboard handles product
// and logout clicks itself.
func (v *View) Click(attr, val string) bool {
	if v.Custom() {
		return v.mount.Click(attr, val)
	}
	switch {
	case attr == "data-product-id":
		p, ok := catalog.Find(v.products, val)
		if !ok || v.actions.OpenProduct == nil {
			return false
		}
		return v.actions.OpenProduct(p)
	case attr == "data-action" && val == "logout":
		if v.actions.SignOut == nil {
			return false
		}
		v.actions.SignOut()
		return true
	}
	return false
}

// Render writes the bound custom template, or the default dashboard.
func (v *View) Render(w io.Writer) error {
	v.Mount()
	if v.Custom() {
		_, err := fmt.Fprintf(w, "<div id=%q>%s</div>\n", templates.MountID, v.mount.HTML())
		return err
	}

	v.mu.Lock()
	data := newDashboardData(v.tenant, v.bindingDataLocked().User, v.products)
	v.mu.Unlock()
	if err := dashboardTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

// Close unsubscribes from both streams and tears the resolver down.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	unsubs := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()

	for _, fn := range unsubs {
		fn()
	}
	v.resolver.Teardown()
}

type dashboardData struct {
	TenantID       string
	TenantName     string
	ShowLogo       bool
	Logo           models.Logo
	HeaderClasses  string
	User           *models.User
	Initials       string
	DisplayName    string
	RoleLabel      string
	RoleCount      int
	ButtonClasses  string
	CardClasses    string
	WelcomeMessage string
	ShowStats      bool
	ShowCategories bool
	GridClasses    string
	Accessible     []models.Product
	Restricted     []models.Product
	FooterEnabled  bool
	FooterContent  string
}

func newDashboardData(cfg *models.TenantConfiguration, user *models.User, products []models.Product) dashboardData {
	accessible, restricted := catalog.Partition(products)
	d := dashboardData{
		TenantName:     "Enterprise Portal",
		HeaderClasses:  "header",
		User:           user,
		Initials:       user.Initials(),
		RoleLabel:      user.RoleLabel(),
		ButtonClasses:  models.ComponentConfig{}.Classes("btn"),
		CardClasses:    models.ComponentConfig{}.Classes("card"),
		WelcomeMessage: "Your Applications",
		GridClasses:    catalog.GridClasses(models.ProductGrid{}),
		Accessible:     accessible,
		Restricted:     restricted,
	}
	if user != nil {
		d.DisplayName = user.Name
		if d.DisplayName == "" {
			d.DisplayName = user.Email
		}
		d.RoleCount = len(user.Roles)
	}
	if cfg == nil {
		return d
	}

	d.TenantID = cfg.TenantID
	if cfg.Name != "" {
		d.TenantName = cfg.Name
	}
	d.ShowLogo = cfg.Layout.Header.ShowLogo && cfg.Logo.URL != ""
	d.Logo = cfg.Logo
	if cfg.Layout.Header.Sticky {
		d.HeaderClasses = "header sticky"
	}
	d.ButtonClasses = cfg.Components.Button.Classes("btn")
	d.CardClasses = cfg.Components.Card.Classes("card")
	if cfg.Dashboard.WelcomeMessage != "" {
		d.WelcomeMessage = cfg.Dashboard.WelcomeMessage
	}
	d.ShowStats = cfg.Dashboard.ShowStats
	d.ShowCategories = cfg.Dashboard.ProductGrid.ShowCategories
	d.GridClasses = catalog.GridClasses(cfg.Dashboard.ProductGrid)
	d.FooterEnabled = cfg.Layout.Footer.Enabled
	d.FooterContent = cfg.Layout.Footer.Content
	return d
}
