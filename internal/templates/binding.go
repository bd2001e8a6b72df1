package templates

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kiranshivaraju/tenantportal/internal/catalog"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// BindingKind is what a directive does to the elements it selects.
type BindingKind int

const (
	// BindText overwrites the element's text with a live value.
	BindText BindingKind = iota
	// BindProductList replaces the element's children with generated product items.
	BindProductList
	// BindProductClick wires the product-open action to accessible products.
	BindProductClick
	// BindSignOut wires the sign-out action.
	BindSignOut
)

// DataSource names the live value a directive reads.
type DataSource string

const (
	SourceUserName           DataSource = "user.name"
	SourceUserEmail          DataSource = "user.email"
	SourceUserInitials       DataSource = "user.initials"
	SourceTenantName         DataSource = "tenant.name"
	SourceAccessibleCount    DataSource = "products.accessible.count"
	SourceRestrictedCount    DataSource = "products.restricted.count"
	SourceAccessibleProducts DataSource = "products.accessible"
	SourceRestrictedProducts DataSource = "products.restricted"
	SourceProducts           DataSource = "products"
	SourceSession            DataSource = "session"
)

// Directive binds every element matching Selector.
type Directive struct {
	Selector Selector
	Kind     BindingKind
	Source   DataSource
}

// DefaultDirectives is the binding pass run over custom markup. List
// directives come first so generated items receive the click binding.
var DefaultDirectives = []Directive{
	{Selector{Attr: "data-accessible-products"}, BindProductList, SourceAccessibleProducts},
	{Selector{Attr: "data-restricted-products"}, BindProductList, SourceRestrictedProducts},
	{Selector{Attr: "data-user-name"}, BindText, SourceUserName},
	{Selector{Attr: "data-user-email"}, BindText, SourceUserEmail},
	{Selector{Attr: "data-user-initials"}, BindText, SourceUserInitials},
	{Selector{Attr: "data-tenant-name"}, BindText, SourceTenantName},
	{Selector{Attr: "data-accessible-count"}, BindText, SourceAccessibleCount},
	{Selector{Attr: "data-restricted-count"}, BindText, SourceRestrictedCount},
	{Selector{Attr: "data-action", Value: "logout"}, BindSignOut, SourceSession},
	{Selector{Attr: "data-product-id"}, BindProductClick, SourceProducts},
}

// BindingData is the live data a binding pass reads.
type BindingData struct {
	User     *models.User
	Tenant   *models.TenantConfiguration
	Products []models.Product
}

// Actions are the interaction handlers the binding pass attaches.
type Actions struct {
	OpenProduct func(models.Product) bool
	SignOut     func()
}

func (d BindingData) text(src DataSource) (string, bool) {
	switch src {
	case SourceUserName:
		if d.User == nil {
			return "", false
		}
		return d.User.Name, true
	case SourceUserEmail:
		if d.User == nil {
			return "", false
		}
		return d.User.Email, true
	case SourceUserInitials:
		return d.User.Initials(), true
	case SourceTenantName:
		if d.Tenant == nil {
			return "", false
		}
		return d.Tenant.Name, true
	case SourceAccessibleCount:
		return strconv.Itoa(len(catalog.Accessible(d.Products))), true
	case SourceRestrictedCount:
		return strconv.Itoa(len(catalog.Restricted(d.Products))), true
	}
	return "", false
}

func (d BindingData) list(src DataSource) []models.Product {
	switch src {
	case SourceAccessibleProducts:
		return catalog.Accessible(d.Products)
	case SourceRestrictedProducts:
		return catalog.Restricted(d.Products)
	}
	return nil
}

// Bind runs directives over the mount. It is safe to run repeatedly:
// text is overwritten, lists are regenerated and handlers replaced.
func Bind(m *Mount, directives []Directive, data BindingData, actions Actions) {
	m.apply(func(root *html.Node, on func(*html.Node, func())) {
		for _, d := range directives {
			for _, n := range findAll(root, d.Selector) {
				bindNode(n, d, data, actions, on)
			}
		}
	})
}

func bindNode(n *html.Node, d Directive, data BindingData, actions Actions, on func(*html.Node, func())) {
	switch d.Kind {
	case BindText:
		if v, ok := data.text(d.Source); ok {
			setText(n, v)
		}
	case BindProductList:
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		for _, p := range data.list(d.Source) {
			n.AppendChild(productItem(p))
		}
	case BindProductClick:
		p, ok := catalog.Find(data.Products, attr(n, d.Selector.Attr))
		if !ok || !p.HasAccess || actions.OpenProduct == nil {
			return
		}
		open := actions.OpenProduct
		on(n, func() { open(p) })
	case BindSignOut:
		if actions.SignOut != nil {
			on(n, actions.SignOut)
		}
	}
}

// productItem builds the markup for one generated list entry.
func productItem(p models.Product) *html.Node {
	state, status := "restricted", "Restricted"
	if p.HasAccess {
		state, status = "accessible", "Available"
	}

	icon := element(atom.Div, "product-icon")
	icon.Attr = append(icon.Attr, html.Attribute{Key: "data-icon", Val: p.IconName})

	item := element(atom.Div, "product-item "+state,
		icon,
		element(atom.Div, "product-info",
			element(atom.H4, "", text(p.Name)),
			element(atom.P, "", text(p.Description)),
			element(atom.Span, "category", text(p.Category)),
		),
		element(atom.Span, "product-status "+state, text(status)),
	)
	item.Attr = append(item.Attr, html.Attribute{Key: "data-product-id", Val: p.ID})
	return item
}
