// Package catalog partitions the product catalog by access and gates product
// opens on the access flag.
package catalog

import (
	"log/slog"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// Accessible returns the products the user may open, in input order.
func Accessible(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.HasAccess {
			out = append(out, p)
		}
	}
	return out
}

// Restricted returns the products the user may not open, in input order.
func Restricted(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.HasAccess {
			out = append(out, p)
		}
	}
	return out
}

// Partition splits products in one pass.
func Partition(products []models.Product) (accessible, restricted []models.Product) {
	accessible = make([]models.Product, 0, len(products))
	restricted = make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.HasAccess {
			accessible = append(accessible, p)
		} else {
			restricted = append(restricted, p)
		}
	}
	return accessible, restricted
}

// Find returns the product with the given id.
func Find(products []models.Product, id string) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// OpenEvent asks the caller to navigate to a product.
type OpenEvent struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
}

// Opener performs the navigation for an OpenEvent.
type Opener interface {
	Open(OpenEvent)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(OpenEvent)

func (f OpenerFunc) Open(e OpenEvent) { f(e) }

// Gate decides eligibility for product opens. It never navigates itself.
type Gate struct {
	opener Opener
}

func NewGate(opener Opener) *Gate {
	return &Gate{opener: opener}
}

// Click emits an OpenEvent for accessible products and reports whether it
// did. Restricted products are ignored.
func (g *Gate) Click(p models.Product) bool {
	if !p.HasAccess {
		slog.Debug("product click ignored, no access", "product_id", p.ID)
		return false
	}
	if g.opener != nil {
		g.opener.Open(OpenEvent{ProductID: p.ID, Name: p.Name, URL: p.URL})
	}
	return true
}
