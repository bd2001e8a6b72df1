package catalog_test

import (
	"math/rand"
	"testing"

	"github.com/kiranshivaraju/tenantportal/internal/catalog"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestDemoScenario(t *testing.T) {
	products := catalog.DemoProducts()
	assert.Equal(t, []string{"1", "2", "3", "5"}, ids(catalog.Accessible(products)))
	assert.Equal(t, []string{"4", "6"}, ids(catalog.Restricted(products)))
}

func TestFilters_EmptyInputNeverNil(t *testing.T) {
	assert.NotNil(t, catalog.Accessible(nil))
	assert.NotNil(t, catalog.Restricted(nil))
	a, r := catalog.Partition(nil)
	assert.NotNil(t, a)
	assert.NotNil(t, r)
}

func TestPartition_UnionDisjointOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := rng.Intn(20)
		products := make([]models.Product, n)
		for i := range products {
			products[i] = models.Product{ID: string(rune('a' + i)), HasAccess: rng.Intn(2) == 0}
		}

		acc := catalog.Accessible(products)
		res := catalog.Restricted(products)
		require.Equal(t, n, len(acc)+len(res))

		// merging the two subsets by original index reproduces the input
		ai, ri := 0, 0
		for _, p := range products {
			if p.HasAccess {
				require.Equal(t, p.ID, acc[ai].ID)
				ai++
			} else {
				require.Equal(t, p.ID, res[ri].ID)
				ri++
			}
		}

		pa, pr := catalog.Partition(products)
		assert.Equal(t, acc, pa)
		assert.Equal(t, res, pr)
	}
}

func TestGate_ClickAccessibleEmits(t *testing.T) {
	var got []catalog.OpenEvent
	g := catalog.NewGate(catalog.OpenerFunc(func(e catalog.OpenEvent) { got = append(got, e) }))

	p, ok := catalog.Find(catalog.DemoProducts(), "2")
	require.True(t, ok)
	assert.True(t, g.Click(p))
	assert.Equal(t, []catalog.OpenEvent{{ProductID: "2", Name: "Analytics Platform", URL: "/analytics"}}, got)
}

func TestGate_ClickRestrictedIsNoop(t *testing.T) {
	called := false
	g := catalog.NewGate(catalog.OpenerFunc(func(catalog.OpenEvent) { called = true }))

	p, _ := catalog.Find(catalog.DemoProducts(), "4")
	assert.False(t, g.Click(p))
	assert.False(t, called)
}

func TestGate_NilOpener(t *testing.T) {
	g := catalog.NewGate(nil)
	assert.True(t, g.Click(models.Product{ID: "x", HasAccess: true}))
}

func TestFind_Missing(t *testing.T) {
	_, ok := catalog.Find(catalog.DemoProducts(), "99")
	assert.False(t, ok)
}

func TestGridClasses(t *testing.T) {
	tests := []struct {
		name string
		grid models.ProductGrid
		want string
	}{
		{"grid", models.ProductGrid{Layout: "grid", ItemsPerRow: 4}, "product-grid grid-4"},
		{"list", models.ProductGrid{Layout: "list", ItemsPerRow: 4}, "product-grid list-layout"},
		{"cards", models.ProductGrid{Layout: "cards", ItemsPerRow: 2}, "product-grid cards-layout cards-2"},
		{"defaults", models.ProductGrid{}, "product-grid grid-3"},
		{"unknown layout", models.ProductGrid{Layout: "masonry", ItemsPerRow: 5}, "product-grid grid-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.GridClasses(tt.grid))
		})
	}
}
