package tenant_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kiranshivaraju/tenantportal/internal/tenant"
	"github.com/kiranshivaraju/tenantportal/internal/theme"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSwitcher struct {
	calls [][2]string
}

func (r *recordingSwitcher) TenantActivated(requested, resolved string) {
	r.calls = append(r.calls, [2]string{requested, resolved})
}

func newRegistry(t *testing.T) (*tenant.Registry, *theme.TokenStore) {
	t.Helper()
	store := theme.NewTokenStore()
	return tenant.NewRegistry(tenant.BuiltinDirectory(), theme.NewApplicator(store)), store
}

// --- Directory ---

func TestBuiltins_AllValid(t *testing.T) {
	d := tenant.BuiltinDirectory()
	assert.Equal(t, []string{"creative", "default", "enterprise", "startup", "tech-startup"}, d.IDs())
	for _, id := range d.IDs() {
		cfg, found := d.Lookup(id)
		require.True(t, found)
		assert.NoError(t, cfg.Validate())
		assert.Equal(t, id, cfg.TenantID)
	}
}

func TestBuiltins_FreshCopies(t *testing.T) {
	a := tenant.Builtins()
	b := tenant.Builtins()
	a[0].Name = "mutated"
	assert.NotEqual(t, a[0].Name, b[0].Name)
}

func TestBuiltins_OnlyTechStartupEnablesTemplates(t *testing.T) {
	for _, cfg := range tenant.Builtins() {
		assert.Equal(t, cfg.TenantID == "tech-startup", cfg.Customization.EnableCustomTemplates, cfg.TenantID)
	}
}

func TestDirectory_LookupUnknownFallsBack(t *testing.T) {
	d := tenant.BuiltinDirectory()
	cfg, found := d.Lookup("nonexistent")
	assert.False(t, found)
	assert.Equal(t, tenant.DefaultTenantID, cfg.TenantID)
}

func TestNewDirectory_RejectsDuplicates(t *testing.T) {
	b := tenant.Builtins()
	_, err := tenant.NewDirectory(b[0], b[0])
	assert.ErrorIs(t, err, tenant.ErrDuplicateTenant)
}

func TestNewDirectory_RequiresDefault(t *testing.T) {
	b := tenant.Builtins()
	_, err := tenant.NewDirectory(b[1])
	assert.ErrorIs(t, err, tenant.ErrMissingDefault)
}

func TestNewDirectory_RejectsPartialPalette(t *testing.T) {
	b := tenant.Builtins()
	b[0].Theme.Colors.Accent.S700 = ""
	_, err := tenant.NewDirectory(b...)
	assert.ErrorIs(t, err, models.ErrIncompletePalette)
}

const overlayYAML = `
tenants:
  - tenantId: acme
    name: Acme Corp
    theme:
      colors:
        primary:   {"50": "#000000", "100": "#111111", "200": "#222222", "300": "#333333", "400": "#444444", "500": "#555555", "600": "#666666", "700": "#777777", "800": "#888888", "900": "#999999"}
        secondary: {"50": "#000000", "100": "#111111", "200": "#222222", "300": "#333333", "400": "#444444", "500": "#555555", "600": "#666666", "700": "#777777", "800": "#888888", "900": "#999999"}
        accent:    {"50": "#000000", "100": "#111111", "200": "#222222", "300": "#333333", "400": "#444444", "500": "#555555", "600": "#666666", "700": "#777777", "800": "#888888", "900": "#999999"}
      spacing:
        borderRadius: 2px
        spacingUnit: 8px
    dashboard:
      productGrid:
        layout: list
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_AddsTenant(t *testing.T) {
	d, err := tenant.LoadFile(writeFile(t, overlayYAML))
	require.NoError(t, err)

	cfg, found := d.Lookup("acme")
	require.True(t, found)
	assert.Equal(t, "Acme Corp", cfg.Name)
	assert.Equal(t, "#555555", cfg.Theme.Colors.Primary.S500)
	assert.Equal(t, models.GridLayoutList, cfg.Dashboard.ProductGrid.Layout)
	assert.Equal(t, 6, d.Len())
}

func TestLoadFile_DuplicateInFile(t *testing.T) {
	body := overlayYAML + `
  - tenantId: acme
    name: Again
`
	_, err := tenant.LoadFile(writeFile(t, body))
	assert.ErrorIs(t, err, tenant.ErrDuplicateTenant)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := tenant.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_IncompletePalette(t *testing.T) {
	body := `
tenants:
  - tenantId: half
    theme:
      colors:
        primary: {"50": "#000000"}
`
	_, err := tenant.LoadFile(writeFile(t, body))
	assert.ErrorIs(t, err, models.ErrIncompletePalette)
}

// --- Registry ---

func TestSetTenant_Enterprise(t *testing.T) {
	r, store := newRegistry(t)
	cfg := r.SetTenant("enterprise")

	assert.Equal(t, "Goldman Sachs", cfg.Name)
	assert.Same(t, cfg, r.Current())
	v, ok := store.Get("primary-main")
	require.True(t, ok)
	assert.Equal(t, "#6175be", v)
}

func TestSetTenant_UnknownUsesDefault(t *testing.T) {
	r, _ := newRegistry(t)
	cfg := r.SetTenant("nonexistent")
	assert.Equal(t, tenant.DefaultTenantID, cfg.TenantID)
	assert.Equal(t, "TechCorp Solutions", cfg.Name)
}

func TestSetTenant_SameObjectEachTime(t *testing.T) {
	r, _ := newRegistry(t)
	first := r.SetTenant("startup")
	r.SetTenant("creative")
	again := r.SetTenant("startup")
	assert.Same(t, first, again)
}

func TestSetTenant_ThemeAppliedBeforeNotify(t *testing.T) {
	r, store := newRegistry(t)
	var seen string
	r.Subscribe(func(cfg *models.TenantConfiguration) {
		seen, _ = store.Get("primary-main")
	})
	r.SetTenant("creative")
	assert.Equal(t, "#f97316", seen)
}

func TestSubscribe_OrderAndReplay(t *testing.T) {
	r, _ := newRegistry(t)
	var got []string
	unsub := r.Subscribe(func(cfg *models.TenantConfiguration) { got = append(got, cfg.TenantID) })

	r.SetTenant("enterprise")
	r.SetTenant("startup")
	assert.Equal(t, []string{"enterprise", "startup"}, got)

	var late []string
	r.Subscribe(func(cfg *models.TenantConfiguration) { late = append(late, cfg.TenantID) })
	assert.Equal(t, []string{"startup"}, late)

	unsub()
	r.SetTenant("creative")
	assert.Equal(t, []string{"enterprise", "startup"}, got)
}

func TestCurrent_NilBeforeFirstSet(t *testing.T) {
	r, _ := newRegistry(t)
	assert.Nil(t, r.Current())
}

func TestSwitchObserver(t *testing.T) {
	sw := &recordingSwitcher{}
	r := tenant.NewRegistry(tenant.BuiltinDirectory(), nil, tenant.WithSwitchObserver(sw))
	r.SetTenant("ghost")
	r.SetTenant("creative")
	assert.Equal(t, [][2]string{{"ghost", "default"}, {"creative", "creative"}}, sw.calls)
}

// blockingSwitcher holds the first activation of tenant block until release
// is closed.
type blockingSwitcher struct {
	block   string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingSwitcher) TenantActivated(_, resolved string) {
	if resolved != b.block {
		return
	}
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
}

func TestSetTenant_ConcurrentSwitchesPublishInActivationOrder(t *testing.T) {
	sw := &blockingSwitcher{block: "enterprise", entered: make(chan struct{}), release: make(chan struct{})}
	store := theme.NewTokenStore()
	r := tenant.NewRegistry(tenant.BuiltinDirectory(), theme.NewApplicator(store), tenant.WithSwitchObserver(sw))

	var mu sync.Mutex
	var last string
	r.Subscribe(func(cfg *models.TenantConfiguration) {
		mu.Lock()
		last = cfg.TenantID
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.SetTenant("enterprise")
	}()
	<-sw.entered

	creativeDone := make(chan struct{})
	go func() {
		defer wg.Done()
		r.SetTenant("creative")
		close(creativeDone)
	}()

	select {
	case <-creativeDone:
		t.Fatal("second switch completed while the first was still publishing")
	case <-time.After(50 * time.Millisecond):
	}
	close(sw.release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "creative", r.Current().TenantID)
	assert.Equal(t, r.Current().TenantID, last)
	v, _ := store.Get("primary-main")
	assert.Equal(t, "#f97316", v)
}

func TestResolveHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"enterprise.example.com", "enterprise"},
		{"my-Startup.io", "startup"},
		{"CREATIVE.portal.dev", "creative"},
		{"localhost", "default"},
		{"", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, tenant.ResolveHost(tt.host))
		})
	}
}

func TestSetTenantFromHost(t *testing.T) {
	r, _ := newRegistry(t)
	cfg := r.SetTenantFromHost("portal.enterprise.acme.com")
	assert.Equal(t, "enterprise", cfg.TenantID)
}
