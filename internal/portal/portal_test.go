package portal_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
	"github.com/kiranshivaraju/tenantportal/internal/store"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// --- helpers ---

var (
	accountsOnce sync.Once
	accounts     *auth.Accounts
)

func fastAccounts(t *testing.T) *auth.Accounts {
	t.Helper()
	accountsOnce.Do(func() {
		a, err := auth.NewAccounts(bcrypt.MinCost,
			auth.Credential{Email: "admin@company.com", Password: "password123", Name: "Admin User", Roles: []string{"admin", "user"}},
			auth.Credential{Email: "demo@company.com", Password: "demo123", Name: "Demo User", Roles: []string{"demo"}},
		)
		if err != nil {
			panic(err)
		}
		accounts = a
	})
	return accounts
}

type recorder struct {
	mu      sync.Mutex
	open    int
	closed  int
	allowed map[string]bool
}

func (r *recorder) SessionOpened() { r.mu.Lock(); r.open++; r.mu.Unlock() }
func (r *recorder) SessionClosed() { r.mu.Lock(); r.closed++; r.mu.Unlock() }
func (r *recorder) ProductOpened(id string, allowed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allowed == nil {
		r.allowed = map[string]bool{}
	}
	r.allowed[id] = allowed
}

func testOptions(t *testing.T) portal.Options {
	t.Helper()
	svc := templates.NewService(store.NewMemoryStore(), nil, 0)
	require.NoError(t, svc.Seed(context.Background()))
	return portal.Options{
		Templates:   svc,
		NewProvider: func() auth.Provider { return auth.NewMockProvider(fastAccounts(t)) },
	}
}

func signedIn(t *testing.T, opts portal.Options, tenantID string) *portal.Session {
	t.Helper()
	s := portal.NewSession(opts)
	t.Cleanup(s.Close)
	_, err := s.SignIn(context.Background(), "admin@company.com", "password123")
	require.NoError(t, err)
	s.SwitchTenant(tenantID)
	settle(t, s)
	return s
}

func settle(t *testing.T, s *portal.Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.View().Wait(ctx))
}

func render(t *testing.T, s *portal.Session) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.View().Render(&buf))
	return buf.String()
}

// --- Session ---

func TestSession_SwitchTenantAppliesTheme(t *testing.T) {
	s := portal.NewSession(testOptions(t))
	defer s.Close()

	cfg := s.SwitchTenant("enterprise")
	assert.Equal(t, "enterprise", cfg.TenantID)
	v, ok := s.Tokens().Get("primary-main")
	require.True(t, ok)
	assert.Equal(t, "#6175be", v)

	assert.Equal(t, "default", s.SwitchTenant("unknown").TenantID)
	assert.Same(t, s.Tenant(), s.SwitchTenant("default"))
}

func TestSession_TokensAreIsolatedPerSession(t *testing.T) {
	opts := testOptions(t)
	a := portal.NewSession(opts)
	b := portal.NewSession(opts)
	defer a.Close()
	defer b.Close()

	a.SwitchTenant("creative")
	b.SwitchTenant("enterprise")

	va, _ := a.Tokens().Get("primary-main")
	vb, _ := b.Tokens().Get("primary-main")
	assert.Equal(t, "#f97316", va)
	assert.Equal(t, "#6175be", vb)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_OpenProductByID(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(t)
	opts.Recorder = rec
	s := portal.NewSession(opts)
	defer s.Close()

	ev, err := s.OpenProductByID("1")
	require.NoError(t, err)
	assert.Equal(t, "1", ev.ProductID)

	_, err = s.OpenProductByID("4")
	assert.ErrorIs(t, err, portal.ErrProductRestricted)
	_, err = s.OpenProductByID("nope")
	assert.ErrorIs(t, err, portal.ErrProductNotFound)

	require.Len(t, s.Opened(), 1)
	assert.Equal(t, map[string]bool{"1": true, "4": false}, rec.allowed)
}

func TestSession_CloseIsIdempotentAndRecorded(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(t)
	opts.Recorder = rec
	s := portal.NewSession(opts)

	s.Close()
	s.Close()
	assert.True(t, s.Closed())
	assert.Equal(t, 1, rec.open)
	assert.Equal(t, 1, rec.closed)
}

// --- View ---

func TestView_DefaultDashboardForPlainTenant(t *testing.T) {
	s := signedIn(t, testOptions(t), "enterprise")

	assert.Equal(t, templates.StateDefault, s.View().State())
	out := render(t, s)
	assert.Contains(t, out, "<h1>Goldman Sachs</h1>")
	assert.Contains(t, out, "Welcome, admin@company.com")
	assert.Contains(t, out, `<div class="user-avatar">AU</div>`)
	assert.Contains(t, out, `<span class="user-role">Admin</span>`)
	assert.Contains(t, out, "4 accessible")
	assert.Contains(t, out, "2 restricted")
	assert.Equal(t, 4, strings.Count(out, "product-card accessible"))
	assert.NotContains(t, out, templates.MountID)
}

func TestView_GridClassesFollowTenant(t *testing.T) {
	s := signedIn(t, testOptions(t), "creative")
	assert.Contains(t, render(t, s), `class="product-grid cards-layout cards-1"`)
}

func TestView_CustomTemplateForTechStartup(t *testing.T) {
	s := signedIn(t, testOptions(t), "tech-startup")

	require.Equal(t, templates.StateBound, s.View().State())
	out := render(t, s)
	assert.Contains(t, out, `id="`+templates.MountID+`"`)
	assert.Contains(t, out, "Admin User")
	assert.Contains(t, out, "NovaTech")
	assert.Contains(t, out, `data-product-id="5"`)

	sheet, ok := s.Tokens().Stylesheet(templates.TemplateCSSID)
	require.True(t, ok)
	assert.NotEmpty(t, sheet.CSS)
}

func TestView_CustomTemplateClicksGoThroughGate(t *testing.T) {
	s := signedIn(t, testOptions(t), "tech-startup")
	render(t, s)

	assert.True(t, s.View().Click("data-product-id", "2"))
	assert.False(t, s.View().Click("data-product-id", "6"))
	require.Len(t, s.Opened(), 1)
	assert.Equal(t, "2", s.Opened()[0].ProductID)
}

func TestView_DefaultDashboardClicks(t *testing.T) {
	s := signedIn(t, testOptions(t), "default")

	assert.True(t, s.View().Click("data-product-id", "3"))
	assert.False(t, s.View().Click("data-product-id", "4"))
	assert.False(t, s.View().Click("data-unknown", "x"))
	assert.Len(t, s.Opened(), 1)
}

func TestView_LogoutClickTearsDownTemplate(t *testing.T) {
	s := signedIn(t, testOptions(t), "tech-startup")
	render(t, s)

	assert.True(t, s.View().Click("data-action", "logout"))
	assert.False(t, s.Auth().IsAuthenticated)
	assert.Equal(t, templates.StateIdle, s.View().State())
	_, ok := s.Tokens().Stylesheet(templates.TemplateCSSID)
	assert.False(t, ok)
}

func TestView_SwitchAwayFromTemplateTenant(t *testing.T) {
	s := signedIn(t, testOptions(t), "tech-startup")
	render(t, s)

	s.SwitchTenant("startup")
	settle(t, s)
	assert.Equal(t, templates.StateDefault, s.View().State())
	assert.Contains(t, render(t, s), "Stripe Innovations")
}

func TestView_TemplateLoadedBeforeMountIsInjectedOnce(t *testing.T) {
	s := signedIn(t, testOptions(t), "tech-startup")

	// nothing rendered yet; the first render mounts the pending load
	first := render(t, s)
	second := render(t, s)
	assert.Equal(t, first, second)
}

func TestView_UnauthenticatedStaysIdle(t *testing.T) {
	s := portal.NewSession(testOptions(t))
	defer s.Close()

	s.SwitchTenant("tech-startup")
	settle(t, s)
	assert.Equal(t, templates.StateIdle, s.View().State())
	assert.Contains(t, render(t, s), `<div class="user-avatar">U</div>`)
}

func TestView_ClosedViewIgnoresEvents(t *testing.T) {
	s := signedIn(t, testOptions(t), "enterprise")
	s.Close()

	s.SwitchTenant("tech-startup")
	settle(t, s)
	assert.Equal(t, templates.StateIdle, s.View().State())
}

// --- Manager ---

func TestManager_CreateGetDelete(t *testing.T) {
	m := portal.NewManager(testOptions(t), time.Hour)
	defer m.Close()

	s := m.Create()
	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())

	m.Delete(s.ID())
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
	assert.True(t, s.Closed())
}

func TestManager_ExpiryClosesSession(t *testing.T) {
	m := portal.NewManager(testOptions(t), 20*time.Millisecond)
	defer m.Close()

	s := m.Create()
	time.Sleep(40 * time.Millisecond)
	m.Sweep()

	_, ok := m.Get(s.ID())
	assert.False(t, ok)
	assert.True(t, s.Closed())
}

func TestManager_CloseClosesAll(t *testing.T) {
	m := portal.NewManager(testOptions(t), time.Hour)
	a, b := m.Create(), m.Create()

	m.Close()
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Zero(t, m.Len())
}

func TestSession_SavedTemplateReplacesSessionCopy(t *testing.T) {
	svc := templates.NewService(store.NewMemoryStore(), nil, 0)
	require.NoError(t, svc.Seed(context.Background()))
	opts := portal.Options{
		Templates:        svc,
		TemplateChanges:  svc,
		TemplateCacheTTL: time.Hour,
		NewProvider:      func() auth.Provider { return auth.NewMockProvider(fastAccounts(t)) },
	}
	s := signedIn(t, opts, "tech-startup")
	require.Equal(t, templates.StateBound, s.View().State())
	assert.NotContains(t, render(t, s), "Second edition")

	_, err := svc.Save(context.Background(), templates.SaveRequest{
		TenantID:     "tech-startup",
		TemplateType: models.TemplateTypeDashboard,
		Template:     templates.Encode(`<section class="v2"><h2>Second edition</h2></section>`),
		Version:      "2.0.0",
	})
	require.NoError(t, err)

	s.SwitchTenant("startup")
	settle(t, s)
	s.SwitchTenant("tech-startup")
	settle(t, s)

	require.Equal(t, templates.StateBound, s.View().State())
	assert.Contains(t, render(t, s), "Second edition")
}
