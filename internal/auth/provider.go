// Package auth is the identity collaborator of the portal: a mock credential
// provider publishing an authentication state stream, signed access tokens,
// and role predicates used as route guards.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiranshivaraju/tenantportal/pkg/models"
	"github.com/kiranshivaraju/tenantportal/pkg/observe"
)

// ErrInvalidCredentials is returned by SignIn for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider is the authentication state the portal reacts to.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignOut()
	State() models.AuthState
	Subscribe(fn func(models.AuthState)) (unsubscribe func())
	AccessToken() (string, bool)
	HasRole(role string) bool
	HasAnyRole(roles ...string) bool
}

type account struct {
	user models.User
	hash []byte
}

// Accounts is a fixed credential table with bcrypt-hashed passwords.
type Accounts struct {
	byEmail map[string]account
}

// Credential is a plain-text account definition hashed by NewAccounts.
type Credential struct {
	Email    string
	Password string
	Name     string
	Roles    []string
}

var demoCredentials = []Credential{
	{Email: "admin@company.com", Password: "password123", Name: "Admin User", Roles: []string{"admin", "user"}},
	{Email: "user@company.com", Password: "password123", Name: "Regular User", Roles: []string{"user"}},
	{Email: "demo@company.com", Password: "demo123", Name: "Demo User", Roles: []string{"demo"}},
}

// NewAccounts hashes every credential at the given bcrypt cost.
func NewAccounts(cost int, creds ...Credential) (*Accounts, error) {
	a := &Accounts{byEmail: make(map[string]account, len(creds))}
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", c.Email, err)
		}
		key := strings.ToLower(c.Email)
		a.byEmail[key] = account{
			user: models.User{Email: c.Email, Name: c.Name, Roles: append([]string(nil), c.Roles...)},
			hash: hash,
		}
	}
	return a, nil
}

var (
	demoOnce     sync.Once
	demoAccounts *Accounts
)

// DemoAccounts returns the three demo users (admin, user, demo). Hashing
// happens once per process.
func DemoAccounts() *Accounts {
	demoOnce.Do(func() {
		a, err := NewAccounts(bcrypt.DefaultCost, demoCredentials...)
		if err != nil {
			panic(err)
		}
		demoAccounts = a
	})
	return demoAccounts
}

// Authenticate checks email and password and returns a copy of the user.
func (a *Accounts) Authenticate(email, password string) (*models.User, error) {
	acc, ok := a.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u := acc.user
	u.Roles = append([]string(nil), acc.user.Roles...)
	return &u, nil
}

// MockProvider signs users in against an Accounts table and publishes every
// state change, loading transitions included.
type MockProvider struct {
	accounts *Accounts
	delay    time.Duration
	now      func() time.Time
	subject  *observe.Subject[models.AuthState]

	mu    sync.Mutex
	token string
}

// MockOption configures a MockProvider.
type MockOption func(*MockProvider)

// WithSignInDelay simulates a slow identity service.
func WithSignInDelay(d time.Duration) MockOption {
	return func(p *MockProvider) { p.delay = d }
}

func NewMockProvider(accounts *Accounts, opts ...MockOption) *MockProvider {
	p := &MockProvider{
		accounts: accounts,
		now:      time.Now,
		subject:  observe.NewBehaviorSubject(models.AuthState{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *MockProvider) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	p.setLoading(true)

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			p.setLoading(false)
			return nil, ctx.Err()
		}
	}

	user, err := p.accounts.Authenticate(email, password)
	if err != nil {
		slog.Debug("sign-in rejected", "email", email)
		p.setLoading(false)
		return nil, err
	}

	p.mu.Lock()
	p.token = fmt.Sprintf("mock_token_%d", p.now().UnixMilli())
	p.mu.Unlock()

	p.subject.Publish(models.AuthState{User: user, IsAuthenticated: true})
	return user, nil
}

func (p *MockProvider) SignOut() {
	p.mu.Lock()
	p.token = ""
	p.mu.Unlock()
	p.subject.Publish(models.AuthState{})
}

func (p *MockProvider) State() models.AuthState {
	s, _ := p.subject.Value()
	return s
}

// Subscribe delivers the current state immediately, then every change.
func (p *MockProvider) Subscribe(fn func(models.AuthState)) (unsubscribe func()) {
	return p.subject.Subscribe(fn)
}

// AccessToken returns the opaque token of the signed-in user.
func (p *MockProvider) AccessToken() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, p.token != ""
}

func (p *MockProvider) HasRole(role string) bool {
	return p.State().User.HasRole(role)
}

func (p *MockProvider) HasAnyRole(roles ...string) bool {
	return p.State().User.HasAnyRole(roles...)
}

func (p *MockProvider) setLoading(loading bool) {
	s := p.State()
	s.IsLoading = loading
	p.subject.Publish(s)
}

// Compile-time check that MockProvider implements Provider.
var _ Provider = (*MockProvider)(nil)
