// Package main is the entrypoint for the tenant portal API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kiranshivaraju/tenantportal/internal/api"
	"github.com/kiranshivaraju/tenantportal/internal/api/handler"
	mw "github.com/kiranshivaraju/tenantportal/internal/api/middleware"
	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/cache"
	"github.com/kiranshivaraju/tenantportal/internal/config"
	"github.com/kiranshivaraju/tenantportal/internal/metrics"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
	"github.com/kiranshivaraju/tenantportal/internal/store"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/internal/tenant"
)

const shutdownTimeout = 30 * time.Second

func main() {
	slog.SetDefault(newLogger(os.Stdout, slog.LevelInfo))

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("reading .env failed", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func run() error {
	// 1. Load config, fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.Server.LogLevel))
	slog.Info("config loaded", "env", cfg.Server.Env, "store_driver", cfg.Store.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Wire storage, sessions and routes
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	// 3. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// app is the assembled server: its handler plus everything that needs
// closing on shutdown.
type app struct {
	handler  http.Handler
	sessions *portal.Manager
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}
	fail := func(err error) (*app, error) {
		a.Close()
		return nil, err
	}

	// Store
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, closeStore)

	// Cache
	c, err := openCache(ctx, cfg)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, func() { c.Close() })

	// Templates
	svc := templates.NewService(st, c, cfg.Templates.CacheTTL)
	if err := svc.Seed(ctx); err != nil {
		return fail(fmt.Errorf("seed templates: %w", err))
	}

	// Tenants
	dir, err := loadDirectory(cfg.Tenants.File)
	if err != nil {
		return fail(err)
	}
	slog.Info("tenant directory loaded", "tenants", dir.Len())

	// Metrics
	m, err := metrics.New(nil)
	if err != nil {
		return fail(fmt.Errorf("create metrics: %w", err))
	}

	// Sessions
	a.sessions = portal.NewManager(portal.Options{
		Directory:        dir,
		Templates:        templateSource(cfg, svc),
		TemplateChanges:  svc,
		TemplateCacheTTL: cfg.Templates.CacheTTL,
		FetchTimeout:     cfg.Templates.FetchTimeout,
		Switches:         m,
		Resolutions:      m,
		Recorder:         m,
	}, cfg.Auth.AccessTokenTTL)
	a.closers = append(a.closers, a.sessions.Close)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)

	a.handler = api.NewRouter(api.Dependencies{
		Auth:           mw.NewAuth(issuer, a.sessions),
		RateLimit:      mw.NewRateLimit(c, cfg.Server.RateLimitPerMin),
		Metrics:        m,
		MetricsHandler: m.Handler(),

		HealthHandler: handler.NewHealthHandler(map[string]handler.Pinger{"store": st, "cache": c}),

		ListTenants:    handler.NewListTenantsHandler(dir),
		ResolveTenant:  handler.NewResolveTenantHandler(dir),
		GetTenant:      handler.NewGetTenantHandler(dir),
		TenantTokens:   handler.NewTenantTokensHandler(dir),
		TenantThemeCSS: handler.NewTenantThemeCSSHandler(dir),

		GetTemplate:      handler.NewGetTemplateHandler(svc),
		ListTemplates:    handler.NewListTemplatesHandler(svc),
		SaveTemplate:     handler.NewSaveTemplateHandler(svc),
		DeleteTemplate:   handler.NewDeleteTemplateHandler(svc),
		ValidateTemplate: handler.NewValidateTemplateHandler(),

		SignIn:       handler.NewSignInHandler(a.sessions, issuer),
		SignOut:      handler.NewSignOutHandler(a.sessions),
		Me:           handler.NewMeHandler(),
		SwitchTenant: handler.NewSwitchTenantHandler(issuer),

		ListProducts: handler.NewListProductsHandler(),
		OpenProduct:  handler.NewOpenProductHandler(),

		Dashboard:      handler.NewDashboardHandler(),
		DashboardClick: handler.NewDashboardClickHandler(a.sessions),
	})
	return a, nil
}

// openStore connects the configured template store. Postgres is migrated
// before use.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Store.Driver == "memory" {
		slog.Info("using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	slog.Info("database connected")

	if err := store.RunMigrations(cfg.Database.URL, cfg.Store.MigrationsDir); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	return store.NewPostgresStore(pool), pool.Close, nil
}

// openCache returns Redis when REDIS_URL is set, else an in-process cache.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.Redis.URL == "" {
		slog.Info("using in-process cache")
		return cache.NewMemoryCache(time.Minute), nil
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("create redis cache: %w", err)
	}
	if err := redisCache.Ping(ctx); err != nil {
		redisCache.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")
	return redisCache, nil
}

// loadDirectory returns the built-in tenants, overlaid with path when set.
func loadDirectory(path string) (*tenant.Directory, error) {
	if path == "" {
		return tenant.BuiltinDirectory(), nil
	}
	dir, err := tenant.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tenants file: %w", err)
	}
	return dir, nil
}

// templateSource is where sessions fetch custom templates from: a remote
// template API when configured, else the local service.
func templateSource(cfg *config.Config, svc *templates.Service) templates.Fetcher {
	if cfg.Templates.APIURL != "" {
		slog.Info("fetching templates from remote API", "url", cfg.Templates.APIURL)
		return templates.NewHTTPClient(cfg.Templates.APIURL, cfg.Templates.FetchTimeout)
	}
	return svc
}
