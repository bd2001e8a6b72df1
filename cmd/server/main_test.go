package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/tenantportal/internal/cache"
	"github.com/kiranshivaraju/tenantportal/internal/config"
	"github.com/kiranshivaraju/tenantportal/internal/templates"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: "test", LogLevel: slog.LevelInfo, RateLimitPerMin: 1000},
		Store:  config.StoreConfig{Driver: "memory"},
		Auth: config.AuthConfig{
			JWTSecret:      "main-test-secret-0123456789abcdef",
			Issuer:         "tenantportal",
			AccessTokenTTL: time.Hour,
		},
		Templates: config.TemplatesConfig{CacheTTL: time.Minute, FetchTimeout: time.Second},
	}
}

// ─── logger ─────────────────────────────────────────────────────────────────

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "tenant_id", "acme")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"tenant_id":"acme"`)
}

// ─── wiring helpers ─────────────────────────────────────────────────────────

func TestLoadDirectory_Builtin(t *testing.T) {
	dir, err := loadDirectory("")
	require.NoError(t, err)
	assert.Equal(t, 5, dir.Len())
}

func TestLoadDirectory_MissingFile(t *testing.T) {
	_, err := loadDirectory(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTemplateSource(t *testing.T) {
	cfg := memoryConfig()
	svc := templates.NewService(nil, nil, 0)

	assert.Same(t, svc, templateSource(cfg, svc))

	cfg.Templates.APIURL = "http://templates.internal"
	_, remote := templateSource(cfg, svc).(*templates.HTTPClient)
	assert.True(t, remote)
}

func TestOpenCache_InProcessWithoutRedis(t *testing.T) {
	c, err := openCache(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.(*cache.MemoryCache)
	assert.True(t, ok)
}

func TestOpenCache_UnreachableRedis(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.URL = "redis://127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := openCache(ctx, cfg)
	assert.Error(t, err)
}

// ─── assembled server ───────────────────────────────────────────────────────

func TestNewApp_MemoryStack(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.handler)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// seeded template is served
	resp, err = http.Get(srv.URL + "/api/templates/tech-startup/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// demo account signs in and gets a dashboard
	payload, _ := json.Marshal(map[string]string{
		"email": "user@company.com", "password": "password123", "tenantId": "enterprise",
	})
	resp, err = http.Post(srv.URL+"/api/v1/auth/signin", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	var signin struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signin))
	resp.Body.Close()
	require.NotEmpty(t, signin.Data.Token)
	assert.Equal(t, 1, a.sessions.Len())

	req, _ := http.NewRequest("GET", srv.URL+"/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signin.Data.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), "Goldman Sachs")

	// metrics reflect the session and the routes served
	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	metrics := string(body)
	assert.Contains(t, metrics, "tenantportal_active_sessions 1")
	assert.Contains(t, metrics, `route="/api/v1/auth/signin"`)
	assert.True(t, strings.Contains(metrics, `tenant="enterprise"`))
}

func TestNewApp_BadTenantsFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.Tenants.File = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newApp(context.Background(), cfg)
	assert.Error(t, err)
}
