package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranshivaraju/tenantportal/internal/templates"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ─── local template commands ────────────────────────────────────────────────

func TestTemplateEncodeDecode(t *testing.T) {
	encoded, _, err := run(t, "<div>é</div>", "template", "encode")
	require.NoError(t, err)
	assert.Equal(t, "PGRpdj7DqTwvZGl2Pg==\n", encoded)

	decoded, _, err := run(t, encoded, "template", "decode")
	require.NoError(t, err)
	assert.Equal(t, "<div>é</div>", decoded)
}

func TestTemplateEncode_FromFile(t *testing.T) {
	path := writeFile(t, "dash.html", "<main></main>")

	out, _, err := run(t, "", "template", "encode", path)
	require.NoError(t, err)
	assert.Equal(t, templates.Encode("<main></main>")+"\n", out)
}

func TestTemplateDecode_Invalid(t *testing.T) {
	_, _, err := run(t, "%%%", "template", "decode")
	assert.Error(t, err)
}

func TestTemplateValidate(t *testing.T) {
	out, _, err := run(t, "<div><p>ok</p></div>", "template", "validate")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, errOut, err := run(t, "<div><p>ok</div>", "template", "validate")
	assert.EqualError(t, err, "template is invalid")
	assert.Contains(t, errOut, "Unbalanced HTML tags detected (2 opening, 1 closing)")
}

// ─── remote template commands ───────────────────────────────────────────────

func TestTemplatePush(t *testing.T) {
	var got templates.SaveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/templates", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]any{"data": models.TenantTemplate{
			TenantID: got.TenantID, TemplateType: got.TemplateType, Template: got.Template, Version: "v7",
		}})
	}))
	defer srv.Close()

	markup := writeFile(t, "dash.html", "<section>{{tenant.name}}</section>")
	styles := writeFile(t, "dash.css", ".x{color:red}")

	out, _, err := run(t, "", "--api-url", srv.URL+"/", "--token", "admin-token",
		"template", "push", "--tenant", "acme", "--styles", styles, "--version", "v7", markup)
	require.NoError(t, err)
	assert.Equal(t, "saved acme/dashboard version v7\n", out)

	assert.Equal(t, "acme", got.TenantID)
	assert.Equal(t, models.TemplateTypeDashboard, got.TemplateType)
	assert.Equal(t, ".x{color:red}", got.Styles)
	decoded, err := templates.Decode(got.Template)
	require.NoError(t, err)
	assert.Equal(t, "<section>{{tenant.name}}</section>", decoded)
}

func TestTemplatePush_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": map[string]any{
			"code":    "INVALID_TEMPLATE",
			"message": "Template failed validation",
			"details": templates.ValidationResult{Errors: []string{"Template is empty"}},
		}})
	}))
	defer srv.Close()

	markup := writeFile(t, "empty.html", " ")
	_, errOut, err := run(t, "", "--api-url", srv.URL, "template", "push", "--tenant", "acme", markup)

	assert.EqualError(t, err, "template rejected")
	assert.Contains(t, errOut, "Template is empty")
}

func TestTemplatePush_RequiresTenant(t *testing.T) {
	markup := writeFile(t, "dash.html", "<div></div>")
	_, _, err := run(t, "", "template", "push", markup)
	assert.EqualError(t, err, "--tenant is required")
}

func TestTemplatePull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/templates/tech-startup/dashboard" {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{"code": "NOT_FOUND"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": models.TenantTemplate{
			TenantID: "tech-startup", TemplateType: models.TemplateTypeDashboard, Template: templates.Encode("<nav></nav>"),
		}})
	}))
	defer srv.Close()

	out, _, err := run(t, "", "--api-url", srv.URL, "template", "pull", "--tenant", "tech-startup")
	require.NoError(t, err)
	assert.Equal(t, "<nav></nav>", out)

	out, _, err = run(t, "", "--api-url", srv.URL, "template", "pull", "--tenant", "tech-startup", "--raw")
	require.NoError(t, err)
	assert.Equal(t, templates.Encode("<nav></nav>")+"\n", out)

	_, _, err = run(t, "", "--api-url", srv.URL, "template", "pull", "--tenant", "acme")
	assert.EqualError(t, err, `no dashboard template for tenant "acme"`)
}

// ─── tenants ────────────────────────────────────────────────────────────────

func TestTenantsList(t *testing.T) {
	out, _, err := run(t, "", "tenants", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "Goldman Sachs")
	assert.Contains(t, out, "#6175be")
}

func TestTenantsTokens(t *testing.T) {
	out, _, err := run(t, "", "tenants", "tokens", "enterprise")
	require.NoError(t, err)
	assert.Contains(t, out, "--primary-main: #6175be;")

	_, _, err = run(t, "", "tenants", "tokens", "acme")
	assert.EqualError(t, err, `unknown tenant "acme"`)
}

// ─── signin ─────────────────────────────────────────────────────────────────

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["password"] != "password123" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{
				"code": "INVALID_CREDENTIALS", "message": "Invalid email or password",
			}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": "jwt-token"}})
	}))
	defer srv.Close()

	out, _, err := run(t, "", "--api-url", srv.URL, "signin", "--email", "admin@company.com", "--password", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token\n", out)

	_, _, err = run(t, "", "--api-url", srv.URL, "signin", "--email", "admin@company.com", "--password", "nope")
	assert.EqualError(t, err, "sign in failed: INVALID_CREDENTIALS: Invalid email or password")
}
