package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	mw "github.com/kiranshivaraju/tenantportal/internal/api/middleware"
	"github.com/kiranshivaraju/tenantportal/internal/api/response"
	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
	"github.com/kiranshivaraju/tenantportal/pkg/models"
)

// SessionManager creates and ends portal sessions.
type SessionManager interface {
	Create() *portal.Session
	Delete(id string)
}

// TokenIssuer signs access tokens for a session.
type TokenIssuer interface {
	Issue(user *models.User, sessionID, tenantID string) (string, time.Time, error)
}

// TokenResponse is returned whenever a token is (re)issued.
type TokenResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"tokenType"`
	ExpiresAt time.Time     `json:"expiresAt"`
	SessionID string        `json:"sessionId"`
	User      *models.User  `json:"user"`
	Tenant    TenantSummary `json:"tenant"`
}

// MeResponse describes the caller's session.
type MeResponse struct {
	SessionID string        `json:"sessionId"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *models.User  `json:"user"`
	Initials  string        `json:"initials"`
	RoleLabel string        `json:"roleLabel"`
	Tenant    TenantSummary `json:"tenant"`
}

// NewSignInHandler returns an http.HandlerFunc for POST /api/v1/auth/signin.
// The session's tenant comes from tenantId in the body, else from the Host
// header.
func NewSignInHandler(sessions SessionManager, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			TenantID string `json:"tenantId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
			return
		}

		s := sessions.Create()
		user, err := s.SignIn(r.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			sessions.Delete(s.ID())
			response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		if err != nil {
			sessions.Delete(s.ID())
			slog.Error("sign in failed", "email", req.Email, "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Sign in failed", nil)
			return
		}

		var cfg *models.TenantConfiguration
		if req.TenantID != "" {
			cfg = s.SwitchTenant(req.TenantID)
		} else {
			cfg = s.SwitchTenantFromHost(r.Host)
		}

		resp, err := issueToken(tokens, s, user, cfg)
		if err != nil {
			sessions.Delete(s.ID())
			slog.Error("issuing token failed", "session_id", s.ID(), "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Sign in failed", nil)
			return
		}

		slog.Info("signed in", "session_id", s.ID(), "email", user.Email, "tenant_id", cfg.TenantID)
		response.JSON(w, resp)
	}
}

// NewSignOutHandler returns an http.HandlerFunc for POST /api/v1/auth/signout.
// The session is closed; its token stops working immediately.
func NewSignOutHandler(sessions SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}
		s.SignOut()
		sessions.Delete(s.ID())

		slog.Info("signed out", "session_id", s.ID())
		response.JSON(w, map[string]bool{"signedOut": true})
	}
}

// NewMeHandler returns an http.HandlerFunc for GET /api/v1/me.
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}
		user := s.Auth().User
		response.JSON(w, MeResponse{
			SessionID: s.ID(),
			CreatedAt: s.CreatedAt(),
			User:      user,
			Initials:  user.Initials(),
			RoleLabel: user.RoleLabel(),
			Tenant:    summarize(s.Tenant()),
		})
	}
}

// NewSwitchTenantHandler returns an http.HandlerFunc for
// POST /api/v1/session/tenant. Unknown ids activate the default tenant;
// the response reports the fallback and carries a token for the new tenant.
func NewSwitchTenantHandler(tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := mw.GetSession(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing session", nil)
			return
		}

		var req struct {
			TenantID string `json:"tenantId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.TenantID == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "tenantId is required", nil)
			return
		}

		cfg := s.SwitchTenant(req.TenantID)
		resp, err := issueToken(tokens, s, s.Auth().User, cfg)
		if err != nil {
			slog.Error("issuing token failed", "session_id", s.ID(), "error", err)
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to switch tenant", nil)
			return
		}

		response.JSON(w, map[string]any{
			"requested": req.TenantID,
			"fallback":  cfg.TenantID != req.TenantID,
			"session":   resp,
		})
	}
}

func issueToken(tokens TokenIssuer, s *portal.Session, user *models.User, cfg *models.TenantConfiguration) (*TokenResponse, error) {
	token, expires, err := tokens.Issue(user, s.ID(), cfg.TenantID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expires,
		SessionID: s.ID(),
		User:      user,
		Tenant:    summarize(cfg),
	}, nil
}

func summarize(cfg *models.TenantConfiguration) TenantSummary {
	if cfg == nil {
		return TenantSummary{}
	}
	return TenantSummary{
		ID:              cfg.TenantID,
		Name:            cfg.Name,
		CustomTemplates: cfg.Customization.EnableCustomTemplates,
	}
}
