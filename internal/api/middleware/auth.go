package middleware

import (
	"net/http"
	"strings"

	"github.com/kiranshivaraju/tenantportal/internal/api/response"
	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
)

// TokenParser verifies access tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Sessions looks up live portal sessions by id.
type Sessions interface {
	Get(id string) (*portal.Session, bool)
}

// Auth provides authentication and role-checking middleware.
type Auth struct {
	tokens   TokenParser
	sessions Sessions
}

// NewAuth creates a new Auth middleware.
func NewAuth(tokens TokenParser, sessions Sessions) *Auth {
	return &Auth{tokens: tokens, sessions: sessions}
}

// Authenticate validates the Bearer token, resolves the session it was
// issued for, and sets the session and claims in the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearerToken(r)
		if raw == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		claims, err := a.tokens.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Invalid or expired token", nil)
			return
		}

		session, ok := a.sessions.Get(claims.SessionID())
		if !ok || session.Closed() || !auth.RequireAuthenticated(session.Auth()) {
			response.Error(w, http.StatusUnauthorized,
				"SESSION_EXPIRED", "Session expired or signed out", nil)
			return
		}

		ctx := SetSession(r.Context(), session)
		ctx = SetClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns middleware that checks whether the session user
// holds every role.
func (a *Auth) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return a.Require(auth.Rule{Roles: roles})
}

// Require returns middleware that enforces rule against the session's
// authentication state. It must run after Authenticate.
func (a *Auth) Require(rule auth.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized,
					"INVALID_TOKEN", "Authentication required", nil)
				return
			}

			switch rule.Check(session.Auth()) {
			case auth.Allow:
				next.ServeHTTP(w, r)
			case auth.SignInRequired:
				response.Error(w, http.StatusUnauthorized,
					"SESSION_EXPIRED", "Session expired or signed out", nil)
			default:
				response.Error(w, http.StatusForbidden,
					"FORBIDDEN", "Insufficient permissions", nil)
			}
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
