package middleware

import (
	"context"
	"net/http"

	"github.com/kiranshivaraju/tenantportal/internal/auth"
	"github.com/kiranshivaraju/tenantportal/internal/portal"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	claimsKey  contextKey = "claims"
)

func SetSession(ctx context.Context, s *portal.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(r *http.Request) (*portal.Session, bool) {
	s, ok := r.Context().Value(sessionKey).(*portal.Session)
	return s, ok && s != nil
}

func SetClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(r *http.Request) (*auth.Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*auth.Claims)
	return c, ok && c != nil
}
