package auth

import "github.com/kiranshivaraju/tenantportal/pkg/models"

// Decision is the outcome of a route guard.
type Decision int

const (
	Allow Decision = iota
	// SignInRequired means the caller is not authenticated.
	SignInRequired
	// Unauthorized means the caller lacks a required role.
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case SignInRequired:
		return "signin_required"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Rule guards a route. Roles must all be held; AnyRole needs one match.
// Empty lists impose no constraint.
type Rule struct {
	Roles   []string
	AnyRole []string
}

// Check evaluates the rule against an authentication snapshot.
func (r Rule) Check(s models.AuthState) Decision {
	if !RequireAuthenticated(s) {
		return SignInRequired
	}
	if len(r.Roles) > 0 && !s.User.HasAllRoles(r.Roles...) {
		return Unauthorized
	}
	if len(r.AnyRole) > 0 && !s.User.HasAnyRole(r.AnyRole...) {
		return Unauthorized
	}
	return Allow
}

func RequireAuthenticated(s models.AuthState) bool {
	return s.IsAuthenticated && s.User != nil
}

// RequireRoles reports whether the user is authenticated and holds every role.
func RequireRoles(s models.AuthState, roles ...string) bool {
	return Rule{Roles: roles}.Check(s) == Allow
}

// RequireAnyRole reports whether the user is authenticated and holds at
// least one of roles.
func RequireAnyRole(s models.AuthState, roles ...string) bool {
	return Rule{AnyRole: roles}.Check(s) == Allow
}
