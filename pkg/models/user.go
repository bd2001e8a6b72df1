package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// User is the identity exposed by the authentication collaborator.
type User struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// AuthState is one snapshot of the authentication stream.
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	IsLoading       bool  `json:"isLoading"`
}

// Initials returns two upper-case letters for avatars: the first letters of
// the first two words of the name, else the first two characters of the name
// (or email). A nil user yields "U".
func (u *User) Initials() string {
	if u == nil {
		return "U"
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		a, _ := utf8.DecodeRuneInString(parts[0])
		b, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{a, b}))
	}
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	if len(runes) == 0 {
		return "U"
	}
	return strings.ToUpper(string(runes))
}

// RoleLabel returns the first role capitalised, or "User".
func (u *User) RoleLabel() string {
	if u == nil || len(u.Roles) == 0 || u.Roles[0] == "" {
		return "User"
	}
	r := []rune(u.Roles[0])
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

func (u *User) HasAllRoles(roles ...string) bool {
	for _, r := range roles {
		if !u.HasRole(r) {
			return false
		}
	}
	return true
}
