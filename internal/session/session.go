// Package session holds who is signed in to the console. The bearer token is
// kept under a fixed cookie so it survives reloads; Load reads it back on
// every request and Clear removes it on logout.
package session

import (
	"context"
	"net/http"
	"time"

	"pharmacy/internal/domain"
)

const (
	TokenCookie = "token"
	RoleCookie  = "role"
)

type Session struct {
	Token string
	Role  domain.Role
}

func (s *Session) Authenticated() bool { return s != nil && s.Token != "" }

func (s *Session) IsAdmin() bool    { return s.Authenticated() && s.Role == domain.RoleAdmin }
func (s *Session) IsCustomer() bool { return s.Authenticated() && s.Role == domain.RoleCustomer }

// LandingPath is where a freshly signed-in role starts.
func LandingPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin/home"
	case domain.RoleCustomer:
		return "/user/home"
	default:
		return "/login"
	}
}

type Manager struct {
	ttl    time.Duration
	secure bool
}

func NewManager(ttl time.Duration, secure bool) *Manager {
	return &Manager{ttl: ttl, secure: secure}
}

// Secure reports whether cookies are marked Secure.
func (m *Manager) Secure() bool { return m.secure }

// Load reads the stored session. A missing token or an unknown role yields
// an unauthenticated session.
func (m *Manager) Load(r *http.Request) *Session {
	tc, err := r.Cookie(TokenCookie)
	if err != nil || tc.Value == "" {
		return &Session{}
	}
	rc, err := r.Cookie(RoleCookie)
	if err != nil {
		return &Session{}
	}
	role, ok := domain.ParseRole(rc.Value)
	if !ok {
		return &Session{}
	}
	return &Session{Token: tc.Value, Role: role}
}

// Start stores token and role and returns the new session.
func (m *Manager) Start(w http.ResponseWriter, token string, role domain.Role) *Session {
	m.set(w, TokenCookie, token, int(m.ttl.Seconds()))
	m.set(w, RoleCookie, string(role), int(m.ttl.Seconds()))
	return &Session{Token: token, Role: role}
}

// Clear removes the stored session.
func (m *Manager) Clear(w http.ResponseWriter) {
	m.set(w, TokenCookie, "", -1)
	m.set(w, RoleCookie, "", -1)
}

func (m *Manager) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext never returns nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
