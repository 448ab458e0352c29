package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy/internal/domain"
)

func TestStartLoadClear(t *testing.T) {
	m := NewManager(time.Hour, false)

	w := httptest.NewRecorder()
	s := m.Start(w, "tok-1", domain.RoleCustomer)
	assert.True(t, s.IsCustomer())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	loaded := m.Load(r)
	assert.Equal(t, &Session{Token: "tok-1", Role: domain.RoleCustomer}, loaded)

	w = httptest.NewRecorder()
	m.Clear(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	}
}

func TestLoad_Rejects(t *testing.T) {
	m := NewManager(time.Hour, false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, m.Load(r).Authenticated())

	r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok"})
	assert.False(t, m.Load(r).Authenticated(), "token without role")

	r.AddCookie(&http.Cookie{Name: RoleCookie, Value: "janitor"})
	assert.False(t, m.Load(r).Authenticated(), "unknown role")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok"})
	r.AddCookie(&http.Cookie{Name: RoleCookie, Value: "admin"})
	assert.True(t, m.Load(r).IsAdmin())
}

func TestLandingPath(t *testing.T) {
	for raw, want := range map[string]string{
		"ADMIN":    "/admin/home",
		"CUSTOMER": "/user/home",
		"customer": "/user/home",
		"Customer": "/user/home",
	} {
		role, ok := domain.ParseRole(raw)
		require.True(t, ok)
		assert.Equal(t, want, LandingPath(role), raw)
	}
	assert.Equal(t, "/login", LandingPath(""))
}

func TestContext(t *testing.T) {
	assert.False(t, FromContext(context.Background()).Authenticated())
	s := &Session{Token: "x", Role: domain.RoleAdmin}
	assert.Same(t, s, FromContext(NewContext(context.Background(), s)))
}
