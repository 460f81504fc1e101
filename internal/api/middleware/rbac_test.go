package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/core/domain"
)

func newRBACContext(t *testing.T, ident domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(identityKey, ident)
	return c, rec
}

func TestRequireRoles_EmptySetIsPublic(t *testing.T) {
	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	c, _ := newRBACContext(t, domain.Anonymous())
	if err := RequireRoles()(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("handler must run when no roles are required")
	}
}

func TestRequireRoles_AnonymousRedirectsToLogin(t *testing.T) {
	next := func(c echo.Context) error {
		t.Fatalf("handler must not run for anonymous requests")
		return nil
	}

	c, rec := newRBACContext(t, domain.Anonymous())
	if err := RequireRoles(domain.RoleAdmin)(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %q", loc)
	}
}

func TestRequireRoles_WrongRoleForbidden(t *testing.T) {
	next := func(c echo.Context) error {
		t.Fatalf("handler must not run for disallowed roles")
		return nil
	}

	ident := domain.Authenticated(&domain.User{ID: 1, Username: "emp@goods.ru", Role: domain.RoleEmployee})
	c, _ := newRBACContext(t, ident)
	err := RequireRoles(domain.RoleAdmin, domain.RoleMerchantManager)(next)(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRoles_AllowedRolePasses(t *testing.T) {
	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	ident := domain.Authenticated(&domain.User{ID: 1, Username: "mgr@goods.ru", Role: domain.RoleMerchantManager})
	c, _ := newRBACContext(t, ident)
	if err := RequireRoles(domain.RoleAdmin, domain.RoleMerchantManager)(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("handler must run for an allowed role")
	}
}
