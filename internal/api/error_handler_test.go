package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimw "github.com/goodsru/user-panel/internal/api/middleware"
	"github.com/goodsru/user-panel/internal/core/domain"
)

type fixedSessions struct {
	identities map[string]domain.Identity
}

func (s *fixedSessions) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s *fixedSessions) Resolve(_ context.Context, token string) domain.Identity {
	if ident, ok := s.identities[token]; ok {
		return ident
	}
	return domain.Anonymous()
}

func (s *fixedSessions) Logout(context.Context, string) error { return nil }

func (s *fixedSessions) TTL() time.Duration { return time.Hour }

type nameRenderer struct{}

func (nameRenderer) Render(w io.Writer, name string, _ any, _ echo.Context) error {
	_, err := io.WriteString(w, "view:"+name)
	return err
}

// newErrorTestServer wires a minimal echo with the real error handler, the
// session middleware and the admin-gated route shape used by the panel.
func newErrorTestServer(sessions *fixedSessions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = nameRenderer{}
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.Use(apimw.Session(sessions))

	admin := apimw.RequireRoles(domain.RoleAdmin)
	e.GET("/users/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return domain.ErrUserNotFound
		}
		return c.String(http.StatusOK, "secret profile data")
	}, admin)
	return e
}

func serve(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandler_UnknownRouteRedirects(t *testing.T) {
	e := newErrorTestServer(&fixedSessions{})

	rec := serve(e, "/no/such/page")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/not_found" {
		t.Fatalf("expected redirect to /not_found, got %q", loc)
	}
}

func TestErrorHandler_ForbiddenRendersWithoutData(t *testing.T) {
	employee := &domain.User{ID: 2, Username: "emp@goods.ru", Role: domain.RoleEmployee}
	sessions := &fixedSessions{identities: map[string]domain.Identity{
		"tok-emp": domain.Authenticated(employee),
	}}
	e := newErrorTestServer(sessions)

	rec := serve(e, "/users/1", &http.Cookie{Name: apimw.CookieName, Value: "tok-emp"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "view:403") {
		t.Fatalf("expected the forbidden view, got %q", body)
	}
	if strings.Contains(body, "secret profile data") {
		t.Fatalf("handler output must not leak into a forbidden response")
	}
}

func TestErrorHandler_AnonymousSentToLogin(t *testing.T) {
	e := newErrorTestServer(&fixedSessions{})

	rec := serve(e, "/users/1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Fatalf("expected redirect to /auth/login, got %q", loc)
	}
}

func TestErrorHandler_MissingUserRedirects(t *testing.T) {
	admin := &domain.User{ID: 1, Username: "admin@goods.ru", Role: domain.RoleAdmin}
	sessions := &fixedSessions{identities: map[string]domain.Identity{
		"tok-admin": domain.Authenticated(admin),
	}}
	e := newErrorTestServer(sessions)

	rec := serve(e, "/users/404", &http.Cookie{Name: apimw.CookieName, Value: "tok-admin"})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/not_found" {
		t.Fatalf("expected redirect to /not_found, got %q", loc)
	}
}

func TestErrorHandler_AdminReachesHandler(t *testing.T) {
	admin := &domain.User{ID: 1, Username: "admin@goods.ru", Role: domain.RoleAdmin}
	sessions := &fixedSessions{identities: map[string]domain.Identity{
		"tok-admin": domain.Authenticated(admin),
	}}
	e := newErrorTestServer(sessions)

	rec := serve(e, "/users/1", &http.Cookie{Name: apimw.CookieName, Value: "tok-admin"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
