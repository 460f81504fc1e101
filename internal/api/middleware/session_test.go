package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/core/domain"
)

type stubSessionManager struct {
	identities map[string]domain.Identity
}

func (m *stubSessionManager) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (m *stubSessionManager) Resolve(_ context.Context, token string) domain.Identity {
	if ident, ok := m.identities[token]; ok {
		return ident
	}
	return domain.Anonymous()
}

func (m *stubSessionManager) Logout(context.Context, string) error { return nil }

func (m *stubSessionManager) TTL() time.Duration { return time.Hour }

func TestSession_CookieResolvesIdentity(t *testing.T) {
	user := &domain.User{ID: 7, Username: "alice@goods.ru", Role: domain.RoleAdmin}
	sessions := &stubSessionManager{identities: map[string]domain.Identity{
		"tok-alice": domain.Authenticated(user),
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-alice"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Identity
	handler := Session(sessions)(func(c echo.Context) error {
		got = IdentityFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAuthenticated() || got.User().ID != 7 {
		t.Fatalf("expected alice's identity, got %+v", got.User())
	}
}

func TestSession_MissingCookieIsAnonymous(t *testing.T) {
	sessions := &stubSessionManager{identities: map[string]domain.Identity{}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Identity
	handler := Session(sessions)(func(c echo.Context) error {
		got = IdentityFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAuthenticated() {
		t.Fatalf("missing cookie must yield Anonymous")
	}
}

func TestIdentityFrom_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if IdentityFrom(c).IsAuthenticated() {
		t.Fatalf("missing middleware must yield Anonymous")
	}
}
