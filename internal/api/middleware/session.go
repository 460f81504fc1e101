package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

// CookieName is the single cookie the panel trusts. Its value is a signed
// token wrapping the server-side session ID; no other client-supplied value
// carries identity.
const CookieName = "panel_session"

const identityKey = "identity"

// Session resolves the request identity from the session cookie and stores
// it in the echo context. The user record behind the session is re-read on
// every request, so role and status changes apply immediately.
func Session(sessions ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				token = cookie.Value
			}
			c.Set(identityKey, sessions.Resolve(c.Request().Context(), token))
			return next(c)
		}
	}
}

// IdentityFrom extracts the identity placed by the Session middleware.
// Absent middleware yields Anonymous.
func IdentityFrom(c echo.Context) domain.Identity {
	if ident, ok := c.Get(identityKey).(domain.Identity); ok {
		return ident
	}
	return domain.Anonymous()
}

// SessionToken returns the raw cookie token, if any.
func SessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
