package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/api/metrics"
	"github.com/goodsru/user-panel/internal/core/domain"
)

// RequireRoles enforces role-based access control over the closed role set.
// With no roles the route is public. Anonymous requests are sent to the
// login page; authenticated requests outside the set get the forbidden view
// and the underlying operation is never attempted.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowedRoles) == 0 {
				return next(c)
			}

			ident := IdentityFrom(c)
			if !ident.IsAuthenticated() {
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}
			if !ident.HasRole(allowedRoles...) {
				metrics.AuthzDeniedTotal.WithLabelValues(c.Path()).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
