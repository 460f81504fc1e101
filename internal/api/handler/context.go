package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/api/middleware"
	"github.com/goodsru/user-panel/internal/core/domain"
)

// viewData is the envelope every template receives: the request identity,
// a pending flash message, and the page payload.
type viewData struct {
	Authenticated bool
	Identity      *domain.User
	Flash         string
	Data          any
}

func newViewData(c echo.Context, data any) viewData {
	ident := middleware.IdentityFrom(c)
	return viewData{
		Authenticated: ident.IsAuthenticated(),
		Identity:      ident.User(),
		Flash:         takeFlash(c),
		Data:          data,
	}
}

// actorName returns the username behind the request for audit purposes,
// or "anonymous" when unauthenticated.
func actorName(c echo.Context) string {
	if u := middleware.IdentityFrom(c).User(); u != nil {
		return u.Username
	}
	return "anonymous"
}
