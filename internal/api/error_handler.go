package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/goodsru/user-panel/internal/api/middleware"
	"github.com/goodsru/user-panel/internal/core/domain"
)

// errorResponse is the JSON envelope for the few non-HTML failure paths
// (probes, logout without a session).
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unknown routes and missing records to the 404 page.
//   - Renders the forbidden view on authorization failures without leaking data.
//   - Logs unexpected errors internally and answers with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Echo's own errors: router 404s redirect to the 404 page; the
		// rest (401 from logout, bind failures) keep their status.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusNotFound {
				_ = c.Redirect(http.StatusSeeOther, "/not_found")
				return
			}
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		switch {
		case errors.Is(err, domain.ErrForbidden):
			if renderErr := c.Render(http.StatusForbidden, "403", forbiddenData(c)); renderErr != nil {
				_ = c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
			}
			return
		case errors.Is(err, domain.ErrUserNotFound):
			_ = c.Redirect(http.StatusSeeOther, "/not_found")
			return
		}

		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func forbiddenData(c echo.Context) map[string]any {
	ident := middleware.IdentityFrom(c)
	return map[string]any{
		"Authenticated": ident.IsAuthenticated(),
		"Identity":      ident.User(),
		"Flash":         "",
	}
}
