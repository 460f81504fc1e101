package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static-ish panel pages.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home handles GET /.
func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", newViewData(c, nil))
}

// NotFound handles GET /not_found; unknown routes redirect here.
func (h *PageHandler) NotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "404", newViewData(c, nil))
}
