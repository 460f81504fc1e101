package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goodsru/user-panel/internal/core/ports"
)

// AuditHandler serves the admin-only audit trail view.
type AuditHandler struct {
	audits ports.AuditService
}

func NewAuditHandler(audits ports.AuditService) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// Trail handles GET /audit. An optional limit query parameter caps the
// number of rows.
func (h *AuditHandler) Trail(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.audits.Recent(c.Request().Context(), limit)
	if err != nil {
		return fmt.Errorf("audit trail: %w", err)
	}
	return c.Render(http.StatusOK, "audit", newViewData(c, records))
}
