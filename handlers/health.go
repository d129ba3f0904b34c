package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root returns a liveness message.
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Football analytics API is live!"})
}

// Health reports process health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// DBCheck probes the database connection with a trivial query.
func (h *Handler) DBCheck(c echo.Context) error {
	var one int
	if err := h.db.NewSelect().ColumnExpr("1").Scan(c.Request().Context(), &one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"dbStatus": "error",
			"detail":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"dbStatus": "connected"})
}
