package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/footystats/models"
)

// Competitions returns every ingested competition/season pairing.
func (h *Handler) Competitions(c echo.Context) error {
	var comps []models.Competition
	err := h.db.NewSelect().
		Model(&comps).
		OrderExpr("cp.country_name ASC, cp.competition_name ASC, cp.season_name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comps)
}
