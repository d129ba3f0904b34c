package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/footystats/models"
)

// Matches returns matches, optionally filtered by competition and season.
func (h *Handler) Matches(c echo.Context) error {
	var matches []models.Match
	q := h.db.NewSelect().
		Model(&matches).
		OrderExpr("m.match_date ASC, m.match_id ASC")

	if compID := c.QueryParam("competitionID"); compID != "" {
		q = q.Where("m.competition_id = ?", compID)
	}
	if seasonID := c.QueryParam("seasonID"); seasonID != "" {
		q = q.Where("m.season_id = ?", seasonID)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, matches)
}

// MatchLineups returns both teams' lineups for one match.
func (h *Handler) MatchLineups(c echo.Context) error {
	matchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer match id")
	}

	var lineups []models.Lineup
	err = h.db.NewSelect().
		Model(&lineups).
		Where("l.match_id = ?", matchID).
		OrderExpr("l.team_name ASC, l.player_name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, lineups)
}

// MatchEvents returns one match's event stream ordered by index. Gaps in the
// index sequence are preserved as stored.
func (h *Handler) MatchEvents(c echo.Context) error {
	matchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer match id")
	}

	var events []models.Event
	err = h.db.NewSelect().
		Model(&events).
		Where("e.match_id = ?", matchID).
		OrderExpr(`e."index" ASC NULLS LAST`).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, events)
}
