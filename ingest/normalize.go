package ingest

import (
	"encoding/json"

	"github.com/padraicbc/footystats/models"
)

// Wire types for the raw open-data documents. Pointer fields let us tell
// an absent key apart from a zero value.

type rawCompetition struct {
	CompetitionID   *int    `json:"competition_id"`
	SeasonID        *int    `json:"season_id"`
	CountryName     *string `json:"country_name"`
	CompetitionName *string `json:"competition_name"`
	SeasonName      *string `json:"season_name"`
}

type rawTeam struct {
	HomeTeamName *string `json:"home_team_name"`
	AwayTeamName *string `json:"away_team_name"`
}

type rawMatch struct {
	MatchID   *int64   `json:"match_id"`
	MatchDate *string  `json:"match_date"`
	HomeTeam  *rawTeam `json:"home_team"`
	AwayTeam  *rawTeam `json:"away_team"`
}

type rawPlayer struct {
	PlayerName *string `json:"player_name"`
}

type rawLineupTeam struct {
	TeamName *string     `json:"team_name"`
	Lineup   []rawPlayer `json:"lineup"`
}

type rawEventType struct {
	Name *string `json:"name"`
}

type rawEvent struct {
	Index     *int          `json:"index"`
	Timestamp *string       `json:"timestamp"`
	Type      *rawEventType `json:"type"`
}

// NormalizeCompetitions flattens the competitions manifest into table rows.
// Records missing any of the five required fields are skipped; the skip
// count is returned alongside the rows. Only malformed JSON is an error.
func NormalizeCompetitions(data []byte) ([]models.Competition, int, error) {
	var raw []rawCompetition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	rows := make([]models.Competition, 0, len(raw))
	skipped := 0
	for _, c := range raw {
		if c.CompetitionID == nil || c.SeasonID == nil || c.CountryName == nil ||
			c.CompetitionName == nil || c.SeasonName == nil {
			skipped++
			continue
		}
		rows = append(rows, models.Competition{
			CompetitionID:   *c.CompetitionID,
			SeasonID:        *c.SeasonID,
			CountryName:     *c.CountryName,
			CompetitionName: *c.CompetitionName,
			SeasonName:      *c.SeasonName,
		})
	}
	return rows, skipped, nil
}

// NormalizeMatches flattens one season's match list. The home/away team names
// live one level down in nested team objects; a record missing its id, date or
// either nested team is skipped rather than failing the season.
func NormalizeMatches(data []byte, competitionID, seasonID int) ([]models.Match, int, error) {
	var raw []rawMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	rows := make([]models.Match, 0, len(raw))
	skipped := 0
	for _, m := range raw {
		if m.MatchID == nil || m.MatchDate == nil ||
			m.HomeTeam == nil || m.HomeTeam.HomeTeamName == nil ||
			m.AwayTeam == nil || m.AwayTeam.AwayTeamName == nil {
			skipped++
			continue
		}
		rows = append(rows, models.Match{
			MatchID:       *m.MatchID,
			CompetitionID: competitionID,
			SeasonID:      seasonID,
			MatchDate:     *m.MatchDate,
			HomeTeam:      *m.HomeTeam.HomeTeamName,
			AwayTeam:      *m.AwayTeam.AwayTeamName,
		})
	}
	return rows, skipped, nil
}

// NormalizeLineups emits one row per player per team for a single match.
// A team or player missing its name field is skipped individually.
func NormalizeLineups(data []byte, matchID int64) ([]models.Lineup, int, error) {
	var raw []rawLineupTeam
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	var rows []models.Lineup
	skipped := 0
	for _, team := range raw {
		if team.TeamName == nil {
			skipped++
			continue
		}
		for _, p := range team.Lineup {
			if p.PlayerName == nil {
				skipped++
				continue
			}
			rows = append(rows, models.Lineup{
				MatchID:    matchID,
				TeamName:   *team.TeamName,
				PlayerName: *p.PlayerName,
			})
		}
	}
	return rows, skipped, nil
}

// NormalizeEvents flattens one match's event stream, preserving source order.
// Missing index, timestamp or type are kept as NULLs, never skipped – index
// only participates in deduplication at the storage layer.
func NormalizeEvents(data []byte, matchID int64) ([]models.Event, error) {
	var raw []rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	rows := make([]models.Event, 0, len(raw))
	for _, e := range raw {
		row := models.Event{
			MatchID:   matchID,
			Index:     e.Index,
			Timestamp: e.Timestamp,
		}
		if e.Type != nil {
			row.Type = e.Type.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}
