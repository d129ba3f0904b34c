package models

import "github.com/uptrace/bun"

// Match represents a single fixture within a competition/season.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	MatchID       int64  `bun:"match_id,pk" json:"matchID"`
	CompetitionID int    `bun:"competition_id,notnull" json:"competitionID"`
	SeasonID      int    `bun:"season_id,notnull" json:"seasonID"`
	MatchDate     string `bun:"match_date,notnull,type:date" json:"matchDate"`
	HomeTeam      string `bun:"home_team,notnull" json:"homeTeam"`
	AwayTeam      string `bun:"away_team,notnull" json:"awayTeam"`
}
