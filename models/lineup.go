package models

import "github.com/uptrace/bun"

// Lineup holds one player appearance in a match squad, one row per player per team.
type Lineup struct {
	bun.BaseModel `bun:"table:lineups,alias:l"`

	MatchID    int64  `bun:"match_id,notnull" json:"matchID"`
	TeamName   string `bun:"team_name,notnull" json:"teamName"`
	PlayerName string `bun:"player_name,notnull" json:"playerName"`
}
