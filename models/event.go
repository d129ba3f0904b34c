package models

import "github.com/uptrace/bun"

// Event is one in-match event from a StatsBomb event stream.
// Index orders events within a match; Timestamp is match-clock time
// (HH:MM:SS.mmm, resets per period), not wall-clock time.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID        int     `bun:"id,pk,autoincrement" json:"id"`
	MatchID   int64   `bun:"match_id,notnull" json:"matchID"`
	Index     *int    `bun:"index" json:"index,omitempty"`
	Timestamp *string `bun:"timestamp" json:"timestamp,omitempty"`
	Type      *string `bun:"type" json:"type,omitempty"`
}
