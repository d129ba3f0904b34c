package models

import "github.com/uptrace/bun"

// Competition represents one competition/season pairing from the open-data manifest.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:cp"`

	CompetitionID   int    `bun:"competition_id,notnull" json:"competitionID"`
	SeasonID        int    `bun:"season_id,notnull" json:"seasonID"`
	CountryName     string `bun:"country_name,notnull" json:"countryName"`
	CompetitionName string `bun:"competition_name,notnull" json:"competitionName"`
	SeasonName      string `bun:"season_name,notnull" json:"seasonName"`
}
