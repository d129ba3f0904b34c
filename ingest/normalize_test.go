package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompetitions(t *testing.T) {
	data := []byte(`[
		{"competition_id": 11, "season_id": 1, "country_name": "Spain",
		 "competition_name": "La Liga", "season_name": "2017/2018"},
		{"competition_id": 37, "season_id": 4, "country_name": "England",
		 "competition_name": "FA Women's Super League"}
	]`)

	rows, skipped, err := NormalizeCompetitions(data)
	require.NoError(t, err)

	// The second record lacks season_name and is skipped, not fatal.
	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, 11, rows[0].CompetitionID)
	assert.Equal(t, 1, rows[0].SeasonID)
	assert.Equal(t, "Spain", rows[0].CountryName)
	assert.Equal(t, "La Liga", rows[0].CompetitionName)
	assert.Equal(t, "2017/2018", rows[0].SeasonName)
}

func TestNormalizeCompetitionsMalformed(t *testing.T) {
	_, _, err := NormalizeCompetitions([]byte(`{"not": "a list"}`))
	assert.Error(t, err)
}

func TestNormalizeMatches(t *testing.T) {
	data := []byte(`[
		{"match_id": 7478, "match_date": "2018-05-09",
		 "home_team": {"home_team_name": "Barcelona"},
		 "away_team": {"away_team_name": "Villarreal"}},
		{"match_id": 7479, "match_date": "2018-05-12",
		 "away_team": {"away_team_name": "Real Madrid"}}
	]`)

	rows, skipped, err := NormalizeMatches(data, 11, 1)
	require.NoError(t, err)

	// Missing nested home_team object is a per-record failure only.
	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7478), rows[0].MatchID)
	assert.Equal(t, 11, rows[0].CompetitionID)
	assert.Equal(t, 1, rows[0].SeasonID)
	assert.Equal(t, "Barcelona", rows[0].HomeTeam)
	assert.Equal(t, "Villarreal", rows[0].AwayTeam)
}

func TestNormalizeLineups(t *testing.T) {
	data := []byte(`[
		{"team_name": "Barcelona", "lineup": [
			{"player_name": "Lionel Messi"},
			{"jersey_number": 5},
			{"player_name": "Sergio Busquets"}
		]},
		{"lineup": [{"player_name": "Ghost Player"}]}
	]`)

	rows, skipped, err := NormalizeLineups(data, 7478)
	require.NoError(t, err)

	// One player without a name and one nameless team are skipped individually.
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(7478), rows[0].MatchID)
	assert.Equal(t, "Barcelona", rows[0].TeamName)
	assert.Equal(t, "Lionel Messi", rows[0].PlayerName)
	assert.Equal(t, "Sergio Busquets", rows[1].PlayerName)
}

func TestNormalizeEvents(t *testing.T) {
	data := []byte(`[
		{"index": 3, "timestamp": "00:01:15.200", "type": {"name": "Pass"}}
	]`)

	rows, err := NormalizeEvents(data, 7478)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(7478), rows[0].MatchID)
	require.NotNil(t, rows[0].Index)
	assert.Equal(t, 3, *rows[0].Index)
	require.NotNil(t, rows[0].Timestamp)
	assert.Equal(t, "00:01:15.200", *rows[0].Timestamp)
	require.NotNil(t, rows[0].Type)
	assert.Equal(t, "Pass", *rows[0].Type)
}

func TestNormalizeEventsNullSafety(t *testing.T) {
	rows, err := NormalizeEvents([]byte(`[{"index": 1}]`), 7478)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Missing type and timestamp become NULLs, never an error.
	require.NotNil(t, rows[0].Index)
	assert.Equal(t, 1, *rows[0].Index)
	assert.Nil(t, rows[0].Timestamp)
	assert.Nil(t, rows[0].Type)
}

func TestNormalizeEventsPreservesOrder(t *testing.T) {
	// Index gap at 3-4: the sequence must come through exactly as fetched,
	// no reordering or gap-filling.
	data := []byte(`[
		{"index": 0}, {"index": 1}, {"index": 2}, {"index": 5}, {"index": 6}
	]`)

	rows, err := NormalizeEvents(data, 7478)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	got := make([]int, len(rows))
	for i, r := range rows {
		require.NotNil(t, r.Index)
		got[i] = *r.Index
	}
	assert.Equal(t, []int{0, 1, 2, 5, 6}, got)
}
