package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Job names one of the ingestion job types.
type Job string

const (
	JobCompetitions Job = "competitions"
	JobMatches      Job = "matches"
	JobLineups      Job = "lineups"
	JobEvents       Job = "events"
)

// ParseJob validates a job name before any I/O happens.
func ParseJob(s string) (Job, error) {
	switch Job(s) {
	case JobCompetitions, JobMatches, JobLineups, JobEvents:
		return Job(s), nil
	}
	return "", fmt.Errorf("unknown job type %q (want competitions, matches, lineups or events)", s)
}

// SeasonRef identifies one competition/season pairing from the manifest.
type SeasonRef struct {
	CompetitionID int
	SeasonID      int
}

// MatchRef locates one match's per-match resources (lineups, events).
type MatchRef struct {
	CompetitionID int
	SeasonID      int
	MatchID       int64
}

const manifestKey = "competitions.json"

func matchesKey(ref SeasonRef) string {
	return fmt.Sprintf("matches/%d/%d.json", ref.CompetitionID, ref.SeasonID)
}

func lineupsKey(matchID int64) string {
	return fmt.Sprintf("lineups/%d.json", matchID)
}

func eventsKey(matchID int64) string {
	return fmt.Sprintf("events/%d.json", matchID)
}

// resolveSeasons fetches the root manifest and derives the season list.
// The manifest is the one resource every job depends on, so failure here
// is fatal for the job.
func (r *Runner) resolveSeasons(ctx context.Context) ([]SeasonRef, error) {
	data, err := r.fetch.Get(ctx, manifestKey)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching manifest %s", manifestKey)
	}

	var raw []rawCompetition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", manifestKey)
	}

	refs := make([]SeasonRef, 0, len(raw))
	for _, c := range raw {
		if c.CompetitionID == nil || c.SeasonID == nil {
			continue
		}
		refs = append(refs, SeasonRef{CompetitionID: *c.CompetitionID, SeasonID: *c.SeasonID})
	}
	return refs, nil
}

// seasonMatches fetches one season's match-list resource and derives its
// match refs in source order. A missing or malformed list skips the season
// with a warning and a report entry; it never aborts resolution for the
// other seasons.
func (r *Runner) seasonMatches(ctx context.Context, season SeasonRef, report *Report) []MatchRef {
	key := matchesKey(season)
	data, err := r.fetch.Get(ctx, key)
	if err != nil {
		r.log.Warn("skipping season, match list unavailable",
			zap.String("key", key), zap.Error(err))
		report.skipped(key, err)
		return nil
	}

	var raw []rawMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.Warn("skipping season, match list malformed",
			zap.String("key", key), zap.Error(err))
		report.skipped(key, err)
		return nil
	}

	refs := make([]MatchRef, 0, len(raw))
	for _, m := range raw {
		if m.MatchID == nil {
			continue
		}
		refs = append(refs, MatchRef{
			CompetitionID: season.CompetitionID,
			SeasonID:      season.SeasonID,
			MatchID:       *m.MatchID,
		})
	}
	return refs
}

// resolveMatches expands seasons into the flat cross-competition match list,
// preserving manifest order and each season's source order.
func (r *Runner) resolveMatches(ctx context.Context, seasons []SeasonRef, report *Report) []MatchRef {
	var out []MatchRef
	for _, season := range seasons {
		out = append(out, r.seasonMatches(ctx, season, report)...)
	}
	return out
}
