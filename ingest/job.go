// Package ingest loads the open-data competition, match, lineup and event
// documents from the object store into PostgreSQL. Jobs run to completion:
// individual resource failures are logged, recorded in the report and never
// abort the rest of the job.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/padraicbc/footystats/store"
)

// Fetcher reads one JSON document by key from the object store.
// Implementations must be safe for concurrent use and return
// store.ErrNotFound for missing keys.
type Fetcher interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Runner executes ingestion jobs against a Fetcher and a Loader.
type Runner struct {
	fetch   Fetcher
	loader  Loader
	log     *zap.Logger
	workers int
}

// NewRunner builds a Runner. workers bounds the events job's pool width.
func NewRunner(fetch Fetcher, loader Loader, log *zap.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{fetch: fetch, loader: loader, log: log, workers: workers}
}

// Run ensures the schema exists, then executes the named job to completion.
// The returned Report holds one entry per attempted resource.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	if err := r.loader.EnsureSchema(ctx); err != nil {
		return nil, errors.Wrap(err, "ensuring schema")
	}

	switch job {
	case JobCompetitions:
		return r.runCompetitions(ctx)
	case JobMatches:
		return r.runMatches(ctx)
	case JobLineups:
		return r.runLineups(ctx)
	case JobEvents:
		return r.runEvents(ctx)
	}
	return nil, fmt.Errorf("unknown job type %q", job)
}

// runCompetitions is a single fetch and a single batch write. The manifest
// is the only resource, so any failure here is fatal for the job.
func (r *Runner) runCompetitions(ctx context.Context) (*Report, error) {
	report := &Report{Job: JobCompetitions}

	data, err := r.fetch.Get(ctx, manifestKey)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching manifest %s", manifestKey)
	}
	rows, skipped, err := NormalizeCompetitions(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", manifestKey)
	}
	if skipped > 0 {
		r.log.Warn("competition records missing required fields", zap.Int("skipped", skipped))
	}

	n, err := r.loader.InsertCompetitions(ctx, rows)
	if err != nil {
		return nil, errors.Wrap(err, "writing competitions")
	}
	report.success(manifestKey, n)
	r.log.Info("competitions loaded", zap.Int("rows", n))
	return report, nil
}

// runMatches walks the resolved seasons sequentially, one fetch + normalize +
// batch write per competition/season pair, continuing past per-pair failures.
func (r *Runner) runMatches(ctx context.Context) (*Report, error) {
	report := &Report{Job: JobMatches}

	seasons, err := r.resolveSeasons(ctx)
	if err != nil {
		return nil, err
	}

	for _, season := range seasons {
		key := matchesKey(season)
		data, err := r.fetch.Get(ctx, key)
		if err != nil {
			r.log.Warn("match list not loaded", zap.String("key", key), zap.Error(err))
			report.add(resourceFailure(key, err))
			continue
		}

		rows, skipped, err := NormalizeMatches(data, season.CompetitionID, season.SeasonID)
		if err != nil {
			r.log.Warn("match list malformed", zap.String("key", key), zap.Error(err))
			report.failed(key, err)
			continue
		}
		if skipped > 0 {
			r.log.Debug("match records missing required fields",
				zap.String("key", key), zap.Int("skipped", skipped))
		}

		n, err := r.loader.InsertMatches(ctx, rows)
		if err != nil {
			r.log.Warn("match write failed", zap.String("key", key), zap.Error(err))
			report.failed(key, err)
			continue
		}
		report.success(key, n)
	}

	r.log.Info("matches job complete", zap.String("summary", report.Summary()))
	return report, nil
}

// runLineups resolves each season's match list, then loads lineups match by
// match, reporting running percent-complete within each season's scope.
func (r *Runner) runLineups(ctx context.Context) (*Report, error) {
	report := &Report{Job: JobLineups}

	seasons, err := r.resolveSeasons(ctx)
	if err != nil {
		return nil, err
	}

	for _, season := range seasons {
		refs := r.seasonMatches(ctx, season, report)
		for i, ref := range refs {
			res := r.ingestMatchLineups(ctx, ref)
			report.add(res)
			if res.Status != StatusSuccess {
				r.log.Warn("match lineups not loaded",
					zap.Int64("match_id", ref.MatchID), zap.String("reason", res.Reason))
				continue
			}
			r.log.Info("lineups progress",
				zap.Int("competition_id", season.CompetitionID),
				zap.Int("season_id", season.SeasonID),
				zap.Int("percent", (i+1)*100/len(refs)))
		}
	}

	r.log.Info("lineups job complete", zap.String("summary", report.Summary()))
	return report, nil
}

// runEvents resolves the full cross-competition match list up front, then
// fans the matches out over a fixed-width worker pool. Workers report each
// match's outcome over a channel to a single collector goroutine which owns
// the progress count, so there is no shared mutable state to lock.
func (r *Runner) runEvents(ctx context.Context) (*Report, error) {
	report := &Report{Job: JobEvents}

	seasons, err := r.resolveSeasons(ctx)
	if err != nil {
		return nil, err
	}
	matches := r.resolveMatches(ctx, seasons, report)
	total := len(matches)
	r.log.Info("events resolution complete",
		zap.Int("matches", total), zap.Int("workers", r.workers))

	refs := make(chan MatchRef)
	results := make(chan ResourceResult)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range refs {
				results <- r.ingestMatchEvents(ctx, ref)
			}
		}()
	}

	go func() {
		for _, m := range matches {
			refs <- m
		}
		close(refs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	done := 0
	for res := range results {
		report.add(res)
		if res.Status != StatusSuccess {
			r.log.Warn("match events not loaded",
				zap.String("key", res.Key), zap.String("reason", res.Reason))
			continue
		}
		done++
		r.log.Info("events progress",
			zap.Int("done", done), zap.Int("total", total),
			zap.Int("percent", done*100/total))
	}

	r.log.Info("events job complete", zap.String("summary", report.Summary()))
	return report, nil
}

// ingestMatchLineups loads one match's lineup resource end to end.
func (r *Runner) ingestMatchLineups(ctx context.Context, ref MatchRef) ResourceResult {
	key := lineupsKey(ref.MatchID)
	data, err := r.fetch.Get(ctx, key)
	if err != nil {
		return resourceFailure(key, err)
	}

	rows, skipped, err := NormalizeLineups(data, ref.MatchID)
	if err != nil {
		return ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()}
	}
	if skipped > 0 {
		r.log.Debug("lineup entries missing names",
			zap.Int64("match_id", ref.MatchID), zap.Int("skipped", skipped))
	}

	n, err := r.loader.InsertLineups(ctx, rows)
	if err != nil {
		return ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()}
	}
	return ResourceResult{Key: key, Status: StatusSuccess, Rows: n}
}

// ingestMatchEvents loads one match's event stream end to end. Safe to call
// from multiple workers: it shares only the Fetcher and the Loader's pool.
func (r *Runner) ingestMatchEvents(ctx context.Context, ref MatchRef) ResourceResult {
	key := eventsKey(ref.MatchID)
	data, err := r.fetch.Get(ctx, key)
	if err != nil {
		return resourceFailure(key, err)
	}

	rows, err := NormalizeEvents(data, ref.MatchID)
	if err != nil {
		return ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()}
	}

	n, err := r.loader.InsertEvents(ctx, rows)
	if err != nil {
		return ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()}
	}
	return ResourceResult{Key: key, Status: StatusSuccess, Rows: n}
}

// resourceFailure classifies a fetch error: an expected miss is skipped,
// anything else is failed and a candidate for caller-driven retry.
func resourceFailure(key string, err error) ResourceResult {
	if errors.Is(err, store.ErrNotFound) {
		return ResourceResult{Key: key, Status: StatusSkipped, Reason: err.Error()}
	}
	return ResourceResult{Key: key, Status: StatusFailed, Reason: err.Error()}
}
