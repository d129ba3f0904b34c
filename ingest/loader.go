package ingest

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/padraicbc/footystats/db"
	"github.com/padraicbc/footystats/models"
)

// Loader writes normalized rows to the relational store. Each insert takes a
// whole batch (one resource's rows) in a single multi-row statement and must
// tolerate natural-key conflicts by keeping the existing row.
type Loader interface {
	EnsureSchema(ctx context.Context) error
	InsertCompetitions(ctx context.Context, rows []models.Competition) (int, error)
	InsertMatches(ctx context.Context, rows []models.Match) (int, error)
	InsertLineups(ctx context.Context, rows []models.Lineup) (int, error)
	InsertEvents(ctx context.Context, rows []models.Event) (int, error)
}

// BunLoader is the PostgreSQL Loader over a shared bun connection pool.
type BunLoader struct {
	db *bun.DB
}

// NewLoader wraps an open bun.DB.
func NewLoader(bdb *bun.DB) *BunLoader {
	return &BunLoader{db: bdb}
}

// EnsureSchema creates missing tables and natural-key constraints. Idempotent.
func (l *BunLoader) EnsureSchema(ctx context.Context) error {
	return db.CreateTables(ctx, l.db)
}

func (l *BunLoader) InsertCompetitions(ctx context.Context, rows []models.Competition) (int, error) {
	return bulkInsert(ctx, l.db, rows)
}

func (l *BunLoader) InsertMatches(ctx context.Context, rows []models.Match) (int, error) {
	return bulkInsert(ctx, l.db, rows)
}

func (l *BunLoader) InsertLineups(ctx context.Context, rows []models.Lineup) (int, error) {
	return bulkInsert(ctx, l.db, rows)
}

func (l *BunLoader) InsertEvents(ctx context.Context, rows []models.Event) (int, error) {
	return bulkInsert(ctx, l.db, rows)
}

// bulkInsert writes a batch in one statement, skipping rows whose natural key
// already exists so re-runs are no-ops. VALUES order follows slice order, so
// event streams keep their fetched sequence. Returns rows actually inserted.
func bulkInsert[T any](ctx context.Context, bdb *bun.DB, rows []T) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res, err := bdb.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
