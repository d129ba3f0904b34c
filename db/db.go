package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/footystats/config"
	"github.com/padraicbc/footystats/models"
)

// Setup opens a PostgreSQL connection using the provided config.
// maxConns bounds the pool; ingestion passes its worker-pool width so
// concurrent workers never queue on more connections than they can use.
func Setup(cfg *config.Config, maxConns int) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	if maxConns > 0 {
		sqldb.SetMaxOpenConns(maxConns)
		sqldb.SetMaxIdleConns(maxConns)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order and declares the
// natural keys the conflict-tolerant inserts rely on. Everything here is
// idempotent so re-runs are pure no-ops.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Competition)(nil),
		(*models.Match)(nil),
		(*models.Lineup)(nil),
		(*models.Event)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'competitions_no_dupes') THEN ALTER TABLE competitions ADD CONSTRAINT competitions_no_dupes UNIQUE (competition_id, season_id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'lineups_no_dupes') THEN ALTER TABLE lineups ADD CONSTRAINT lineups_no_dupes UNIQUE (match_id, team_name, player_name); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'events_no_dupes') THEN ALTER TABLE events ADD CONSTRAINT events_no_dupes UNIQUE (match_id, "index"); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
