// cmd/ingest/main.go
// Loads StatsBomb open-data resources from S3 into the local PostgreSQL database.
//
// Usage:
//
//	DATABASE_URL="postgres://..." \
//	S3_BUCKET_NAME="statsbomb-open-data" \
//	go run ./cmd/ingest -type events
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/padraicbc/footystats/config"
	"github.com/padraicbc/footystats/db"
	"github.com/padraicbc/footystats/ingest"
	applog "github.com/padraicbc/footystats/logger"
	"github.com/padraicbc/footystats/store"
)

func main() {
	var jobName string
	flag.StringVar(&jobName, "type", string(ingest.JobCompetitions),
		"job to run: competitions, matches, lineups or events")
	flag.Parse()

	// Reject unknown job names before opening any connections.
	job, err := ingest.ParseJob(jobName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	s3c, err := store.New(cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	if err != nil {
		logger.Fatal("object store setup failed", zap.Error(err))
	}

	bdb := db.Setup(cfg, cfg.IngestWorkers)
	defer bdb.Close()

	runner := ingest.NewRunner(s3c, ingest.NewLoader(bdb), logger, cfg.IngestWorkers)
	report, err := runner.Run(context.Background(), job)
	if err != nil {
		logger.Fatal("job failed", zap.String("job", string(job)), zap.Error(err))
	}

	fmt.Println(report.Summary())
	for _, res := range report.Failed() {
		fmt.Printf("failed  %s  %s\n", res.Key, res.Reason)
	}
}
