package lib

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// BuildRecord summarizes one compiler run for the build history table.
type BuildRecord struct {
	Files      []string
	ErrorCount int
	Succeeded  bool
	OutputSize int
	StartedAt  time.Time
	Duration   time.Duration
}

func NewBuildRecord(sources []SourceFile, res Result, startedAt time.Time, duration time.Duration) BuildRecord {
	files := []string{}
	for _, src := range sources {
		files = append(files, src.Name)
	}

	errorCount := 0
	if res.Errors != nil {
		errorCount = res.Errors.Count()
	}

	return BuildRecord{
		Files:      files,
		ErrorCount: errorCount,
		Succeeded:  errorCount == 0 && res.Code != "",
		OutputSize: len(res.Code),
		StartedAt:  startedAt,
		Duration:   duration,
	}
}

const createHistoryTableSQL = `CREATE TABLE IF NOT EXISTS laic_builds (
	id SERIAL PRIMARY KEY,
	started_at TIMESTAMP WITH TIME ZONE NOT NULL,
	duration_ms BIGINT NOT NULL,
	files TEXT[] NOT NULL,
	error_count INT NOT NULL,
	succeeded BOOLEAN NOT NULL,
	output_bytes INT NOT NULL
)`

const insertBuildSQL = `INSERT INTO laic_builds
	(started_at, duration_ms, files, error_count, succeeded, output_bytes)
	VALUES ($1, $2, $3, $4, $5, $6)`

// RecordBuild appends rec to the laic_builds table in the PostgreSQL database
// at connectionString, creating the table on first use.
func RecordBuild(ctx context.Context, connectionString string, rec BuildRecord) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return err
	}
	defer db.Close()

	err = requireHistoryTable(ctx, db)
	if err != nil {
		return err
	}

	return insertBuild(ctx, db, rec)
}

func requireHistoryTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, createHistoryTableSQL)
	return err
}

func insertBuild(ctx context.Context, db *sql.DB, rec BuildRecord) error {
	_, err := db.ExecContext(ctx, insertBuildSQL,
		rec.StartedAt,
		rec.Duration.Milliseconds(),
		pq.Array(rec.Files),
		rec.ErrorCount,
		rec.Succeeded,
		rec.OutputSize,
	)
	return err
}
