package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// jobs receives single postings from the analysis service; job_data receives
// batches from the relay service. Neither table deduplicates.
var steps = []migrationStep{
	{
		Name: "create_table_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
  id         BIGSERIAL   PRIMARY KEY,
  title      TEXT,
  company    TEXT,
  location   TEXT,
  salary     TEXT,
  job_url    TEXT,
  skills     TEXT,
  experience TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_job_data",
		SQL: `CREATE TABLE IF NOT EXISTS job_data (
  id         BIGSERIAL   PRIMARY KEY,
  title      TEXT        NOT NULL,
  company    TEXT        NOT NULL,
  location   TEXT        NOT NULL,
  url        TEXT        NOT NULL DEFAULT '',
  salary     TEXT,
  skills     TEXT,
  experience TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_jobs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at);`,
	},
	{
		Name: "create_index_job_data_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_job_data_created_at ON job_data (created_at);`,
	},
}

const sentinelQuery = "SELECT to_regclass('public.jobs') IS NOT NULL AND to_regclass('public.job_data') IS NOT NULL"

// EnsureMigrated checks whether both job tables exist and runs the schema steps if they don't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
