package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jobrec/internal/model"
	"jobrec/internal/repository"
)

// Defaults applied to batch rows, matching what the webhook consumer expects
// to read back from job_data.
const (
	defaultBatchText = "N/A"
	defaultBatchURL  = ""
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

// InsertJob writes one posting to jobs. Absent optional fields become NULL;
// skills are stored comma-joined.
func (r *JobPostgres) InsertJob(ctx context.Context, job model.JobPosting) error {
	const q = `
		INSERT INTO jobs (title, company, location, salary, job_url, skills, experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		job.Title,
		job.Company,
		job.Location,
		job.Salary,
		job.URL,
		job.Skills.Joined(),
		job.Experience,
	)
	return err
}

// InsertJobBatch writes all postings to job_data in a single transaction.
func (r *JobPostgres) InsertJobBatch(ctx context.Context, jobs []model.JobPosting) (int, error) {
	const q = `
		INSERT INTO job_data (title, company, location, url, salary, skills, experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, job := range jobs {
		if _, err := stmt.ExecContext(ctx,
			job.Title.OrDefault(defaultBatchText),
			job.Company.OrDefault(defaultBatchText),
			job.Location.OrDefault(defaultBatchText),
			job.URL.OrDefault(defaultBatchURL),
			job.Salary,
			job.Skills.Joined(),
			job.Experience,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert job %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(jobs), nil
}
