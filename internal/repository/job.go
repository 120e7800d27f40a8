// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"jobrec/internal/model"
)

// JobRepository persists job postings using SQL only. Callers decide defaults;
// no deduplication is done at this layer.
type JobRepository interface {
	// InsertJob stores a single posting in the jobs table.
	InsertJob(ctx context.Context, job model.JobPosting) error

	// InsertJobBatch stores every posting in the job_data table inside one
	// transaction and returns the number of rows written.
	InsertJobBatch(ctx context.Context, jobs []model.JobPosting) (int, error)
}
