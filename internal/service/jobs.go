package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"jobrec/internal/apperr"
	"jobrec/internal/model"
	"jobrec/internal/repository"
	"jobrec/internal/snapshot"
)

const (
	MsgJobStored = "Job stored successfully"
	MsgNoJobs    = "No jobs found in request"
)

// SaveResult describes the outcome of a save_jobs push.
type SaveResult struct {
	Saved   int    `json:"-"`
	Message string `json:"message"`
}

// JobService persists postings pushed back by the automation workflow and
// keeps the latest batch in memory.
type JobService interface {
	// Store inserts a single posting.
	Store(ctx context.Context, job model.JobPosting) error
	// SaveBatch replaces the latest snapshot with payload and persists its jobs.
	SaveBatch(ctx context.Context, payload []byte) (*SaveResult, error)
	// Latest returns the most recent snapshot or nil.
	Latest() *snapshot.Snapshot
}

type jobService struct {
	repo  repository.JobRepository
	store *snapshot.Store
}

// NewJobService constructs a JobService. store may be nil for services that
// never serve the latest batch.
func NewJobService(repo repository.JobRepository, store *snapshot.Store) JobService {
	return &jobService{repo: repo, store: store}
}

func (s *jobService) Store(ctx context.Context, job model.JobPosting) (err error) {
	ctx, span := tracer.Start(ctx, "jobs.Store")
	defer func() { endSpan(span, err) }()

	if err := s.repo.InsertJob(ctx, job); err != nil {
		return apperr.Wrap(apperr.KindDownstreamUnavailable, "DB insert failed", err)
	}
	return nil
}

func (s *jobService) SaveBatch(ctx context.Context, payload []byte) (_ *SaveResult, err error) {
	ctx, span := tracer.Start(ctx, "jobs.SaveBatch")
	defer func() { endSpan(span, err) }()

	var batch model.JobBatch
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidBody, "request body must be a JSON object with a jobs list", err)
	}
	span.SetAttributes(attribute.Int("jobs.count", len(batch.Jobs)))

	if s.store != nil {
		s.store.Replace(payload, len(batch.Jobs))
	}

	if len(batch.Jobs) == 0 {
		return &SaveResult{Message: MsgNoJobs}, nil
	}

	n, err := s.repo.InsertJobBatch(ctx, batch.Jobs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownstreamUnavailable, "DB insert failed", err)
	}
	return &SaveResult{
		Saved:   n,
		Message: fmt.Sprintf("%d jobs saved successfully in database", n),
	}, nil
}

func (s *jobService) Latest() *snapshot.Snapshot {
	if s.store == nil {
		return nil
	}
	return s.store.Load()
}
