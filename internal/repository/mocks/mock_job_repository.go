package mocks

import (
	"context"

	"jobrec/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) InsertJob(ctx context.Context, job model.JobPosting) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) InsertJobBatch(ctx context.Context, jobs []model.JobPosting) (int, error) {
	args := m.Called(ctx, jobs)
	return args.Int(0), args.Error(1)
}
