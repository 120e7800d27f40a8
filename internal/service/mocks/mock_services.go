package mocks

import (
	"context"

	"jobrec/internal/model"
	"jobrec/internal/service"
	"jobrec/internal/snapshot"

	"github.com/stretchr/testify/mock"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeResult), args.Error(1)
}

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) Store(ctx context.Context, job model.JobPosting) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobService) SaveBatch(ctx context.Context, payload []byte) (*service.SaveResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SaveResult), args.Error(1)
}

func (m *MockJobService) Latest() *snapshot.Snapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*snapshot.Snapshot)
}

type MockRelayService struct {
	mock.Mock
}

func (m *MockRelayService) Upload(ctx context.Context, file model.UploadedFile) (*service.UploadResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}
