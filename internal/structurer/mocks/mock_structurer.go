package mocks

import (
	"context"

	"jobrec/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockResumeStructurer struct {
	mock.Mock
}

func (m *MockResumeStructurer) Structure(ctx context.Context, text string) (model.StructuredResume, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.StructuredResume), args.Error(1)
}
