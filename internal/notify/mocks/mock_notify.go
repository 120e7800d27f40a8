package mocks

import (
	"context"

	"jobrec/internal/notify"
	"jobrec/internal/webhook"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, n notify.Notification) {
	m.Called(ctx, n)
}

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, payload any) (*webhook.Response, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhook.Response), args.Error(1)
}
