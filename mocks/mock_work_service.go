package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/presenter"
	"repono/internal/service"
)

// MockWorkService is a mock implementation of service.WorkService.
type MockWorkService struct {
	mock.Mock
}

func (m *MockWorkService) List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*service.WorkListResult, error) {
	args := m.Called(ctx, account, identity, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkListResult), args.Error(1)
}

func (m *MockWorkService) Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string) (*presenter.WorkJSON, error) {
	args := m.Called(ctx, account, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*presenter.WorkJSON), args.Error(1)
}
