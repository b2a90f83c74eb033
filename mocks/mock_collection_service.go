package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/presenter"
	"repono/internal/service"
)

// MockCollectionService is a mock implementation of service.CollectionService.
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*service.CollectionListResult, error) {
	args := m.Called(ctx, account, identity, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CollectionListResult), args.Error(1)
}

func (m *MockCollectionService) Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string, page domain.PageRequest) (*presenter.CollectionJSON, error) {
	args := m.Called(ctx, account, identity, id, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*presenter.CollectionJSON), args.Error(1)
}
