package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/port"
)

// MockSearchIndex is a mock implementation of port.SearchIndex.
type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) CollectionCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockSearchIndex) SearchCollections(ctx context.Context, q port.CollectionQuery) ([]domain.CollectionDoc, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CollectionDoc), args.Int(1), args.Error(2)
}

func (m *MockSearchIndex) GetCollection(ctx context.Context, q port.SingleItemQuery) (*domain.CollectionDoc, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionDoc), args.Error(1)
}

func (m *MockSearchIndex) SearchMemberWorks(ctx context.Context, q port.MemberWorkQuery) ([]domain.WorkDoc, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WorkDoc), args.Int(1), args.Error(2)
}

func (m *MockSearchIndex) WorkCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockSearchIndex) SearchWorks(ctx context.Context, q port.WorkQuery) ([]domain.WorkDoc, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WorkDoc), args.Int(1), args.Error(2)
}

func (m *MockSearchIndex) GetWork(ctx context.Context, q port.SingleItemQuery) (*domain.WorkDoc, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkDoc), args.Error(1)
}
