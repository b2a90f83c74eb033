package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockThumbnailStorage is a mock implementation of port.ThumbnailStorage.
type MockThumbnailStorage struct {
	mock.Mock
}

func (m *MockThumbnailStorage) Fetch(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
