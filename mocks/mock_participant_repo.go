package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
)

// MockParticipantRepo is a mock implementation of port.ParticipantRepository.
type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) ListByAgent(ctx context.Context, accountID uuid.UUID, agentID string) ([]domain.Participant, error) {
	args := m.Called(ctx, accountID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}
