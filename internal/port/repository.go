package port

import (
	"context"

	"github.com/google/uuid"

	"repono/internal/domain"
)

// AccountRepository defines the contract for tenant account persistence.
type AccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByTenant(ctx context.Context, tenant string) (*domain.Account, error)
}

// UserRepository defines the contract for user persistence. All query methods
// include accountID to enforce tenant isolation at the data layer.
type UserRepository interface {
	GetByID(ctx context.Context, accountID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, accountID uuid.UUID, email string) (*domain.User, error)
}

// ParticipantRepository defines the contract for admin-set participant grants.
type ParticipantRepository interface {
	ListByAgent(ctx context.Context, accountID uuid.UUID, agentID string) ([]domain.Participant, error)
}
