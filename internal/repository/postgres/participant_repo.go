package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repono/internal/domain"
	"repono/internal/port"
)

type participantRepo struct {
	db *sqlx.DB
}

// NewParticipantRepo creates a new PostgreSQL-backed ParticipantRepository.
func NewParticipantRepo(db *sqlx.DB) port.ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) ListByAgent(ctx context.Context, accountID uuid.UUID, agentID string) ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.SelectContext(ctx, &participants,
		`SELECT * FROM participants
		 WHERE account_id = $1 AND agent_id = $2
		 ORDER BY admin_set_title, created_at`,
		accountID, agentID)
	if err != nil {
		return nil, fmt.Errorf("participantRepo.ListByAgent: %w", err)
	}
	return participants, nil
}
