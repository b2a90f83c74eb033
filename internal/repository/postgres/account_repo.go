package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"repono/internal/domain"
	"repono/internal/port"
)

type accountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a new PostgreSQL-backed AccountRepository.
func NewAccountRepo(db *sqlx.DB) port.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var a domain.Account
	err := r.db.GetContext(ctx, &a, "SELECT * FROM accounts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accountRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *accountRepo) GetByTenant(ctx context.Context, tenant string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.GetContext(ctx, &a, "SELECT * FROM accounts WHERE tenant = $1", tenant)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accountRepo.GetByTenant: %w", err)
	}
	return &a, nil
}
