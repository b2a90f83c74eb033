package port

import (
	"context"

	"github.com/google/uuid"

	"repono/internal/domain"
)

// CollectionQuery asks the index for collections visible to a requester.
type CollectionQuery struct {
	AccountID uuid.UUID
	Filter    domain.VisibilityFilter
	Page      domain.PageRequest
}

// SingleItemQuery resolves exactly one document by id. It deliberately has no
// paging or filter parameters: authorization is evaluated by the caller so
// that absent and forbidden records are indistinguishable in the response.
type SingleItemQuery struct {
	AccountID uuid.UUID
	ID        string
}

// MemberWorkQuery asks the index for works that are members of a collection,
// filtered by the requester's visibility.
type MemberWorkQuery struct {
	AccountID    uuid.UUID
	CollectionID string
	Filter       domain.VisibilityFilter
	Page         domain.PageRequest
}

// WorkQuery asks the index for works visible to a requester.
type WorkQuery struct {
	AccountID uuid.UUID
	Filter    domain.VisibilityFilter
	Page      domain.PageRequest
}

// SearchIndex is the search-index client. Totals always count all documents
// matching the filter before the page window is applied. The index provides
// its own consistency guarantees; implementations must return an error rather
// than partial data when the backing store fails.
type SearchIndex interface {
	// CollectionCount returns the tenant-wide collection count, unfiltered by
	// visibility.
	CollectionCount(ctx context.Context, accountID uuid.UUID) (int, error)
	SearchCollections(ctx context.Context, q CollectionQuery) ([]domain.CollectionDoc, int, error)
	GetCollection(ctx context.Context, q SingleItemQuery) (*domain.CollectionDoc, error)
	SearchMemberWorks(ctx context.Context, q MemberWorkQuery) ([]domain.WorkDoc, int, error)

	// WorkCount returns the tenant-wide work count, unfiltered by visibility.
	WorkCount(ctx context.Context, accountID uuid.UUID) (int, error)
	SearchWorks(ctx context.Context, q WorkQuery) ([]domain.WorkDoc, int, error)
	GetWork(ctx context.Context, q SingleItemQuery) (*domain.WorkDoc, error)
}
