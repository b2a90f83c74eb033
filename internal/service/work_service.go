package service

import (
	"context"
	"errors"
	"fmt"

	"repono/internal/domain"
	"repono/internal/port"
	"repono/internal/presenter"
)

// WorkListResult is one page of visible works plus the filtered total.
type WorkListResult struct {
	Total int                  `json:"total"`
	Items []presenter.WorkJSON `json:"items"`
}

// WorkService answers "list works" and "show work" for one tenant and
// requester, with the same not-found collapse as collections.
type WorkService interface {
	List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*WorkListResult, error)
	Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string) (*presenter.WorkJSON, error)
}

type workService struct {
	searchIndex    port.SearchIndex
	workPresenters *presenter.WorkPresenterRegistry
	defaultPerPage int
}

// NewWorkService creates a new WorkService implementation.
func NewWorkService(
	searchIndex port.SearchIndex,
	workPresenters *presenter.WorkPresenterRegistry,
	defaultPerPage int,
) WorkService {
	return &workService{
		searchIndex:    searchIndex,
		workPresenters: workPresenters,
		defaultPerPage: defaultPerPage,
	}
}

func (s *workService) List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*WorkListResult, error) {
	page = page.Normalize(s.defaultPerPage)

	count, err := s.searchIndex.WorkCount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("workService.List: %w", err)
	}
	if count == 0 {
		return nil, domain.NoWorksError()
	}

	ability := domain.NewAbility(identity)
	docs, total, err := s.searchIndex.SearchWorks(ctx, port.WorkQuery{
		AccountID: account.ID,
		Filter:    ability.Filter(),
		Page:      page,
	})
	if err != nil {
		return nil, fmt.Errorf("workService.List: %w", err)
	}

	items := make([]presenter.WorkJSON, 0, len(docs))
	for idx := range docs {
		items = append(items, s.workPresenters.Present(&docs[idx], account.CName))
	}
	return &WorkListResult{Total: total, Items: items}, nil
}

func (s *workService) Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string) (*presenter.WorkJSON, error) {
	doc, err := s.searchIndex.GetWork(ctx, port.SingleItemQuery{
		AccountID: account.ID,
		ID:        id,
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("workService.Show: %w", err)
	}

	ability := domain.NewAbility(identity)
	if doc == nil || !ability.CanReadWork(doc) {
		return nil, domain.WorkNotFoundError(id)
	}

	result := s.workPresenters.Present(doc, account.CName)
	return &result, nil
}
