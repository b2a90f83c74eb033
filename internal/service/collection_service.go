package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"repono/internal/domain"
	"repono/internal/port"
	"repono/internal/presenter"
)

// CollectionListResult is one page of visible collections plus the filtered
// total counted before the page window.
type CollectionListResult struct {
	Total int                        `json:"total"`
	Items []presenter.CollectionJSON `json:"items"`
}

// CollectionService answers "list collections" and "show collection with its
// visible member works" for one tenant and requester.
type CollectionService interface {
	List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*CollectionListResult, error)
	Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string, page domain.PageRequest) (*presenter.CollectionJSON, error)
}

type collectionService struct {
	searchIndex    port.SearchIndex
	workPresenters *presenter.WorkPresenterRegistry
	thumbnails     port.ThumbnailStorage
	defaultPerPage int
}

// NewCollectionService creates a new CollectionService implementation.
// thumbnails may be nil when no thumbnail store is configured.
func NewCollectionService(
	searchIndex port.SearchIndex,
	workPresenters *presenter.WorkPresenterRegistry,
	thumbnails port.ThumbnailStorage,
	defaultPerPage int,
) CollectionService {
	return &collectionService{
		searchIndex:    searchIndex,
		workPresenters: workPresenters,
		thumbnails:     thumbnails,
		defaultPerPage: defaultPerPage,
	}
}

func (s *collectionService) List(ctx context.Context, account *domain.Account, identity domain.Identity, page domain.PageRequest) (*CollectionListResult, error) {
	page = page.Normalize(s.defaultPerPage)

	// The tenant-wide count decides between the not-found envelope and a
	// normal empty page: a tenant with collections the requester cannot see
	// still gets {total: 0, items: []}.
	count, err := s.searchIndex.CollectionCount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("collectionService.List: %w", err)
	}
	if count == 0 {
		return nil, domain.NoCollectionsError()
	}

	ability := domain.NewAbility(identity)
	docs, total, err := s.searchIndex.SearchCollections(ctx, port.CollectionQuery{
		AccountID: account.ID,
		Filter:    ability.Filter(),
		Page:      page,
	})
	if err != nil {
		return nil, fmt.Errorf("collectionService.List: %w", err)
	}

	items := make([]presenter.CollectionJSON, 0, len(docs))
	for idx := range docs {
		items = append(items, s.present(ctx, &docs[idx], account))
	}
	return &CollectionListResult{Total: total, Items: items}, nil
}

func (s *collectionService) Show(ctx context.Context, account *domain.Account, identity domain.Identity, id string, page domain.PageRequest) (*presenter.CollectionJSON, error) {
	req := &showRequest{
		svc:      s,
		account:  account,
		ability:  domain.NewAbility(identity),
		id:       id,
		workPage: page.Normalize(s.defaultPerPage),
	}

	doc, err := req.collection(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil || !req.ability.CanReadCollection(doc) {
		// Absent and forbidden collapse into one message so restricted
		// records cannot be probed for existence.
		return nil, domain.RecordNotFoundError(id)
	}

	works, totalWorks, err := req.memberWorks(ctx)
	if err != nil {
		return nil, err
	}

	result := s.present(ctx, doc, account)
	result.TotalWorks = totalWorks
	result.Works = make([]presenter.WorkJSON, 0, len(works))
	for idx := range works {
		result.Works = append(result.Works, s.workPresenters.Present(&works[idx], account.CName))
	}
	return &result, nil
}

// present renders the collection and attaches the thumbnail derivative when
// a thumbnail store is configured. Missing derivatives are not an error.
func (s *collectionService) present(ctx context.Context, doc *domain.CollectionDoc, account *domain.Account) presenter.CollectionJSON {
	result := presenter.NewCollectionJSON(doc, account.CName)
	if s.thumbnails == nil || doc.ThumbnailPath == nil || *doc.ThumbnailPath == "" {
		return result
	}
	data, err := s.thumbnails.Fetch(ctx, *doc.ThumbnailPath)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("collectionService: fetching thumbnail for %s: %v", doc.ID, err)
		}
		return result
	}
	return result.WithThumbnailData(data)
}

// showRequest memoizes the resolved collection document and its member-work
// page for the duration of one Show call. Nothing here outlives the request.
type showRequest struct {
	svc      *collectionService
	account  *domain.Account
	ability  domain.Ability
	id       string
	workPage domain.PageRequest

	doc       *domain.CollectionDoc
	docLoaded bool

	works       []domain.WorkDoc
	worksTotal  int
	worksLoaded bool
}

func (r *showRequest) collection(ctx context.Context) (*domain.CollectionDoc, error) {
	if r.docLoaded {
		return r.doc, nil
	}
	doc, err := r.svc.searchIndex.GetCollection(ctx, port.SingleItemQuery{
		AccountID: r.account.ID,
		ID:        r.id,
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("collectionService.Show: %w", err)
	}
	r.doc = doc
	r.docLoaded = true
	return r.doc, nil
}

func (r *showRequest) memberWorks(ctx context.Context) ([]domain.WorkDoc, int, error) {
	if r.worksLoaded {
		return r.works, r.worksTotal, nil
	}
	works, total, err := r.svc.searchIndex.SearchMemberWorks(ctx, port.MemberWorkQuery{
		AccountID:    r.account.ID,
		CollectionID: r.id,
		Filter:       r.ability.Filter(),
		Page:         r.workPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("collectionService.Show member works: %w", err)
	}
	r.works = works
	r.worksTotal = total
	r.worksLoaded = true
	return r.works, r.worksTotal, nil
}
