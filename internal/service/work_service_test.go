package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/port"
	"repono/internal/presenter"
	"repono/internal/service"
	"repono/mocks"
)

func TestWorkService_List_EmptyTenant(t *testing.T) {
	index := new(mocks.MockSearchIndex)
	svc := service.NewWorkService(index, presenter.DefaultWorkPresenters(), 10)
	account := testAccount()

	index.On("WorkCount", mock.Anything, account.ID).Return(0, nil)

	result, err := svc.List(context.Background(), account, domain.Anonymous(), domain.PageRequest{})

	assert.Nil(t, result)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "This tenant has no work", notFound.Message)
}

func TestWorkService_List_SingleOpenWork(t *testing.T) {
	index := new(mocks.MockSearchIndex)
	svc := service.NewWorkService(index, presenter.DefaultWorkPresenters(), 10)
	account := testAccount()

	docs := []domain.WorkDoc{
		{ID: "w1", ModelName: "Image", Title: "Only Work", Visibility: domain.VisibilityOpen},
	}
	index.On("WorkCount", mock.Anything, account.ID).Return(1, nil)
	index.On("SearchWorks", mock.Anything, mock.Anything).Return(docs, 1, nil)

	result, err := svc.List(context.Background(), account, domain.Anonymous(), domain.PageRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "w1", result.Items[0].UUID)
	assert.Equal(t, "Image", result.Items[0].WorkType)
	assert.NotNil(t, result.Items[0].ResourceType)
}

func TestWorkService_Show_AbsentAndForbiddenCollapse(t *testing.T) {
	index := new(mocks.MockSearchIndex)
	svc := service.NewWorkService(index, presenter.DefaultWorkPresenters(), 10)
	account := testAccount()

	restricted := &domain.WorkDoc{ID: "w1", ModelName: "GenericWork", Title: "Hidden", Visibility: domain.VisibilityRestricted}
	index.On("GetWork", mock.Anything, port.SingleItemQuery{AccountID: account.ID, ID: "w1"}).
		Return(restricted, nil)
	index.On("GetWork", mock.Anything, port.SingleItemQuery{AccountID: account.ID, ID: "missing"}).
		Return(nil, domain.ErrNotFound)

	_, errForbidden := svc.Show(context.Background(), account, domain.Anonymous(), "w1")
	_, errAbsent := svc.Show(context.Background(), account, domain.Anonymous(), "missing")

	var nf1, nf2 *domain.NotFoundError
	assert.ErrorAs(t, errForbidden, &nf1)
	assert.ErrorAs(t, errAbsent, &nf2)
	assert.Equal(t, "This is either a private work or there is no record with id: w1", nf1.Message)
	assert.Equal(t, "This is either a private work or there is no record with id: missing", nf2.Message)
}

func TestWorkService_Show_UserGrant(t *testing.T) {
	index := new(mocks.MockSearchIndex)
	svc := service.NewWorkService(index, presenter.DefaultWorkPresenters(), 10)
	account := testAccount()

	doc := &domain.WorkDoc{
		ID:         "w1",
		ModelName:  "GenericWork",
		Title:      "Granted",
		Visibility: domain.VisibilityRestricted,
		ReadUsers:  []string{"granted@test.org"},
	}
	index.On("GetWork", mock.Anything, mock.Anything).Return(doc, nil)

	granted := domain.Identity{Email: "granted@test.org", Role: domain.RoleUser}
	result, err := svc.Show(context.Background(), account, granted, "w1")
	assert.NoError(t, err)
	assert.Equal(t, "w1", result.UUID)

	other := domain.Identity{Email: "other@test.org", Role: domain.RoleUser}
	_, err = svc.Show(context.Background(), account, other, "w1")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
