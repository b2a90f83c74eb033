package presenter_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"repono/internal/domain"
	"repono/internal/presenter"
)

func strPtr(s string) *string { return &s }

func TestNewCollectionJSON(t *testing.T) {
	doc := &domain.CollectionDoc{
		ID:            "col-1",
		Title:         "Test Collection",
		Visibility:    domain.VisibilityOpen,
		Description:   strPtr("A description"),
		Keywords:      []string{"alpha", "beta"},
		ThumbnailPath: strPtr("/thumbs/col-1.jpg"),
	}

	j := presenter.NewCollectionJSON(doc, "tenant.example.org")

	assert.Equal(t, "col-1", j.UUID)
	assert.Equal(t, "collection", j.Type)
	assert.Equal(t, "Test Collection", j.Title)
	assert.Equal(t, "tenant.example.org", j.CName)
	assert.Equal(t, domain.VisibilityOpen, j.Visibility)
	assert.Equal(t, []string{"alpha", "beta"}, j.Keywords)
	assert.NotNil(t, j.ThumbnailURL)
	assert.Equal(t, "http://tenant.example.org/thumbs/col-1.jpg", *j.ThumbnailURL)

	// Works always serializes as an array, never null.
	assert.NotNil(t, j.Works)
	assert.Empty(t, j.Works)
	assert.Nil(t, j.ThumbnailBase64String)
}

func TestNewCollectionJSON_NoThumbnail(t *testing.T) {
	doc := &domain.CollectionDoc{ID: "col-1", Title: "Bare", Visibility: domain.VisibilityOpen}

	j := presenter.NewCollectionJSON(doc, "tenant.example.org")

	assert.Nil(t, j.ThumbnailURL)
	assert.Nil(t, j.RelatedURL)
	assert.Nil(t, j.Description)
}

func TestCollectionJSON_WithThumbnailData(t *testing.T) {
	doc := &domain.CollectionDoc{ID: "col-1", Title: "Thumbed", Visibility: domain.VisibilityOpen}
	data := []byte("fake-image-bytes")

	j := presenter.NewCollectionJSON(doc, "tenant.example.org").WithThumbnailData(data)

	assert.NotNil(t, j.ThumbnailBase64String)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), *j.ThumbnailBase64String)

	// Empty payloads leave the field null.
	j = presenter.NewCollectionJSON(doc, "tenant.example.org").WithThumbnailData(nil)
	assert.Nil(t, j.ThumbnailBase64String)
}
