// Package presenter maps raw index documents into the API's JSON
// representations. Presenters are read-only view models; every nullable
// field is serialized explicitly so clients always see the full key set.
package presenter

import (
	"encoding/base64"
	"net/url"

	"repono/internal/domain"
)

// CollectionJSON is the API representation of a collection.
type CollectionJSON struct {
	UUID                   string            `json:"uuid"`
	Type                   string            `json:"type"`
	RelatedURL             *string           `json:"related_url"`
	Title                  string            `json:"title"`
	ResourceType           *string           `json:"resource_type"`
	DateCreated            *string           `json:"date_created"`
	CName                  string            `json:"cname"`
	Description            *string           `json:"description"`
	DatePublished          *string           `json:"date_published"`
	Keywords               []string          `json:"keywords"`
	LicenseForAPI          *string           `json:"license_for_api_tesim"`
	RightsStatementsForAPI *string           `json:"rights_statements_for_api_tesim"`
	Language               *string           `json:"language"`
	Publisher              *string           `json:"publisher"`
	ThumbnailURL           *string           `json:"thumbnail_url"`
	Visibility             domain.Visibility `json:"visibility"`
	TotalWorks             int               `json:"total_works"`
	Works                  []WorkJSON        `json:"works"`
	Volumes                *string           `json:"volumes"`
	ThumbnailBase64String  *string           `json:"thumbnail_base64_string"`
}

// NewCollectionJSON builds the collection representation. cname is the
// account's canonical hostname, used to absolutize the thumbnail path.
func NewCollectionJSON(doc *domain.CollectionDoc, cname string) CollectionJSON {
	return CollectionJSON{
		UUID:                   doc.ID,
		Type:                   "collection",
		RelatedURL:             doc.RelatedURL,
		Title:                  doc.Title,
		ResourceType:           doc.ResourceType,
		DateCreated:            doc.DateCreated,
		CName:                  cname,
		Description:            doc.Description,
		DatePublished:          doc.DatePublished,
		Keywords:               doc.Keywords,
		LicenseForAPI:          doc.License,
		RightsStatementsForAPI: doc.RightsStatement,
		Language:               doc.Language,
		Publisher:              doc.Publisher,
		ThumbnailURL:           thumbnailURL(cname, doc.ThumbnailPath),
		Visibility:             doc.Visibility,
		Works:                  []WorkJSON{},
		Volumes:                doc.Volumes,
	}
}

// WithThumbnailData attaches the base64-encoded thumbnail derivative.
func (c CollectionJSON) WithThumbnailData(data []byte) CollectionJSON {
	if len(data) > 0 {
		encoded := base64.StdEncoding.EncodeToString(data)
		c.ThumbnailBase64String = &encoded
	}
	return c
}

// thumbnailURL joins the tenant hostname and the index-provided thumbnail
// path into an absolute URL, or nil when no thumbnail is indexed.
func thumbnailURL(cname string, path *string) *string {
	if path == nil || *path == "" || cname == "" {
		return nil
	}
	base := url.URL{Scheme: "http", Host: cname}
	ref, err := url.Parse(*path)
	if err != nil {
		return nil
	}
	joined := base.ResolveReference(ref).String()
	return &joined
}
