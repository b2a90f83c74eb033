package presenter

import (
	"repono/internal/domain"
)

// WorkJSON is the API representation of a work.
type WorkJSON struct {
	UUID                   string            `json:"uuid"`
	Type                   string            `json:"type"`
	WorkType               string            `json:"work_type"`
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
	Volumes                *string           `json:"volumes"`
	ThumbnailBase64String  *string           `json:"thumbnail_base64_string"`
}

// WorkPresenter builds the JSON representation for one work document.
type WorkPresenter func(doc *domain.WorkDoc, cname string) WorkJSON

// WorkPresenterRegistry dispatches a work document to the presenter
// registered for its declared model name, falling back to a generic default.
// The registry keeps the set of known work variants closed and testable; new
// work types register a presenter instead of modifying the retrieval service.
type WorkPresenterRegistry struct {
	presenters map[string]WorkPresenter
	fallback   WorkPresenter
}

// NewWorkPresenterRegistry creates a registry with the given default.
func NewWorkPresenterRegistry(fallback WorkPresenter) *WorkPresenterRegistry {
	return &WorkPresenterRegistry{
		presenters: make(map[string]WorkPresenter),
		fallback:   fallback,
	}
}

// Register binds a presenter to an exact model name.
func (r *WorkPresenterRegistry) Register(modelName string, p WorkPresenter) {
	r.presenters[modelName] = p
}

// Present renders the document with the presenter for its model name, or the
// default when none is registered.
func (r *WorkPresenterRegistry) Present(doc *domain.WorkDoc, cname string) WorkJSON {
	if p, ok := r.presenters[doc.ModelName]; ok {
		return p(doc, cname)
	}
	return r.fallback(doc, cname)
}

// GenericWorkJSON is the default work presenter.
func GenericWorkJSON(doc *domain.WorkDoc, cname string) WorkJSON {
	return WorkJSON{
		UUID:                   doc.ID,
		Type:                   "work",
		WorkType:               doc.ModelName,
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
		Volumes:                doc.Volumes,
	}
}

// ImageWorkJSON presents image-type works. Images always carry a resource
// type even when the index omits one.
func ImageWorkJSON(doc *domain.WorkDoc, cname string) WorkJSON {
	j := GenericWorkJSON(doc, cname)
	if j.ResourceType == nil {
		rt := "Image"
		j.ResourceType = &rt
	}
	return j
}

// DefaultWorkPresenters returns the registry with the known work variants.
func DefaultWorkPresenters() *WorkPresenterRegistry {
	r := NewWorkPresenterRegistry(GenericWorkJSON)
	r.Register("GenericWork", GenericWorkJSON)
	r.Register("Image", ImageWorkJSON)
	return r
}
