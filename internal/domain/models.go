package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an isolated tenant of the repository.
type Account struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Tenant      string    `db:"tenant" json:"tenant"`
	CName       string    `db:"cname" json:"cname"`
	FrontendURL *string   `db:"frontend_url" json:"frontend_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to an account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AccountID    uuid.UUID `db:"account_id" json:"account_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RoleTags returns the role tags serialized as the session "type" list.
func (u *User) RoleTags() []string {
	if u.Role == RoleAdmin {
		return []string{string(RoleAdmin)}
	}
	return []string{}
}

// Participant is a user's access grant on a named admin set.
type Participant struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	AccountID     uuid.UUID         `db:"account_id" json:"account_id"`
	AgentID       string            `db:"agent_id" json:"agent_id"`
	AdminSetTitle string            `db:"admin_set_title" json:"admin_set_title"`
	Access        ParticipantAccess `db:"access" json:"access"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// CollectionDoc is a collection as returned by the search index. All
// descriptive metadata is optional; absent fields serialize as null.
type CollectionDoc struct {
	ID              string     `db:"id"`
	AccountID       uuid.UUID  `db:"account_id"`
	Title           string     `db:"title"`
	Visibility      Visibility `db:"visibility"`
	ReadUsers       []string   `db:"-"`
	ReadGroups      []string   `db:"-"`
	RelatedURL      *string    `db:"related_url"`
	ResourceType    *string    `db:"resource_type"`
	DateCreated     *string    `db:"date_created"`
	Description     *string    `db:"description"`
	DatePublished   *string    `db:"date_published"`
	Keywords        []string   `db:"-"`
	License         *string    `db:"license"`
	RightsStatement *string    `db:"rights_statement"`
	Language        *string    `db:"language"`
	Publisher       *string    `db:"publisher"`
	ThumbnailPath   *string    `db:"thumbnail_path"`
	Volumes         *string    `db:"volumes"`
}

// WorkDoc is a work as returned by the search index. ModelName carries the
// declared work type used for presenter dispatch.
type WorkDoc struct {
	ID              string     `db:"id"`
	AccountID       uuid.UUID  `db:"account_id"`
	ModelName       string     `db:"model_name"`
	Title           string     `db:"title"`
	Visibility      Visibility `db:"visibility"`
	ReadUsers       []string   `db:"-"`
	ReadGroups      []string   `db:"-"`
	RelatedURL      *string    `db:"related_url"`
	ResourceType    *string    `db:"resource_type"`
	DateCreated     *string    `db:"date_created"`
	Description     *string    `db:"description"`
	DatePublished   *string    `db:"date_published"`
	Keywords        []string   `db:"-"`
	License         *string    `db:"license"`
	RightsStatement *string    `db:"rights_statement"`
	Language        *string    `db:"language"`
	Publisher       *string    `db:"publisher"`
	ThumbnailPath   *string    `db:"thumbnail_path"`
	Volumes         *string    `db:"volumes"`
}

// PageRequest is a 1-based page window over a result set.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset returns the zero-based offset of the window.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Normalize clamps the request to valid values, substituting defaultPerPage
// when per_page is unset or invalid.
func (p PageRequest) Normalize(defaultPerPage int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	return p
}
