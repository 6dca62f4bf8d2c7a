package certificates

import (
	"time"

	"github.com/dkurganov/gift-marketplace/internal/tags"
)

// GiftCertificate is a purchasable certificate with its associated tag set.
// Tags are shared entities; the certificate owns only the association.
type GiftCertificate struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	Duration       int        `json:"duration" db:"duration"`
	Price          float64    `json:"price" db:"price"`
	CreateDate     time.Time  `json:"create_date" db:"create_date"`
	LastUpdateDate time.Time  `json:"last_update_date" db:"last_update_date"`
	Tags           []tags.Tag `json:"tags"`
}

// CreateRequest is the payload for creating a certificate
type CreateRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Duration    int               `json:"duration" binding:"required,gt=0"`
	Price       *float64          `json:"price" binding:"required,gte=0"`
	Tags        []tags.TagRequest `json:"tags" binding:"dive"`
}

// UpdateRequest is a partial-update payload. Nil fields are left untouched;
// a non-nil Tags list replaces the certificate's entire tag set.
type UpdateRequest struct {
	Name        *string            `json:"name" validate:"omitempty,min=1"`
	Description *string            `json:"description"`
	Duration    *int               `json:"duration" validate:"omitempty,gt=0"`
	Price       *float64           `json:"price" validate:"omitempty,gte=0"`
	Tags        *[]tags.TagRequest `json:"tags"`
}

// ListFilters holds the optional filter and sort parameters for certificate
// list queries. Filters are conjunctive; sort tokens are raw asc/desc strings
// validated by the query builder.
type ListFilters struct {
	TagName     *string
	Description *string
	SortByDate  *string
	SortByName  *string
}

// TagNames extracts the plain names from a tag request list
func TagNames(reqs []tags.TagRequest) []string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.Name)
	}
	return names
}
