package model

import (
	"giftlist/shared/failure"
	"time"
)

const (
	TableName  = "gifts"
	EntityName = "gift"

	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldProductLink = "product_link"
	FieldImageURL    = "image_url"
	FieldStatus      = "status"
	FieldReservedBy  = "reserved_by"
	FieldReservedAt  = "reserved_at"
	FieldCreatedAt   = "created_at"
	FieldModifiedAt  = "modified_at"
)

var ErrNotFound = failure.NotFound("gift not found")

// CachePrefix scopes every cached gift read; any gift write clears the whole prefix.
const CachePrefix = "gift:"

const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
)

const (
	MaxNameLength        = 200
	MaxCategoryLength    = 50
	MaxDescriptionLength = 500
	MaxReservedByLength  = 100
	MinReservedByLength  = 3
)

type Gift struct {
	ID          int64      `db:"id"           insert:"false"`
	Name        string     `db:"name"`
	Category    string     `db:"category"`
	Description string     `db:"description"`
	ProductLink *string    `db:"product_link"`
	ImageURL    *string    `db:"image_url"`
	Status      string     `db:"status"`
	ReservedBy  *string    `db:"reserved_by"`
	ReservedAt  *time.Time `db:"reserved_at"`
	CreatedAt   time.Time  `db:"created_at"`
	ModifiedAt  time.Time  `db:"modified_at"`
}

func (g Gift) Exists() bool {
	return g.ID > 0
}

func (g Gift) IsReserved() bool {
	return g.Status == StatusReserved
}

// ImageRef returns the stored image reference or "".
func (g Gift) ImageRef() string {
	if g.ImageURL == nil {
		return ""
	}

	return *g.ImageURL
}
