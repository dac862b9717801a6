package dto

import (
	"giftlist/internal/domains/gift/model"
	"giftlist/shared"
	"giftlist/shared/constant"
	"giftlist/shared/timezone"
	"giftlist/shared/validator"
	"net/http"
	"strings"
	"time"
)

const (
	MessageCreated = "gift created successfully"
	MessageUpdated = "gift updated successfully"
	MessageRemoved = "gift removed successfully"
)

// CreateGiftRequest carries the editable fields of a gift.
type CreateGiftRequest struct {
	Name        string `json:"name"         validate:"min=2"`
	Category    string `json:"category"     validate:"notblank"`
	Description string `json:"description"  validate:"min=5"`
	ProductLink string `json:"product_link" validate:"omitempty,url"`
	ImageURL    string `json:"image_url"    validate:"omitempty,url"`
}

// Normalize trims every field.
func (r *CreateGiftRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.ProductLink = strings.TrimSpace(r.ProductLink)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// Validate lists every violated rule. An empty list means the request is valid.
func (r CreateGiftRequest) Validate() []string {
	r.Normalize()

	return validator.Violations(&r)
}

// Sanitize truncates the text fields to the column limits.
func (r *CreateGiftRequest) Sanitize() {
	r.Normalize()
	r.Name = shared.Truncate(r.Name, model.MaxNameLength)
	r.Category = shared.Truncate(r.Category, model.MaxCategoryLength)
	r.Description = shared.Truncate(r.Description, model.MaxDescriptionLength)
}

// ToModel builds an available gift. imageRef takes precedence over ImageURL.
func (r CreateGiftRequest) ToModel(imageRef string) model.Gift {
	r.Sanitize()

	if imageRef == constant.Empty {
		imageRef = r.ImageURL
	}

	now := timezone.Now()

	return model.Gift{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		ProductLink: optional(r.ProductLink),
		ImageURL:    optional(imageRef),
		Status:      model.StatusAvailable,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
}

// UpdateGiftRequest is a partial edit. Absent or blank text fields keep the stored value; an empty
// product_link clears it.
type UpdateGiftRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ProductLink *string `json:"product_link"`
	ImageURL    *string `json:"image_url"`
}

// Merge applies the patch over existing. The returned ImageURL is only set when the patch names
// a new image URL, so an unchanged stored reference is never validated again.
func (r UpdateGiftRequest) Merge(existing model.Gift) CreateGiftRequest {
	merged := CreateGiftRequest{
		Name:        keepIfBlank(r.Name, existing.Name),
		Category:    keepIfBlank(r.Category, existing.Category),
		Description: keepIfBlank(r.Description, existing.Description),
	}

	switch {
	case r.ProductLink == nil:
		merged.ProductLink = deref(existing.ProductLink)
	default:
		merged.ProductLink = strings.TrimSpace(*r.ProductLink)
	}

	if r.ImageURL != nil {
		imageURL := strings.TrimSpace(*r.ImageURL)
		if imageURL != existing.ImageRef() {
			merged.ImageURL = imageURL
		}
	}

	return merged
}

// ToUpdateFields renders the column values written by an edit. Status and reservation columns are
// never part of it.
func (r CreateGiftRequest) ToUpdateFields(imageRef string) map[string]any {
	r.Sanitize()

	return map[string]any{
		model.FieldName:        r.Name,
		model.FieldCategory:    r.Category,
		model.FieldDescription: r.Description,
		model.FieldProductLink: optional(r.ProductLink),
		model.FieldImageURL:    optional(imageRef),
		model.FieldModifiedAt:  timezone.Now(),
	}
}

type GiftResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	ProductLink *string    `json:"product_link"`
	ImageURL    *string    `json:"image_url"`
	Status      string     `json:"status"`
	ReservedBy  *string    `json:"reserved_by"`
	ReservedAt  *time.Time `json:"reserved_at"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (r *GiftResponse) FromModel(gift model.Gift) {
	r.ID = gift.ID
	r.Name = gift.Name
	r.Category = gift.Category
	r.Description = gift.Description
	r.ProductLink = gift.ProductLink
	r.ImageURL = gift.ImageURL
	r.Status = gift.Status
	r.ReservedBy = gift.ReservedBy
	r.ReservedAt = timezone.ToAppTimePtr(gift.ReservedAt)
	r.CreatedAt = nil

	if !gift.CreatedAt.IsZero() {
		createdAt := timezone.ToAppTime(gift.CreatedAt)
		r.CreatedAt = &createdAt
	}
}

func FromModels(gifts []model.Gift) []GiftResponse {
	res := make([]GiftResponse, len(gifts))
	for i, gift := range gifts {
		res[i].FromModel(gift)
	}

	return res
}

// ListFilter narrows a catalog listing. Empty fields match everything.
type ListFilter struct {
	Status   string `json:"status"   validate:"omitempty,oneof=available reserved"`
	Category string `json:"category" validate:"omitempty,max=50"`
}

// FromRequest reads the filter from the status and category query parameters.
func (f *ListFilter) FromRequest(request *http.Request) {
	query := request.URL.Query()

	f.Status = query.Get(constant.RequestParamStatus)
	f.Category = query.Get(constant.RequestParamCategory)
}

func (f *ListFilter) Normalize() {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.Category = strings.TrimSpace(f.Category)
}

func keepIfBlank(value *string, fallback string) string {
	if value == nil {
		return fallback
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == constant.Empty {
		return fallback
	}

	return trimmed
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
