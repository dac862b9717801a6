package dto_test

import (
	"giftlist/internal/domains/gift/model"
	"giftlist/internal/domains/gift/model/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreateGiftRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateGiftRequest
		want []string
	}{
		{
			name: "valid",
			req: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
				ProductLink: "https://example.com/kettle",
				ImageURL:    "https://cdn.example.com/kettle.png",
			},
		},
		{
			name: "values are trimmed before the length rules",
			req: dto.CreateGiftRequest{
				Name:        "  K  ",
				Category:    "   ",
				Description: " abcd ",
			},
			want: []string{
				"name must be at least 2 characters",
				"category is required",
				"description must be at least 5 characters",
			},
		},
		{
			name: "links must be absolute",
			req: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
				ProductLink: "kettle",
				ImageURL:    "/images/kettle.png",
			},
			want: []string{
				"product_link must be a valid URL",
				"image_url must be a valid URL",
			},
		},
		{
			name: "name length counts characters, not bytes",
			req: dto.CreateGiftRequest{
				Name:        "Ä",
				Category:    "Kitchen",
				Description: "Electric kettle",
			},
			want: []string{"name must be at least 2 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Validate())
		})
	}
}

func TestCreateGiftRequest_ToModel(t *testing.T) {
	req := dto.CreateGiftRequest{
		Name:        "  " + strings.Repeat("n", 250),
		Category:    strings.Repeat("c", 60),
		Description: strings.Repeat("d", 600),
		ProductLink: " https://example.com/kettle ",
		ImageURL:    "https://cdn.example.com/kettle.png",
	}

	gift := req.ToModel("")

	assert.Len(t, gift.Name, model.MaxNameLength)
	assert.Len(t, gift.Category, model.MaxCategoryLength)
	assert.Len(t, gift.Description, model.MaxDescriptionLength)
	require.NotNil(t, gift.ProductLink)
	assert.Equal(t, "https://example.com/kettle", *gift.ProductLink)
	require.NotNil(t, gift.ImageURL)
	assert.Equal(t, "https://cdn.example.com/kettle.png", *gift.ImageURL)
	assert.Equal(t, model.StatusAvailable, gift.Status)
	assert.Nil(t, gift.ReservedBy)
	assert.Nil(t, gift.ReservedAt)
	assert.False(t, gift.CreatedAt.IsZero())

	uploaded := req.ToModel("/uploads/images/gift-1-abc.png")
	assert.Equal(t, "/uploads/images/gift-1-abc.png", *uploaded.ImageURL)

	bare := dto.CreateGiftRequest{Name: "Kettle", Category: "Kitchen", Description: "Electric kettle"}.ToModel("")
	assert.Nil(t, bare.ProductLink)
	assert.Nil(t, bare.ImageURL)
}

func TestUpdateGiftRequest_Merge(t *testing.T) {
	existing := model.Gift{
		ID:          7,
		Name:        "Kettle",
		Category:    "Kitchen",
		Description: "Electric kettle",
		ProductLink: ptr("https://example.com/kettle"),
		ImageURL:    ptr("/uploads/images/gift-1-abc.png"),
	}

	tests := []struct {
		name  string
		patch dto.UpdateGiftRequest
		want  dto.CreateGiftRequest
	}{
		{
			name:  "empty patch keeps everything",
			patch: dto.UpdateGiftRequest{},
			want: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
				ProductLink: "https://example.com/kettle",
			},
		},
		{
			name: "blank text fields keep the stored value",
			patch: dto.UpdateGiftRequest{
				Name:        ptr("   "),
				Category:    ptr(""),
				Description: ptr(" New description "),
			},
			want: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "New description",
				ProductLink: "https://example.com/kettle",
			},
		},
		{
			name:  "empty product link clears it",
			patch: dto.UpdateGiftRequest{ProductLink: ptr("  ")},
			want: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
			},
		},
		{
			name:  "unchanged image reference is not revalidated",
			patch: dto.UpdateGiftRequest{ImageURL: ptr("/uploads/images/gift-1-abc.png")},
			want: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
				ProductLink: "https://example.com/kettle",
			},
		},
		{
			name:  "new image url is carried",
			patch: dto.UpdateGiftRequest{ImageURL: ptr(" https://cdn.example.com/new.png ")},
			want: dto.CreateGiftRequest{
				Name:        "Kettle",
				Category:    "Kitchen",
				Description: "Electric kettle",
				ProductLink: "https://example.com/kettle",
				ImageURL:    "https://cdn.example.com/new.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Merge(existing))
		})
	}
}

func TestCreateGiftRequest_ToUpdateFields(t *testing.T) {
	fields := dto.CreateGiftRequest{
		Name:        "Kettle",
		Category:    "Kitchen",
		Description: "Electric kettle",
	}.ToUpdateFields("")

	assert.Equal(t, "Kettle", fields[model.FieldName])
	assert.Nil(t, fields[model.FieldProductLink])
	assert.Nil(t, fields[model.FieldImageURL])
	assert.Contains(t, fields, model.FieldModifiedAt)
	assert.NotContains(t, fields, model.FieldStatus)
	assert.NotContains(t, fields, model.FieldReservedBy)
	assert.NotContains(t, fields, model.FieldReservedAt)
}

func TestGiftResponse_FromModel(t *testing.T) {
	reservedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	gift := model.Gift{
		ID:         3,
		Name:       "Kettle",
		Status:     model.StatusReserved,
		ReservedBy: ptr("Ana"),
		ReservedAt: &reservedAt,
		CreatedAt:  reservedAt.Add(-time.Hour),
	}

	var res dto.GiftResponse
	res.FromModel(gift)

	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "Ana", *res.ReservedBy)
	require.NotNil(t, res.ReservedAt)
	assert.True(t, reservedAt.Equal(*res.ReservedAt))
	require.NotNil(t, res.CreatedAt)

	res.FromModel(model.Gift{ID: 4, Status: model.StatusAvailable})
	assert.Nil(t, res.CreatedAt, "missing created_at renders as null")
	assert.Nil(t, res.ReservedAt)

	list := dto.FromModels([]model.Gift{gift, {ID: 9}})
	require.Len(t, list, 2)
	assert.Equal(t, int64(9), list[1].ID)
}
