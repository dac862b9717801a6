package shared_test

import (
	"context"
	"errors"
	"giftlist/shared"
	cacheMocks "giftlist/shared/cache/mocks"
	"giftlist/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name     string
		id       any
		fieldID  string
		table    string
		expected dto.FilterGroup
	}{
		{
			name:    "numeric id with table",
			id:      int64(42),
			fieldID: "id",
			table:   "gifts",
			expected: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "id", Value: int64(42), Operator: dto.FilterOperatorEq, Table: "gifts"},
				},
			},
		},
		{
			name:    "filter with empty table",
			id:      int64(1),
			fieldID: "id",
			table:   "",
			expected: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			assert.Equal(t, tt.expected, result)

			where, args := result.GetWhereClause()
			assert.NotEmpty(t, where)
			assert.Equal(t, tt.id, args[tt.fieldID])
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "gift:get", shared.BuildCacheKey("gift:get"))
	assert.Equal(t, "gift:get:7", shared.BuildCacheKey("gift:get", int64(7)))
	assert.Equal(t, "gift:gets:reserved:Kitchen", shared.BuildCacheKey("gift:gets", "reserved", "Kitchen"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	type query struct {
		Status string `json:"status"`
	}

	first := shared.BuildCacheKeyWithQuery("gift:gets", query{Status: "available"})
	second := shared.BuildCacheKeyWithQuery("gift:gets", query{Status: "available"})
	other := shared.BuildCacheKeyWithQuery("gift:gets", query{Status: "reserved"})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, `gift:gets:[{"status":"available"}]`, first)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "gift:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "gift:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "gift:get*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "gift:get")
}

func TestSaveCache(t *testing.T) {
	ctx := context.Background()

	t.Run("writes under the current generation", func(t *testing.T) {
		mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		generation := shared.CacheGeneration("wish:")

		mockCache.EXPECT().Save(gomock.Any(), "wish:gets", []int{1}, 60).Return(nil)

		shared.SaveCache(ctx, mockCache, "wish:", generation, "wish:gets", []int{1}, 60)
	})

	t.Run("skips a value read before an invalidation", func(t *testing.T) {
		mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		generation := shared.CacheGeneration("wish:")

		mockCache.EXPECT().Clear(gomock.Any(), "wish:*").Return(nil)
		shared.InvalidateCaches(ctx, mockCache, "wish:")

		shared.SaveCache(ctx, mockCache, "wish:", generation, "wish:gets", []int{1}, 60)
	})

	t.Run("drops a value when an invalidation lands during the write", func(t *testing.T) {
		mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
		generation := shared.CacheGeneration("wish:")

		gomock.InOrder(
			mockCache.EXPECT().
				Save(gomock.Any(), "wish:gets", []int{1}, 60).
				DoAndReturn(func(ctx context.Context, _ string, _ any, _ int) error {
					shared.InvalidateCaches(ctx, mockCache, "wish:")

					return nil
				}),
			mockCache.EXPECT().Clear(gomock.Any(), "wish:*").Return(nil),
			mockCache.EXPECT().Delete(gomock.Any(), "wish:gets").Return(nil),
		)

		shared.SaveCache(ctx, mockCache, "wish:", generation, "wish:gets", []int{1}, 60)

		assert.NotEqual(t, generation, shared.CacheGeneration("wish:"))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{name: "shorter than limit", value: "Ana", limit: 100, want: "Ana"},
		{name: "exactly the limit", value: "Ana", limit: 3, want: "Ana"},
		{name: "cut to limit", value: "Ana Silva", limit: 3, want: "Ana"},
		{name: "multibyte runes are not split", value: "João Ávila", limit: 4, want: "João"},
		{name: "non positive limit keeps value", value: "Ana", limit: 0, want: "Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.Truncate(tt.value, tt.limit))
		})
	}
}
