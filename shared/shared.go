package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"giftlist/shared/cache"
	"giftlist/shared/dto"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// cacheGenerations holds one counter per invalidated prefix.
var cacheGenerations sync.Map

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Eq(table, fieldID, id)},
	}
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...any) string {
	keys := []string{prefix}

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the JSON form of the query values.
func BuildCacheKeyWithQuery(prefix string, queries ...any) string {
	raw, err := json.Marshal(queries)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return prefix
	}

	return BuildCacheKey(prefix, string(raw))
}

func generationOf(prefix string) *atomic.Uint64 {
	counter, _ := cacheGenerations.LoadOrStore(prefix, new(atomic.Uint64))

	return counter.(*atomic.Uint64) //nolint:forcetypeassert
}

// CacheGeneration is the number of invalidations of prefix seen by this process.
// Take it before reading the data a cache entry is built from.
func CacheGeneration(prefix string) uint64 {
	return generationOf(prefix).Load()
}

// SaveCache stores value under key unless prefix was invalidated after generation was taken.
// An invalidation racing the write removes the entry again, so a value read before a commit
// never outlives the invalidation that followed it.
func SaveCache(ctx context.Context, redisCache cache.RedisCache, prefix string, generation uint64, key string, value any, ttl int) {
	if CacheGeneration(prefix) != generation {
		return
	}

	if err := redisCache.Save(ctx, key, value, ttl); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save cache")

		return
	}

	if CacheGeneration(prefix) == generation {
		return
	}

	if err := redisCache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to drop outdated cache")
	}
}

// InvalidateCaches bumps the generation of prefix and clears every key under it.
// Failures are logged, never returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	generationOf(prefix).Add(1)

	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// Truncate cuts value to at most limit runes.
func Truncate(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}

	return string([]rune(value)[:limit])
}
