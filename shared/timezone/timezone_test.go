package timezone_test

import (
	"giftlist/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow_UsesAppLocation(t *testing.T) {
	now := timezone.Now()

	require.NotNil(t, timezone.Location())
	assert.Equal(t, timezone.Location(), now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestToAppTime_KeepsInstant(t *testing.T) {
	reservedAt := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)

	converted := timezone.ToAppTime(reservedAt)

	assert.True(t, converted.Equal(reservedAt))
	assert.Equal(t, timezone.Location(), converted.Location())
}

func TestToAppTimePtr(t *testing.T) {
	assert.Nil(t, timezone.ToAppTimePtr(nil))

	reservedAt := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)

	converted := timezone.ToAppTimePtr(&reservedAt)
	require.NotNil(t, converted)
	assert.True(t, converted.Equal(reservedAt))
}
