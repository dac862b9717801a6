// Package timezone holds the location gift timestamps are rendered in. It is read from
// APP_TIMEZONE once at start-up and falls back to UTC when the name is empty or unknown.
package timezone

import (
	"giftlist/config"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var appLocation = time.UTC

func init() {
	appLocation = load(config.Get().App.Timezone)
}

func load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to " + defaultTimezone)

		return time.UTC
	}

	return loc
}

// Location is the application timezone.
func Location() *time.Location {
	return appLocation
}

// Now is the current time in the application timezone. Reservation and modification stamps use it.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts t for a response body.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// ToAppTimePtr is ToAppTime for optional columns such as reserved_at. Nil stays nil.
func ToAppTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	converted := ToAppTime(*t)

	return &converted
}
