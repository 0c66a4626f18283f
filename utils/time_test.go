package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUTCWeekdayIndex(t *testing.T) {
	// 2026-08-31 is a Monday
	monday := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	for offset, expected := range []int{0, 1, 2, 3, 4, 5, 6} {
		day := monday.AddDate(0, 0, offset)
		assert.Equal(t, expected, UTCWeekdayIndex(day), "%s", day.Weekday())
	}
}

func TestUTCWeekdayIndexNormalizesZone(t *testing.T) {
	// 23:00 Monday in UTC-5 is 04:00 Tuesday in UTC
	zone := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 8, 31, 23, 0, 0, 0, zone)

	assert.Equal(t, 1, UTCWeekdayIndex(local))
}

func TestUTCNow(t *testing.T) {
	now := UTCNow()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}

func TestIsExpired(t *testing.T) {
	assert.True(t, IsExpired(UTCNow().Add(-time.Minute)))
	assert.False(t, IsExpired(UTCNow().Add(time.Minute)))
}
