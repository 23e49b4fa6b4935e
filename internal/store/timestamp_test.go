package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestToTimeStoreTimestamp verifies that a value the client already decoded
// into a time is passed through unchanged.
func TestToTimeStoreTimestamp(t *testing.T) {
	moment := time.Date(2026, time.March, 2, 15, 4, 5, 0, time.UTC)

	result, ok := toTime(moment)
	assert.True(t, ok)
	assert.Equal(t, moment, result)

	result, ok = toTime(&moment)
	assert.True(t, ok)
	assert.Equal(t, moment, result)
}

// TestToTimeString verifies the fallback to RFC 3339 strings.
func TestToTimeString(t *testing.T) {
	result, ok := toTime("1969-03-02T00:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(1969, time.March, 2, 0, 0, 0, 0, time.UTC), result)
}

// TestToTimeUnixMillis verifies the fallback to numeric unix milliseconds,
// both as int64 (native store integers) and float64 (JSON tooling).
func TestToTimeUnixMillis(t *testing.T) {
	moment := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	millis := moment.UnixMilli()

	result, ok := toTime(millis)
	assert.True(t, ok)
	assert.Equal(t, moment.UTC(), result.UTC())

	result, ok = toTime(float64(millis))
	assert.True(t, ok)
	assert.Equal(t, moment.UTC(), result.UTC())
}

// TestToTimeUnrecognized verifies that values outside the fallback order
// yield an explicit false instead of an invented date.
func TestToTimeUnrecognized(t *testing.T) {
	invalidValues := []interface{}{
		nil,
		true,
		"not a date",
		[]string{"2026-01-01"},
		(*time.Time)(nil),
	}
	for _, raw := range invalidValues {
		result, ok := toTime(raw)
		assert.False(t, ok)
		assert.True(t, result.IsZero())
	}
}
