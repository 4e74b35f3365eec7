package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStringUsesLocalZone(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 06:00 UTC on Jan 2 is still Jan 1 on the US west coast. Naive
	// UTC bucketing would put this order on the wrong day.
	ts := time.Date(2026, 1, 2, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-01", DayString(ts, la))
	assert.Equal(t, "2026-01-02", DayString(ts, time.UTC))
}

func TestParseDayRoundTrip(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	day, err := ParseDay("2026-03-15", la)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", DayString(day, la))

	_, err = ParseDay("15/03/2026", la)
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	ts := time.Date(2026, 1, 2, 6, 0, 0, 0, time.UTC) // Jan 1 local
	start, end := DayBounds(ts, la)

	assert.Equal(t, "2026-01-01", start.Format(Layout))
	assert.True(t, start.Before(ts) && ts.Before(end))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
