package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	t.Run("accepts canonical dates", func(t *testing.T) {
		day, err := ParseDay("2025-07-15")
		require.NoError(t, err)
		assert.Equal(t, Day("2025-07-15"), day)
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		for _, value := range []string{"", "2025-7-5", "15-07-2025", "2025-13-01", "yesterday"} {
			_, err := ParseDay(value)
			require.Error(t, err, value)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, value, parseErr.Value)
		}
	})
}

func TestDayArithmetic(t *testing.T) {
	day, err := ParseDay("2025-07-15")
	require.NoError(t, err)

	assert.Equal(t, Day("2025-07-14"), day.AddDays(-1))
	assert.Equal(t, Day("2025-08-01"), day.AddDays(17))
	assert.True(t, day.AddDays(-1).Before(day))
	assert.False(t, day.Before(day))
	assert.True(t, day.Equals(Day("2025-07-15")))
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, 7, 15, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, Day("2025-07-15"), DayOf(ts))
}
