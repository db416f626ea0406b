package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

func TestStreakFromDates(t *testing.T) {
	today := sharedDomain.Day("2025-07-15")

	t.Run("no logs means no streak", func(t *testing.T) {
		streak, err := StreakFromDates(nil, today)
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("stops at the first gap", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-15", "2025-07-14", "2025-07-12"}, today)
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("unbroken run counts every day", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-13", "2025-07-15", "2025-07-14", "2025-07-12"}, today)
		require.NoError(t, err)
		assert.Equal(t, 4, streak)
	})

	t.Run("today unlogged zeroes the streak", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-14", "2025-07-13", "2025-07-12"}, today)
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("duplicate dates count once", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-15", "2025-07-15", "2025-07-14"}, today)
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("future dates are ignored", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-16", "2025-07-15"}, today)
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("only today logged", func(t *testing.T) {
		streak, err := StreakFromDates([]string{"2025-07-15"}, today)
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("malformed date aborts with ParseError", func(t *testing.T) {
		_, err := StreakFromDates([]string{"2025-07-15", "July 14"}, today)

		var parseErr *sharedDomain.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "July 14", parseErr.Value)
	})

	t.Run("non-canonical date aborts with ParseError", func(t *testing.T) {
		_, err := StreakFromDates([]string{"2025-7-5"}, today)

		var parseErr *sharedDomain.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("recomputing over the same input is stable", func(t *testing.T) {
		dates := []string{"2025-07-12", "2025-07-15", "2025-07-14", "2025-07-13"}

		first, err := StreakFromDates(dates, today)
		require.NoError(t, err)
		second, err := StreakFromDates(dates, today)
		require.NoError(t, err)

		assert.Equal(t, 4, first)
		assert.Equal(t, first, second)
		// The input slice must come through untouched.
		assert.Equal(t, []string{"2025-07-12", "2025-07-15", "2025-07-14", "2025-07-13"}, dates)
	})

	t.Run("streak spans month boundaries", func(t *testing.T) {
		streak, err := StreakFromDates(
			[]string{"2025-07-01", "2025-06-30", "2025-06-29"},
			sharedDomain.Day("2025-07-01"),
		)
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})
}

func TestCurrentStreak(t *testing.T) {
	today := sharedDomain.Day("2025-07-15")
	userID := uuid.New()

	mustLog := func(day string, completed bool) *HabitLog {
		d, err := sharedDomain.ParseDay(day)
		require.NoError(t, err)
		l, err := NewHabitLog(userID, "meditation", HabitTypeBuild, completed, d, "")
		require.NoError(t, err)
		return l
	}

	t.Run("skips incomplete logs", func(t *testing.T) {
		logs := []*HabitLog{
			mustLog("2025-07-15", true),
			mustLog("2025-07-14", false),
			mustLog("2025-07-13", true),
		}

		streak, err := CurrentStreak(logs, today)
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("counts a run of completed logs", func(t *testing.T) {
		logs := []*HabitLog{
			mustLog("2025-07-15", true),
			mustLog("2025-07-14", true),
			mustLog("2025-07-13", true),
		}

		streak, err := CurrentStreak(logs, today)
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})
}
