package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

func TestNewRating(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lowest valid", 1, false},
		{"highest valid", 5, false},
		{"zero", 0, true},
		{"too high", 6, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, err := NewRating(tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrRatingOutOfRange)
				assert.Nil(t, (*int)(rating))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, (*int)(rating))
			assert.Equal(t, tt.value, *rating)
		})
	}
}

func TestNewDailyLog(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")
	mood, err := NewRating(4)
	require.NoError(t, err)

	log := NewDailyLog(userID, day, DailyLogAttrs{
		Mood:       mood,
		Activities: []string{"gym", "reading"},
		Notes:      "solid day",
	})

	assert.Equal(t, userID, log.UserID())
	assert.Equal(t, day, log.Day())
	assert.Equal(t, 4, *log.Mood())
	assert.Nil(t, (*int)(log.EnergyLevel()))
	assert.Equal(t, []string{"gym", "reading"}, log.Activities())
	assert.Equal(t, "solid day", log.Notes())
	assert.Len(t, log.DomainEvents(), 1)
}

func TestNewDailyLog_NilActivities(t *testing.T) {
	log := NewDailyLog(uuid.New(), sharedDomain.Day("2025-07-15"), DailyLogAttrs{})
	assert.NotNil(t, log.Activities())
	assert.Empty(t, log.Activities())
}

func TestDailyLog_Record(t *testing.T) {
	now := time.Now().UTC()
	mood, err := NewRating(2)
	require.NoError(t, err)

	log := RehydrateDailyLog(
		uuid.New(), uuid.New(),
		sharedDomain.Day("2025-07-15"),
		DailyLogAttrs{Mood: mood, Notes: "rough morning"},
		now, now,
	)
	require.Empty(t, log.DomainEvents())

	energy, err := NewRating(5)
	require.NoError(t, err)
	log.Record(DailyLogAttrs{
		EnergyLevel: energy,
		Notes:       "turned it around",
	})

	// The second write replaces the first entirely.
	assert.Nil(t, (*int)(log.Mood()))
	assert.Equal(t, 5, *log.EnergyLevel())
	assert.Equal(t, "turned it around", log.Notes())
	assert.Len(t, log.DomainEvents(), 1)
}
