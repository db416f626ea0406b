package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttrs() ProfileAttrs {
	return ProfileAttrs{
		Name:        "Hitesh",
		Age:         24,
		CurrentRole: "student",
		GoalRole:    "software engineer",
		Schedule: Schedule{
			WakeTime:  "06:30",
			SleepTime: "23:00",
			WorkStart: "09:00",
			WorkEnd:   "18:00",
		},
		Mode:          ModeModerate,
		HabitsToBuild: []string{"meditation", "exercise"},
		HabitsToQuit:  []string{"smoking"},
		Goals:         []string{"crack the interview"},
	}
}

func TestNewProfile(t *testing.T) {
	t.Run("creates a valid profile", func(t *testing.T) {
		p, err := NewProfile(validAttrs())

		require.NoError(t, err)
		assert.Equal(t, "Hitesh", p.Name())
		assert.Equal(t, 24, p.Age())
		assert.Equal(t, ModeModerate, p.Mode())
		assert.True(t, p.OnboardingCompleted())
		assert.Equal(t, []string{"meditation", "exercise", "smoking"}, p.AllHabits())
		assert.Len(t, p.DomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		attrs := validAttrs()
		attrs.Name = "  "

		_, err := NewProfile(attrs)
		assert.ErrorIs(t, err, ErrProfileEmptyName)
	})

	t.Run("rejects non-positive age", func(t *testing.T) {
		attrs := validAttrs()
		attrs.Age = 0

		_, err := NewProfile(attrs)
		assert.ErrorIs(t, err, ErrProfileInvalidAge)
	})

	t.Run("rejects unknown assistant mode", func(t *testing.T) {
		attrs := validAttrs()
		attrs.Mode = AssistantMode("drill-sergeant")

		_, err := NewProfile(attrs)
		assert.ErrorIs(t, err, ErrProfileInvalidMode)
	})

	t.Run("rejects malformed schedule times", func(t *testing.T) {
		attrs := validAttrs()
		attrs.Schedule.WakeTime = "6am"

		_, err := NewProfile(attrs)
		assert.ErrorIs(t, err, ErrProfileInvalidTime)
	})
}

func TestProfile_Update(t *testing.T) {
	t.Run("replaces attributes and emits event", func(t *testing.T) {
		p, err := NewProfile(validAttrs())
		require.NoError(t, err)
		p.ClearDomainEvents()

		attrs := validAttrs()
		attrs.Name = "Hitesh C"
		attrs.Mode = ModeStrict
		attrs.Goals = []string{"ship side project"}

		require.NoError(t, p.Update(attrs))
		assert.Equal(t, "Hitesh C", p.Name())
		assert.Equal(t, ModeStrict, p.Mode())
		assert.Equal(t, []string{"ship side project"}, p.Goals())
		assert.Len(t, p.DomainEvents(), 1)
	})

	t.Run("rejects invalid update and keeps state", func(t *testing.T) {
		p, err := NewProfile(validAttrs())
		require.NoError(t, err)

		attrs := validAttrs()
		attrs.Age = -1

		assert.ErrorIs(t, p.Update(attrs), ErrProfileInvalidAge)
		assert.Equal(t, 24, p.Age())
	})
}

func TestRehydrateProfile(t *testing.T) {
	id := uuid.New()
	created := time.Now().Add(-48 * time.Hour)
	updated := time.Now().Add(-time.Hour)

	p := RehydrateProfile(id, validAttrs(), true, created, updated)

	assert.Equal(t, id, p.ID())
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, updated, p.UpdatedAt())
	assert.True(t, p.OnboardingCompleted())
	assert.Empty(t, p.DomainEvents())
}

func TestAssistantMode_IsValid(t *testing.T) {
	assert.True(t, ModeStrict.IsValid())
	assert.True(t, ModeModerate.IsValid())
	assert.True(t, ModeCasual.IsValid())
	assert.False(t, AssistantMode("").IsValid())
	assert.False(t, AssistantMode("gentle").IsValid())
}
