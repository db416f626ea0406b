package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	t.Run("creates a valid task", func(t *testing.T) {
		task, err := NewTask(userID, "revise DSA", "graphs module", "19:00", day, PriorityHigh)

		require.NoError(t, err)
		assert.Equal(t, "revise DSA", task.Title())
		assert.Equal(t, PriorityHigh, task.Priority())
		assert.False(t, task.Completed())
		assert.Len(t, task.DomainEvents(), 1)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewTask(userID, "   ", "", "", day, PriorityLow)
		assert.ErrorIs(t, err, ErrTaskEmptyTitle)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := NewTask(userID, "revise DSA", "", "", day, Priority("urgent"))
		assert.ErrorIs(t, err, ErrTaskInvalidPriority)
	})
}

func TestTask_Complete(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	task, err := NewTask(userID, "revise DSA", "", "", day, PriorityMedium)
	require.NoError(t, err)
	task.ClearDomainEvents()

	require.NoError(t, task.Complete())
	assert.True(t, task.Completed())
	assert.Len(t, task.DomainEvents(), 1)

	assert.ErrorIs(t, task.Complete(), ErrTaskAlreadyDone)
}

func TestNewScheduleItem(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	t.Run("creates a valid item", func(t *testing.T) {
		item, err := NewScheduleItem(userID, day, "07:00", "Morning run", "5k easy pace", 45, CategoryHealth)

		require.NoError(t, err)
		assert.Equal(t, "Morning run", item.Title())
		assert.Equal(t, 45, item.DurationMinutes())
		assert.Equal(t, CategoryHealth, item.Category())
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := NewScheduleItem(userID, day, "07:00", "Morning run", "", 0, CategoryHealth)
		assert.ErrorIs(t, err, ErrScheduleInvalidDuration)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewScheduleItem(userID, day, "07:00", "Morning run", "", 45, Category("fitness"))
		assert.ErrorIs(t, err, ErrScheduleInvalidCategory)
	})

	t.Run("completing twice is a no-op", func(t *testing.T) {
		item, err := NewScheduleItem(userID, day, "07:00", "Morning run", "", 45, CategoryHealth)
		require.NoError(t, err)

		item.MarkCompleted()
		first := item.UpdatedAt()
		item.MarkCompleted()

		assert.True(t, item.Completed())
		assert.Equal(t, first, item.UpdatedAt())
	})
}
