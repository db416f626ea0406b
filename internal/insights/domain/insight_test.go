package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInsights(t *testing.T) {
	t.Run("no activity yields no insights", func(t *testing.T) {
		assert.Empty(t, ComputeInsights(WeeklyActivity{}))
	})

	t.Run("habit rate as a percentage", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{HabitsCompleted: 7, HabitsLogged: 10})

		require.Len(t, insights, 1)
		assert.Equal(t, InsightPattern, insights[0].Type)
		assert.Equal(t, "Habit consistency", insights[0].Title)
		assert.InDelta(t, 70.0, insights[0].Value, 0.001)
	})

	t.Run("perfect schedule follow-through", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{ScheduleCompleted: 5, SchedulePlanned: 5})

		require.Len(t, insights, 1)
		assert.Equal(t, "Schedule follow-through", insights[0].Title)
		assert.InDelta(t, 100.0, insights[0].Value, 0.001)
	})

	t.Run("high average score is an achievement", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{ScoreSum: 82 * 3, ScoredDays: 3})

		require.Len(t, insights, 1)
		assert.Equal(t, InsightAchievement, insights[0].Type)
		assert.Equal(t, "Weekly average score", insights[0].Title)
		assert.InDelta(t, 82.0, insights[0].Value, 0.001)
	})

	t.Run("low average score is a warning", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{ScoreSum: 55, ScoredDays: 1})

		require.Len(t, insights, 1)
		assert.Equal(t, InsightWarning, insights[0].Type)
		assert.InDelta(t, 55.0, insights[0].Value, 0.001)
	})

	t.Run("threshold score of exactly 70 is an achievement", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{ScoreSum: 140, ScoredDays: 2})

		require.Len(t, insights, 1)
		assert.Equal(t, InsightAchievement, insights[0].Type)
	})

	t.Run("habits and schedule without analyses yield exactly two patterns", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{
			HabitsCompleted: 7, HabitsLogged: 10,
			ScheduleCompleted: 5, SchedulePlanned: 5,
		})

		require.Len(t, insights, 2)
		assert.Equal(t, InsightPattern, insights[0].Type)
		assert.Equal(t, "Habit consistency", insights[0].Title)
		assert.InDelta(t, 70.0, insights[0].Value, 0.001)
		assert.Equal(t, InsightPattern, insights[1].Type)
		assert.Equal(t, "Schedule follow-through", insights[1].Title)
		assert.InDelta(t, 100.0, insights[1].Value, 0.001)
		for _, in := range insights {
			assert.NotEqual(t, "Weekly average score", in.Title)
		}
	})

	t.Run("full activity keeps a fixed order", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{
			HabitsCompleted: 7, HabitsLogged: 10,
			ScheduleCompleted: 3, SchedulePlanned: 4,
			ScoreSum: 150, ScoredDays: 2,
		})

		require.Len(t, insights, 3)
		assert.Equal(t, "Habit consistency", insights[0].Title)
		assert.Equal(t, "Schedule follow-through", insights[1].Title)
		assert.Equal(t, "Weekly average score", insights[2].Title)
	})

	t.Run("zero denominators omit their insights", func(t *testing.T) {
		insights := ComputeInsights(WeeklyActivity{ScheduleCompleted: 2, SchedulePlanned: 3})

		require.Len(t, insights, 1)
		assert.Equal(t, "Schedule follow-through", insights[0].Title)
	})
}
