package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		payload, err := ParseAnalysisResponse(`{
			"summary": "A solid day.",
			"achievements": ["finished the report"],
			"improvements": ["start earlier"],
			"recommendations": ["block mornings"],
			"overall_score": 82
		}`)

		require.NoError(t, err)
		assert.Equal(t, "A solid day.", payload.Summary)
		assert.Equal(t, []string{"finished the report"}, payload.Achievements)
		assert.Equal(t, 82, payload.OverallScore)
	})

	t.Run("fenced JSON with language tag", func(t *testing.T) {
		payload, err := ParseAnalysisResponse("```json\n{\"summary\": \"ok\", \"overall_score\": 61}\n```")

		require.NoError(t, err)
		assert.Equal(t, "ok", payload.Summary)
		assert.Equal(t, 61, payload.OverallScore)
	})

	t.Run("fenced JSON without language tag", func(t *testing.T) {
		payload, err := ParseAnalysisResponse("```\n{\"summary\": \"ok\", \"overall_score\": 40}\n```")

		require.NoError(t, err)
		assert.Equal(t, 40, payload.OverallScore)
	})

	t.Run("missing lists decode as empty", func(t *testing.T) {
		payload, err := ParseAnalysisResponse(`{"summary": "short", "overall_score": 50}`)

		require.NoError(t, err)
		assert.Empty(t, payload.Achievements)
		assert.Empty(t, payload.Improvements)
		assert.Empty(t, payload.Recommendations)
		assert.NotNil(t, payload.Achievements)
	})

	t.Run("prose is an error, not a guess", func(t *testing.T) {
		_, err := ParseAnalysisResponse("You had a great day! Keep it up.")

		assert.Error(t, err)
	})
}

func TestFallbackAnalysis(t *testing.T) {
	t.Run("prose becomes the summary", func(t *testing.T) {
		payload := FallbackAnalysis("You had a great day!")

		assert.Equal(t, "You had a great day!", payload.Summary)
		assert.Equal(t, 50, payload.OverallScore)
		assert.Empty(t, payload.Achievements)
		assert.NotNil(t, payload.Recommendations)
	})

	t.Run("long prose is truncated to 200 runes", func(t *testing.T) {
		payload := FallbackAnalysis(strings.Repeat("é", 300))

		assert.Equal(t, 200, len([]rune(payload.Summary)))
	})
}

func TestParseScheduleResponse(t *testing.T) {
	t.Run("array of items", func(t *testing.T) {
		items, err := ParseScheduleResponse("```json\n" + `[
			{"title": "Deep work", "description": "focus block", "start_time": "09:00", "duration_minutes": 90, "category": "work"},
			{"title": "Run", "start_time": "18:00", "duration_minutes": 30, "category": "health"}
		]` + "\n```")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Deep work", items[0].Title)
		assert.Equal(t, "09:00", items[0].StartTime)
		assert.Equal(t, 30, items[1].DurationMinutes)
	})

	t.Run("non-JSON is an error", func(t *testing.T) {
		_, err := ParseScheduleResponse("Here is your plan: wake up, work, sleep.")

		assert.Error(t, err)
	})
}
