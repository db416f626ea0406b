package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile() ProfileContext {
	return ProfileContext{
		Name:          "Hitesh",
		Age:           28,
		CurrentRole:   "Support Engineer",
		GoalRole:      "Backend Developer",
		WakeTime:      "06:30",
		SleepTime:     "23:00",
		WorkStart:     "09:00",
		WorkEnd:       "18:00",
		Mode:          "strict",
		HabitsToBuild: []string{"Morning run", "Reading"},
		HabitsToQuit:  []string{"Doomscrolling"},
		Goals:         []string{"Ship a side project"},
	}
}

func TestModeInstruction(t *testing.T) {
	assert.Contains(t, ModeInstruction("strict"), "no-nonsense")
	assert.Contains(t, ModeInstruction("casual"), "warm, understanding")

	t.Run("unknown mode falls back to moderate", func(t *testing.T) {
		assert.Equal(t, ModeInstruction("moderate"), ModeInstruction("bossy"))
	})
}

func TestBuildChatSystemPrompt(t *testing.T) {
	mood := 4
	prompt := BuildChatSystemPrompt(testProfile(), TodayProgress{
		HabitsCompleted: 2,
		HabitsLogged:    3,
		TasksCompleted:  1,
		TasksTotal:      4,
		Mood:            &mood,
	})

	assert.Contains(t, prompt, "You are helping Hitesh, age 28.")
	assert.Contains(t, prompt, "Goal: Transition to Backend Developer")
	assert.Contains(t, prompt, "- Work: 09:00 - 18:00")
	assert.Contains(t, prompt, "Habits to Build: Morning run, Reading")
	assert.Contains(t, prompt, "- Habits completed: 2 / 3")
	assert.Contains(t, prompt, "- Mood: 4")
	assert.Contains(t, prompt, "- Energy: Not logged")
	assert.Contains(t, prompt, "Keep responses concise (under 200 words)")

	t.Run("empty lists render as None set", func(t *testing.T) {
		p := testProfile()
		p.Goals = nil
		prompt := BuildChatSystemPrompt(p, TodayProgress{})

		assert.Contains(t, prompt, "Goals: None set")
	})
}

func TestBuildChatMessage(t *testing.T) {
	t.Run("no history passes the message through", func(t *testing.T) {
		assert.Equal(t, "hello", BuildChatMessage(nil, "hello"))
	})

	t.Run("history is prepended", func(t *testing.T) {
		msg := BuildChatMessage([]ChatTurn{
			{Role: "user", Content: "I skipped my run."},
			{Role: "assistant", Content: "Get back on it tomorrow."},
		}, "I ran today!")

		assert.Contains(t, msg, "Previous conversation:\nUser: I skipped my run.\nAssistant: Get back on it tomorrow.\n")
		assert.Contains(t, msg, "User's new message: I ran today!")
	})
}

func TestBuildAnalysisPrompt(t *testing.T) {
	mood, productivity := 3, 4
	prompt := BuildAnalysisPrompt(testProfile(),
		[]HabitStatus{{Name: "Morning run", Completed: true}, {Name: "Reading", Completed: false}},
		[]TaskStatus{{Title: "Fix login bug", Completed: true}},
		&ReflectionContext{Mood: &mood, Productivity: &productivity, Notes: "Tired but focused."},
	)

	assert.Contains(t, prompt, "Person: Hitesh, 28 years old")
	assert.Contains(t, prompt, "Goal: Transition from Support Engineer to Backend Developer")
	assert.Contains(t, prompt, "- Morning run: Completed")
	assert.Contains(t, prompt, "- Reading: Missed")
	assert.Contains(t, prompt, "- Fix login bug: Completed")
	assert.Contains(t, prompt, "- Mood: 3/5")
	assert.Contains(t, prompt, "- Energy: Not logged/5")
	assert.Contains(t, prompt, "- Notes: Tired but focused.")
	assert.Contains(t, prompt, `"overall_score": 75`)
	assert.Contains(t, prompt, "Be strict and direct in your tone.")

	t.Run("no reflection", func(t *testing.T) {
		prompt := BuildAnalysisPrompt(testProfile(), nil, nil, nil)

		assert.Contains(t, prompt, "No habits logged")
		assert.Contains(t, prompt, "No tasks logged")
		assert.Contains(t, prompt, "- Notes: None")
	})

	t.Run("tone follows mode", func(t *testing.T) {
		p := testProfile()
		p.Mode = "casual"

		assert.Contains(t, BuildAnalysisPrompt(p, nil, nil, nil), "Be encouraging and supportive in your tone.")
	})
}

func TestBuildSchedulePrompt(t *testing.T) {
	prompt := BuildSchedulePrompt(testProfile(), "2025-07-15", []TaskStatus{{Title: "Review PR"}})

	assert.Contains(t, prompt, "Plan Hitesh's day for 2025-07-15")
	assert.Contains(t, prompt, "- Awake from 06:30 to 23:00")
	assert.Contains(t, prompt, "- Review PR: Pending")
	assert.Contains(t, prompt, `"start_time": "07:00"`)
	assert.Contains(t, prompt, `"work", "health", "learning", "personal" or "rest"`)
}
