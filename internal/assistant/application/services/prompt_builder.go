package services

import (
	"fmt"
	"strings"
)

// System messages for the structured-output prompts.
const (
	AnalysisSystemMessage = "You are a life coach analyzing daily performance. Always respond with valid JSON only."
	ScheduleSystemMessage = "You are a life coach planning a daily schedule. Always respond with valid JSON only."
)

var modeInstructions = map[string]string{
	"strict":   "You are a strict, no-nonsense life coach. Be direct, firm, and push the user hard. Don't accept excuses. Hold them accountable.",
	"moderate": "You are a balanced life coach. Be supportive but also challenge the user. Provide encouragement while maintaining accountability.",
	"casual":   "You are a friendly, supportive life coach. Be warm, understanding, and gentle. Focus on positive reinforcement and gradual improvement.",
}

// ModeInstruction returns the coaching-tone instruction for an assistant
// mode, defaulting to moderate for unknown modes.
func ModeInstruction(mode string) string {
	if instruction, ok := modeInstructions[mode]; ok {
		return instruction
	}
	return modeInstructions["moderate"]
}

// ProfileContext is the slice of the user's profile the prompts need.
type ProfileContext struct {
	Name          string
	Age           int
	CurrentRole   string
	GoalRole      string
	WakeTime      string
	SleepTime     string
	WorkStart     string
	WorkEnd       string
	Mode          string
	HabitsToBuild []string
	HabitsToQuit  []string
	Goals         []string
}

// TodayProgress summarizes the user's day so far for the chat prompt.
type TodayProgress struct {
	HabitsCompleted int
	HabitsLogged    int
	TasksCompleted  int
	TasksTotal      int
	Mood            *int
	Energy          *int
}

// ChatTurn is one prior message in the conversation.
type ChatTurn struct {
	Role    string
	Content string
}

// HabitStatus is one habit log line for the analysis prompt.
type HabitStatus struct {
	Name      string
	Completed bool
}

// TaskStatus is one task line for the analysis prompt.
type TaskStatus struct {
	Title     string
	Completed bool
}

// ReflectionContext is the daily log slice the analysis prompt needs.
// Nil ratings were not logged.
type ReflectionContext struct {
	Mood         *int
	Energy       *int
	Productivity *int
	Notes        string
}

// BuildChatSystemPrompt assembles the coaching system prompt from the
// user's profile and today's progress.
func BuildChatSystemPrompt(p ProfileContext, today TodayProgress) string {
	var b strings.Builder

	b.WriteString(ModeInstruction(p.Mode))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "You are helping %s, age %d.\n", p.Name, p.Age)
	fmt.Fprintf(&b, "Current role: %s\n", p.CurrentRole)
	fmt.Fprintf(&b, "Goal: Transition to %s\n\n", p.GoalRole)

	b.WriteString("Daily Schedule:\n")
	fmt.Fprintf(&b, "- Wake up: %s\n", p.WakeTime)
	fmt.Fprintf(&b, "- Work: %s - %s\n", p.WorkStart, p.WorkEnd)
	fmt.Fprintf(&b, "- Sleep: %s\n\n", p.SleepTime)

	fmt.Fprintf(&b, "Habits to Build: %s\n", joinOrNoneSet(p.HabitsToBuild))
	fmt.Fprintf(&b, "Habits to Quit: %s\n", joinOrNoneSet(p.HabitsToQuit))
	fmt.Fprintf(&b, "Goals: %s\n\n", joinOrNoneSet(p.Goals))

	b.WriteString("Today's Progress:\n")
	fmt.Fprintf(&b, "- Habits completed: %d / %d\n", today.HabitsCompleted, today.HabitsLogged)
	fmt.Fprintf(&b, "- Tasks completed: %d / %d\n", today.TasksCompleted, today.TasksTotal)
	fmt.Fprintf(&b, "- Mood: %s\n", ratingOrNotLogged(today.Mood))
	fmt.Fprintf(&b, "- Energy: %s\n\n", ratingOrNotLogged(today.Energy))

	b.WriteString("Provide actionable advice, be specific, and reference their goals and schedule.\n")
	b.WriteString("Keep responses concise (under 200 words) unless they ask for detailed information.")

	return b.String()
}

// BuildChatMessage folds recent history into the outgoing user message so
// the model sees the conversation so far. With no history it is the raw
// message.
func BuildChatMessage(history []ChatTurn, message string) string {
	if len(history) == 0 {
		return message
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range history {
		role := "Assistant"
		if turn.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
	}
	fmt.Fprintf(&b, "\n\nUser's new message: %s", message)
	return b.String()
}

// BuildAnalysisPrompt assembles the end-of-day review prompt. The model is
// instructed to answer in a fixed JSON shape.
func BuildAnalysisPrompt(p ProfileContext, habits []HabitStatus, tasks []TaskStatus, reflection *ReflectionContext) string {
	var b strings.Builder

	b.WriteString("Analyze this person's day and provide a comprehensive daily review.\n\n")
	fmt.Fprintf(&b, "Person: %s, %d years old\n", p.Name, p.Age)
	fmt.Fprintf(&b, "Goal: Transition from %s to %s\n", p.CurrentRole, p.GoalRole)
	fmt.Fprintf(&b, "Assistant Mode: %s\n\n", p.Mode)

	fmt.Fprintf(&b, "Habits to Build: %s\n", strings.Join(p.HabitsToBuild, ", "))
	fmt.Fprintf(&b, "Habits to Quit: %s\n\n", strings.Join(p.HabitsToQuit, ", "))

	b.WriteString("Today's Habits:\n")
	b.WriteString(habitsSummary(habits))
	b.WriteString("\n\nToday's Tasks:\n")
	b.WriteString(tasksSummary(tasks))
	b.WriteString("\n\nDaily Log:\n")

	var mood, energy, productivity *int
	notes := "None"
	if reflection != nil {
		mood, energy, productivity = reflection.Mood, reflection.Energy, reflection.Productivity
		if reflection.Notes != "" {
			notes = reflection.Notes
		}
	}
	fmt.Fprintf(&b, "- Mood: %s/5\n", ratingOrNotLogged(mood))
	fmt.Fprintf(&b, "- Energy: %s/5\n", ratingOrNotLogged(energy))
	fmt.Fprintf(&b, "- Productivity: %s/5\n", ratingOrNotLogged(productivity))
	fmt.Fprintf(&b, "- Notes: %s\n\n", notes)

	b.WriteString(`Provide your analysis in this exact JSON format:
{
    "summary": "2-3 sentence overview of the day",
    "achievements": ["achievement 1", "achievement 2"],
    "improvements": ["area to improve 1", "area to improve 2"],
    "recommendations": ["specific actionable recommendation 1", "specific actionable recommendation 2"],
    "overall_score": 75
}

`)
	fmt.Fprintf(&b, "Be %s in your tone.", toneForMode(p.Mode))

	return b.String()
}

// BuildSchedulePrompt asks the model for a full day plan as a JSON array of
// time-blocked items.
func BuildSchedulePrompt(p ProfileContext, day string, tasks []TaskStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan %s's day for %s as a time-blocked schedule.\n\n", p.Name, day)
	fmt.Fprintf(&b, "Goal: Transition from %s to %s\n\n", p.CurrentRole, p.GoalRole)

	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- Awake from %s to %s\n", p.WakeTime, p.SleepTime)
	fmt.Fprintf(&b, "- Working %s - %s\n\n", p.WorkStart, p.WorkEnd)

	fmt.Fprintf(&b, "Habits to Build: %s\n", joinOrNoneSet(p.HabitsToBuild))
	fmt.Fprintf(&b, "Goals: %s\n\n", joinOrNoneSet(p.Goals))

	b.WriteString("Tasks already planned for the day:\n")
	b.WriteString(tasksSummary(tasks))
	b.WriteString("\n\n")

	b.WriteString(`Respond with a JSON array in this exact format:
[
    {
        "title": "Morning routine",
        "description": "what to do and why",
        "start_time": "07:00",
        "duration_minutes": 30,
        "category": "health"
    }
]

`)
	b.WriteString("Use 24-hour HH:MM start times within the awake window. ")
	b.WriteString(`Each category must be one of "work", "health", "learning", "personal" or "rest".`)

	return b.String()
}

func habitsSummary(habits []HabitStatus) string {
	if len(habits) == 0 {
		return "No habits logged"
	}
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		status := "Missed"
		if h.Completed {
			status = "Completed"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Name, status))
	}
	return strings.Join(lines, "\n")
}

func tasksSummary(tasks []TaskStatus) string {
	if len(tasks) == 0 {
		return "No tasks logged"
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		status := "Pending"
		if t.Completed {
			status = "Completed"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", t.Title, status))
	}
	return strings.Join(lines, "\n")
}

func toneForMode(mode string) string {
	switch mode {
	case "strict":
		return "strict and direct"
	case "casual":
		return "encouraging and supportive"
	default:
		return "balanced"
	}
}

func joinOrNoneSet(items []string) string {
	if len(items) == 0 {
		return "None set"
	}
	return strings.Join(items, ", ")
}

func ratingOrNotLogged(v *int) string {
	if v == nil {
		return "Not logged"
	}
	return fmt.Sprintf("%d", *v)
}
