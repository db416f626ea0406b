package domain

import "fmt"

// InsightType classifies a weekly insight.
type InsightType string

const (
	InsightPattern     InsightType = "pattern"
	InsightAchievement InsightType = "achievement"
	InsightWarning     InsightType = "warning"
)

// Insight is one observation derived from the trailing week of activity.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Value       float64     `json:"value"`
}

// WeeklyActivity aggregates the counts the weekly insights are derived from.
// Denominators of zero mean the corresponding activity was never recorded in
// the window, and its insight is omitted rather than reported as 0%.
type WeeklyActivity struct {
	HabitsCompleted   int
	HabitsLogged      int
	ScheduleCompleted int
	SchedulePlanned   int
	ScoreSum          int
	ScoredDays        int
}

// ComputeInsights derives the week's insights from aggregate activity.
// The result keeps a fixed order: habit consistency, schedule follow-through,
// then average analysis score.
func ComputeInsights(a WeeklyActivity) []Insight {
	insights := make([]Insight, 0, 3)

	if a.HabitsLogged > 0 {
		rate := float64(a.HabitsCompleted) / float64(a.HabitsLogged) * 100
		insights = append(insights, Insight{
			Type:        InsightPattern,
			Title:       "Habit consistency",
			Description: fmt.Sprintf("You completed %d of %d habit logs this week (%.1f%%).", a.HabitsCompleted, a.HabitsLogged, rate),
			Value:       rate,
		})
	}

	if a.SchedulePlanned > 0 {
		rate := float64(a.ScheduleCompleted) / float64(a.SchedulePlanned) * 100
		insights = append(insights, Insight{
			Type:        InsightPattern,
			Title:       "Schedule follow-through",
			Description: fmt.Sprintf("You finished %d of %d scheduled items this week (%.1f%%).", a.ScheduleCompleted, a.SchedulePlanned, rate),
			Value:       rate,
		})
	}

	if a.ScoredDays > 0 {
		avg := float64(a.ScoreSum) / float64(a.ScoredDays)
		typ := InsightWarning
		if avg >= 70 {
			typ = InsightAchievement
		}
		insights = append(insights, Insight{
			Type:        typ,
			Title:       "Weekly average score",
			Description: fmt.Sprintf("Your daily analyses averaged %.1f over %d scored days.", avg, a.ScoredDays),
			Value:       avg,
		})
	}

	return insights
}
