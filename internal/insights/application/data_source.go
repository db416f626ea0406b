package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/insights/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// DayActivity is one day's raw activity counts.
type DayActivity struct {
	Day             string `json:"date"`
	HabitsCompleted int    `json:"habits_completed"`
	HabitsLogged    int    `json:"habits_logged"`
	TasksCompleted  int    `json:"tasks_completed"`
	TasksPlanned    int    `json:"tasks_planned"`
	Mood            *int   `json:"mood"`
}

// DataSource aggregates activity counts across the habit, task, journal, and
// analysis tables. Implementations exist per database driver.
type DataSource interface {
	// WeeklyActivity sums activity on or after the given day.
	WeeklyActivity(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (domain.WeeklyActivity, error)

	// DailyActivity returns per-day counts for the window [from, to], oldest first.
	// Days with no activity at all still appear with zero counts.
	DailyActivity(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Day) ([]DayActivity, error)
}
