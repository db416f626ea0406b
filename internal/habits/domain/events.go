package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

const aggregateType = "HabitLog"

// HabitLogRecorded is emitted whenever a habit log is created or overwritten.
type HabitLogRecorded struct {
	sharedDomain.BaseEvent
	LogID     uuid.UUID `json:"log_id"`
	UserID    uuid.UUID `json:"user_id"`
	HabitName string    `json:"habit_name"`
	HabitType string    `json:"habit_type"`
	Completed bool      `json:"completed"`
	Day       string    `json:"day"`
}

// NewHabitLogRecorded creates a HabitLogRecorded event.
func NewHabitLogRecorded(l *HabitLog) *HabitLogRecorded {
	return &HabitLogRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(l.ID(), aggregateType, "habits.log.recorded"),
		LogID:     l.ID(),
		UserID:    l.UserID(),
		HabitName: l.HabitName(),
		HabitType: string(l.HabitType()),
		Completed: l.Completed(),
		Day:       string(l.Day()),
	}
}
