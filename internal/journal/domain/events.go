package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

const aggregateType = "DailyLog"

// DailyLogRecorded is emitted whenever a daily log is created or overwritten.
type DailyLogRecorded struct {
	sharedDomain.BaseEvent
	LogID  uuid.UUID `json:"log_id"`
	UserID uuid.UUID `json:"user_id"`
	Day    string    `json:"day"`
}

// NewDailyLogRecorded creates a DailyLogRecorded event.
func NewDailyLogRecorded(l *DailyLog) *DailyLogRecorded {
	return &DailyLogRecorded{
		BaseEvent: sharedDomain.NewBaseEvent(l.ID(), aggregateType, "journal.daily_log.recorded"),
		LogID:     l.ID(),
		UserID:    l.UserID(),
		Day:       string(l.Day()),
	}
}
