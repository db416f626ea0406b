package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

var (
	ErrHabitLogEmptyName   = errors.New("habit name cannot be empty")
	ErrHabitLogInvalidType = errors.New("invalid habit type")
)

// HabitType distinguishes habits the user is building from ones they are quitting.
type HabitType string

const (
	HabitTypeBuild HabitType = "build"
	HabitTypeQuit  HabitType = "quit"
)

// IsValid checks if the habit type is valid.
func (t HabitType) IsValid() bool {
	return t == HabitTypeBuild || t == HabitTypeQuit
}

// HabitLog records whether a named habit was completed on a given day.
// There is at most one log per (user, habit, day).
type HabitLog struct {
	sharedDomain.BaseAggregateRoot
	userID    uuid.UUID
	habitName string
	habitType HabitType
	completed bool
	day       sharedDomain.Day
	notes     string
}

// NewHabitLog creates a new habit log for a day.
func NewHabitLog(userID uuid.UUID, habitName string, habitType HabitType, completed bool, day sharedDomain.Day, notes string) (*HabitLog, error) {
	habitName = strings.TrimSpace(habitName)
	if habitName == "" {
		return nil, ErrHabitLogEmptyName
	}
	if !habitType.IsValid() {
		return nil, ErrHabitLogInvalidType
	}

	l := &HabitLog{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		habitName:         habitName,
		habitType:         habitType,
		completed:         completed,
		day:               day,
		notes:             notes,
	}
	l.AddDomainEvent(NewHabitLogRecorded(l))
	return l, nil
}

// Record overwrites the log's completion state and notes for its day.
func (l *HabitLog) Record(completed bool, notes string) {
	l.completed = completed
	l.notes = notes
	l.Touch()
	l.AddDomainEvent(NewHabitLogRecorded(l))
}

// Getters
func (l *HabitLog) UserID() uuid.UUID     { return l.userID }
func (l *HabitLog) HabitName() string     { return l.habitName }
func (l *HabitLog) HabitType() HabitType  { return l.habitType }
func (l *HabitLog) Completed() bool       { return l.completed }
func (l *HabitLog) Day() sharedDomain.Day { return l.day }
func (l *HabitLog) Notes() string         { return l.notes }

// RehydrateHabitLog recreates a habit log from persisted state without events.
func RehydrateHabitLog(
	id, userID uuid.UUID,
	habitName string,
	habitType HabitType,
	completed bool,
	day sharedDomain.Day,
	notes string,
	createdAt, updatedAt time.Time,
) *HabitLog {
	return &HabitLog{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		habitName:         habitName,
		habitType:         habitType,
		completed:         completed,
		day:               day,
		notes:             notes,
	}
}
