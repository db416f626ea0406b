package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// ErrRatingOutOfRange is returned when a 1-5 rating falls outside its scale.
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// Rating is an optional 1-5 self-assessment. Nil means not recorded.
type Rating *int

// NewRating validates a 1-5 value and returns it as an optional rating.
func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return nil, fmt.Errorf("%w: %d", ErrRatingOutOfRange, v)
	}
	return &v, nil
}

// DailyLog captures the user's end-of-day reflection: mood, energy,
// productivity, what they did, and actual wake and sleep times.
// There is at most one log per (user, day).
type DailyLog struct {
	sharedDomain.BaseAggregateRoot
	userID          uuid.UUID
	day             sharedDomain.Day
	mood            Rating
	energyLevel     Rating
	productivity    Rating
	activities      []string
	notes           string
	wakeTimeActual  string
	sleepTimeActual string
}

// DailyLogAttrs carries the mutable attributes of a daily log.
type DailyLogAttrs struct {
	Mood            Rating
	EnergyLevel     Rating
	Productivity    Rating
	Activities      []string
	Notes           string
	WakeTimeActual  string
	SleepTimeActual string
}

// NewDailyLog creates a new daily log for a day.
func NewDailyLog(userID uuid.UUID, day sharedDomain.Day, attrs DailyLogAttrs) *DailyLog {
	l := &DailyLog{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               day,
	}
	l.apply(attrs)
	l.AddDomainEvent(NewDailyLogRecorded(l))
	return l
}

// Record overwrites the log's reflection for its day.
func (l *DailyLog) Record(attrs DailyLogAttrs) {
	l.apply(attrs)
	l.Touch()
	l.AddDomainEvent(NewDailyLogRecorded(l))
}

func (l *DailyLog) apply(attrs DailyLogAttrs) {
	l.mood = attrs.Mood
	l.energyLevel = attrs.EnergyLevel
	l.productivity = attrs.Productivity
	if attrs.Activities == nil {
		l.activities = []string{}
	} else {
		l.activities = attrs.Activities
	}
	l.notes = attrs.Notes
	l.wakeTimeActual = attrs.WakeTimeActual
	l.sleepTimeActual = attrs.SleepTimeActual
}

// Getters
func (l *DailyLog) UserID() uuid.UUID       { return l.userID }
func (l *DailyLog) Day() sharedDomain.Day   { return l.day }
func (l *DailyLog) Mood() Rating            { return l.mood }
func (l *DailyLog) EnergyLevel() Rating     { return l.energyLevel }
func (l *DailyLog) Productivity() Rating    { return l.productivity }
func (l *DailyLog) Activities() []string    { return l.activities }
func (l *DailyLog) Notes() string           { return l.notes }
func (l *DailyLog) WakeTimeActual() string  { return l.wakeTimeActual }
func (l *DailyLog) SleepTimeActual() string { return l.sleepTimeActual }

// RehydrateDailyLog recreates a daily log from persisted state without events.
func RehydrateDailyLog(
	id, userID uuid.UUID,
	day sharedDomain.Day,
	attrs DailyLogAttrs,
	createdAt, updatedAt time.Time,
) *DailyLog {
	l := &DailyLog{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		day:               day,
	}
	l.apply(attrs)
	return l
}
