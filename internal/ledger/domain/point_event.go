package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrZeroAmount = errors.New("point amount cannot be zero")

// Point awards for completed activity.
const (
	PointsHabitCompleted = 10
	PointsTaskCompleted  = 5
	PointsStrongAnalysis = 20
)

// AnalysisScoreThreshold is the overall score at or above which a daily
// analysis earns bonus points.
const AnalysisScoreThreshold = 70

// Reasons recorded against point events.
const (
	ReasonHabitCompleted = "habit_completed"
	ReasonTaskCompleted  = "task_completed"
	ReasonStrongAnalysis = "strong_analysis"
)

// PointEvent is an append-only award of points to a user. Balances are
// derived by summing events, never stored.
type PointEvent struct {
	id         uuid.UUID
	userID     uuid.UUID
	amount     int
	reason     string
	occurredAt time.Time
}

// NewPointEvent creates a point award.
func NewPointEvent(userID uuid.UUID, amount int, reason string) (*PointEvent, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	return &PointEvent{
		id:         uuid.New(),
		userID:     userID,
		amount:     amount,
		reason:     reason,
		occurredAt: time.Now(),
	}, nil
}

// Getters
func (e *PointEvent) ID() uuid.UUID         { return e.id }
func (e *PointEvent) UserID() uuid.UUID     { return e.userID }
func (e *PointEvent) Amount() int           { return e.amount }
func (e *PointEvent) Reason() string        { return e.reason }
func (e *PointEvent) OccurredAt() time.Time { return e.occurredAt }

// RehydratePointEvent recreates a point event from persisted state.
func RehydratePointEvent(id, userID uuid.UUID, amount int, reason string, occurredAt time.Time) *PointEvent {
	return &PointEvent{
		id:         id,
		userID:     userID,
		amount:     amount,
		reason:     reason,
		occurredAt: occurredAt,
	}
}
