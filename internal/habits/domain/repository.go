package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// Repository defines the interface for habit log persistence.
type Repository interface {
	// Save persists a habit log (create or update).
	Save(ctx context.Context, log *HabitLog) error

	// FindByUserHabitDay finds the log for a habit on a day, or nil.
	FindByUserHabitDay(ctx context.Context, userID uuid.UUID, habitName string, day sharedDomain.Day) (*HabitLog, error)

	// FindByUserAndDay finds all logs for a user on a day.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*HabitLog, error)

	// FindCompletedByHabit finds all completed logs for a habit, newest day first.
	FindCompletedByHabit(ctx context.Context, userID uuid.UUID, habitName string) ([]*HabitLog, error)

	// CountCompletedSince counts completed logs for a user on or after the given day.
	CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error)

	// CountSince counts all logs for a user on or after the given day.
	CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error)
}
