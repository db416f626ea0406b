package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// Repository defines the interface for daily log persistence.
type Repository interface {
	// Save persists a daily log (create or update).
	Save(ctx context.Context, log *DailyLog) error

	// FindByUserAndDay finds the log for a day, or nil.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*DailyLog, error)

	// FindByUserSince finds all logs on or after the given day, newest first.
	FindByUserSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) ([]*DailyLog, error)

	// ListByUser returns the user's most recent logs, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*DailyLog, error)
}
