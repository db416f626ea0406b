package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for the append-only point ledger.
type Repository interface {
	// Append stores a point event. Events are never updated or deleted.
	Append(ctx context.Context, event *PointEvent) error

	// SumByUser returns the user's current point balance.
	SumByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ListRecent returns the user's most recent events, newest first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*PointEvent, error)
}
