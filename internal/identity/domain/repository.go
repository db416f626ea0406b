package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when no profile exists for the given ID.
var ErrProfileNotFound = errors.New("profile not found")

// Repository defines the interface for profile persistence.
type Repository interface {
	// Save persists a profile (create or update).
	Save(ctx context.Context, profile *Profile) error

	// FindByID finds a profile by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// Delete removes a profile.
	Delete(ctx context.Context, id uuid.UUID) error
}
