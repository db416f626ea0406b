package application

import (
	"context"

	"github.com/google/uuid"
)

// ReadCacheInvalidator drops a user's cached read-side projections after a
// write changes the numbers they are derived from. A nil invalidator leaves
// entries to age out by TTL.
type ReadCacheInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}
