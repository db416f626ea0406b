package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrScheduleItemNotFound = errors.New("schedule item not found")
)

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	// Save persists a task (create or update).
	Save(ctx context.Context, task *Task) error

	// FindByID finds a task by its ID, or nil.
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// FindByUserAndDay finds all tasks for a user on a day.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*Task, error)

	// CountCompletedSince counts completed tasks on or after the given day.
	CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error)

	// CountSince counts all tasks on or after the given day.
	CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScheduleRepository defines the interface for schedule item persistence.
type ScheduleRepository interface {
	// ReplaceDay atomically removes the existing plan for a day and stores
	// the new one. Regenerating never merges with the old plan.
	ReplaceDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day, items []*ScheduleItem) error

	// FindByUserAndDay finds the plan for a day ordered by start time.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*ScheduleItem, error)

	// FindByID finds a schedule item by its ID, or nil.
	FindByID(ctx context.Context, id uuid.UUID) (*ScheduleItem, error)

	// Save persists a single schedule item update.
	Save(ctx context.Context, item *ScheduleItem) error
}
