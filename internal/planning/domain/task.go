package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

var (
	ErrTaskEmptyTitle      = errors.New("task title cannot be empty")
	ErrTaskInvalidPriority = errors.New("invalid task priority")
	ErrTaskAlreadyDone     = errors.New("task is already completed")
)

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a single to-do scheduled for a day, optionally at a time.
type Task struct {
	sharedDomain.BaseAggregateRoot
	userID        uuid.UUID
	title         string
	description   string
	scheduledTime string
	day           sharedDomain.Day
	completed     bool
	priority      Priority
}

// NewTask creates a new task for a day.
func NewTask(userID uuid.UUID, title, description, scheduledTime string, day sharedDomain.Day, priority Priority) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTaskEmptyTitle
	}
	if !priority.IsValid() {
		return nil, ErrTaskInvalidPriority
	}

	t := &Task{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		description:       description,
		scheduledTime:     scheduledTime,
		day:               day,
		priority:          priority,
	}
	t.AddDomainEvent(NewTaskCreated(t))
	return t, nil
}

// Complete marks the task done. Completing twice is an error so points
// cannot be farmed by re-completing.
func (t *Task) Complete() error {
	if t.completed {
		return ErrTaskAlreadyDone
	}
	t.completed = true
	t.Touch()
	t.AddDomainEvent(NewTaskCompleted(t))
	return nil
}

// Reopen marks a completed task as pending again. Points already paid for
// the completion stay on the ledger.
func (t *Task) Reopen() {
	if !t.completed {
		return
	}
	t.completed = false
	t.Touch()
}

// Getters
func (t *Task) UserID() uuid.UUID     { return t.userID }
func (t *Task) Title() string         { return t.title }
func (t *Task) Description() string   { return t.description }
func (t *Task) ScheduledTime() string { return t.scheduledTime }
func (t *Task) Day() sharedDomain.Day { return t.day }
func (t *Task) Completed() bool       { return t.completed }
func (t *Task) Priority() Priority    { return t.priority }

// RehydrateTask recreates a task from persisted state without events.
func RehydrateTask(
	id, userID uuid.UUID,
	title, description, scheduledTime string,
	day sharedDomain.Day,
	completed bool,
	priority Priority,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		title:             title,
		description:       description,
		scheduledTime:     scheduledTime,
		day:               day,
		completed:         completed,
		priority:          priority,
	}
}
