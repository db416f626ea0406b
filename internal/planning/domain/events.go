package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

const taskAggregateType = "Task"

// TaskCreated is emitted when a task is created.
type TaskCreated struct {
	sharedDomain.BaseEvent
	TaskID   uuid.UUID `json:"task_id"`
	UserID   uuid.UUID `json:"user_id"`
	Title    string    `json:"title"`
	Day      string    `json:"day"`
	Priority string    `json:"priority"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), taskAggregateType, "planning.task.created"),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Title:     t.Title(),
		Day:       string(t.Day()),
		Priority:  string(t.Priority()),
	}
}

// TaskCompleted is emitted when a task is completed.
type TaskCompleted struct {
	sharedDomain.BaseEvent
	TaskID uuid.UUID `json:"task_id"`
	UserID uuid.UUID `json:"user_id"`
	Day    string    `json:"day"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(t *Task) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), taskAggregateType, "planning.task.completed"),
		TaskID:    t.ID(),
		UserID:    t.UserID(),
		Day:       string(t.Day()),
	}
}

// ScheduleReplaced is emitted when a day's generated plan is replaced.
type ScheduleReplaced struct {
	sharedDomain.BaseEvent
	UserID    uuid.UUID `json:"user_id"`
	Day       string    `json:"day"`
	ItemCount int       `json:"item_count"`
}

// NewScheduleReplaced creates a ScheduleReplaced event.
func NewScheduleReplaced(userID uuid.UUID, day sharedDomain.Day, itemCount int) *ScheduleReplaced {
	return &ScheduleReplaced{
		BaseEvent: sharedDomain.NewBaseEvent(userID, "Schedule", "planning.schedule.replaced"),
		UserID:    userID,
		Day:       string(day),
		ItemCount: itemCount,
	}
}
