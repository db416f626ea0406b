package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// TaskDTO is the read model for a task.
type TaskDTO struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledTime string    `json:"scheduled_time"`
	Day           string    `json:"date"`
	Completed     bool      `json:"completed"`
	Priority      string    `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListTasksQuery contains the parameters for listing a day's tasks.
type ListTasksQuery struct {
	UserID uuid.UUID
	Day    string
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo domain.TaskRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo domain.TaskRepository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	day, err := sharedDomain.ParseDay(query.Day)
	if err != nil {
		return nil, err
	}

	tasks, err := h.taskRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, TaskDTO{
			ID:            t.ID(),
			UserID:        t.UserID(),
			Title:         t.Title(),
			Description:   t.Description(),
			ScheduledTime: t.ScheduledTime(),
			Day:           string(t.Day()),
			Completed:     t.Completed(),
			Priority:      string(t.Priority()),
			CreatedAt:     t.CreatedAt(),
		})
	}
	return dtos, nil
}
