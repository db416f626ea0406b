package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/habits/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// HabitLogDTO is the read model for a habit log.
type HabitLogDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	HabitName string    `json:"habit_name"`
	HabitType string    `json:"habit_type"`
	Completed bool      `json:"completed"`
	Day       string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ListDayLogsQuery contains the parameters for listing a day's habit logs.
type ListDayLogsQuery struct {
	UserID uuid.UUID
	Day    string
}

// ListDayLogsHandler handles the ListDayLogsQuery.
type ListDayLogsHandler struct {
	logRepo domain.Repository
}

// NewListDayLogsHandler creates a new ListDayLogsHandler.
func NewListDayLogsHandler(logRepo domain.Repository) *ListDayLogsHandler {
	return &ListDayLogsHandler{logRepo: logRepo}
}

// Handle executes the ListDayLogsQuery.
func (h *ListDayLogsHandler) Handle(ctx context.Context, query ListDayLogsQuery) ([]HabitLogDTO, error) {
	day, err := sharedDomain.ParseDay(query.Day)
	if err != nil {
		return nil, err
	}

	logs, err := h.logRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}

	dtos := make([]HabitLogDTO, 0, len(logs))
	for _, l := range logs {
		dtos = append(dtos, HabitLogDTO{
			ID:        l.ID(),
			UserID:    l.UserID(),
			HabitName: l.HabitName(),
			HabitType: string(l.HabitType()),
			Completed: l.Completed(),
			Day:       string(l.Day()),
			Notes:     l.Notes(),
			CreatedAt: l.CreatedAt(),
		})
	}
	return dtos, nil
}
