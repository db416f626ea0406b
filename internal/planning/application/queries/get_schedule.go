package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// ScheduleItemDTO is the read model for one block of a day's plan.
type ScheduleItemDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Day             string    `json:"date"`
	StartTime       string    `json:"time"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        string    `json:"category"`
	Completed       bool      `json:"completed"`
}

// GetScheduleQuery contains the parameters for reading a day's plan.
type GetScheduleQuery struct {
	UserID uuid.UUID
	Day    string
}

// GetScheduleHandler handles the GetScheduleQuery.
type GetScheduleHandler struct {
	scheduleRepo domain.ScheduleRepository
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(scheduleRepo domain.ScheduleRepository) *GetScheduleHandler {
	return &GetScheduleHandler{scheduleRepo: scheduleRepo}
}

// Handle executes the GetScheduleQuery.
func (h *GetScheduleHandler) Handle(ctx context.Context, query GetScheduleQuery) ([]ScheduleItemDTO, error) {
	day, err := sharedDomain.ParseDay(query.Day)
	if err != nil {
		return nil, err
	}

	items, err := h.scheduleRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}

	dtos := make([]ScheduleItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ToScheduleItemDTO(item))
	}
	return dtos, nil
}

// ToScheduleItemDTO maps a schedule item onto its read model.
func ToScheduleItemDTO(item *domain.ScheduleItem) ScheduleItemDTO {
	return ScheduleItemDTO{
		ID:              item.ID(),
		UserID:          item.UserID(),
		Day:             string(item.Day()),
		StartTime:       item.StartTime(),
		Title:           item.Title(),
		Description:     item.Description(),
		DurationMinutes: item.DurationMinutes(),
		Category:        string(item.Category()),
		Completed:       item.Completed(),
	}
}
