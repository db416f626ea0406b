package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
)

// ListDailyLogsQuery contains the parameters for listing recent daily logs.
type ListDailyLogsQuery struct {
	UserID uuid.UUID
	Limit  int
}

// ListDailyLogsHandler handles the ListDailyLogsQuery.
type ListDailyLogsHandler struct {
	logRepo domain.Repository
}

// NewListDailyLogsHandler creates a new ListDailyLogsHandler.
func NewListDailyLogsHandler(logRepo domain.Repository) *ListDailyLogsHandler {
	return &ListDailyLogsHandler{logRepo: logRepo}
}

// Handle executes the ListDailyLogsQuery.
func (h *ListDailyLogsHandler) Handle(ctx context.Context, query ListDailyLogsQuery) ([]DailyLogDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 30
	}

	logs, err := h.logRepo.ListByUser(ctx, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]DailyLogDTO, 0, len(logs))
	for _, l := range logs {
		dtos = append(dtos, ToDailyLogDTO(l))
	}
	return dtos, nil
}
