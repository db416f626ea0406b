package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/insights/application"
	"github.com/hiteshchouriya/rik/internal/insights/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// WeeklyInsightsDTO is the read model for the trailing week's insights.
type WeeklyInsightsDTO struct {
	UserID   uuid.UUID        `json:"user_id"`
	From     string           `json:"from"`
	To       string           `json:"to"`
	Insights []domain.Insight `json:"insights"`
}

// GetWeeklyInsightsQuery contains the parameters for computing weekly insights.
type GetWeeklyInsightsQuery struct {
	UserID uuid.UUID
	// Today overrides the reference day; zero value means the current date.
	Today sharedDomain.Day
}

// InsightsCache stores computed insights briefly so repeated dashboard loads
// skip the aggregation queries. A nil cache disables caching.
type InsightsCache interface {
	GetInsights(ctx context.Context, userID uuid.UUID) (*WeeklyInsightsDTO, bool)
	SetInsights(ctx context.Context, userID uuid.UUID, dto *WeeklyInsightsDTO)
}

// GetWeeklyInsightsHandler handles the GetWeeklyInsightsQuery. The window is
// the trailing 7 calendar days including today.
type GetWeeklyInsightsHandler struct {
	source application.DataSource
	cache  InsightsCache
}

// NewGetWeeklyInsightsHandler creates a new GetWeeklyInsightsHandler.
func NewGetWeeklyInsightsHandler(source application.DataSource, cache InsightsCache) *GetWeeklyInsightsHandler {
	return &GetWeeklyInsightsHandler{source: source, cache: cache}
}

// Handle executes the GetWeeklyInsightsQuery.
func (h *GetWeeklyInsightsHandler) Handle(ctx context.Context, query GetWeeklyInsightsQuery) (*WeeklyInsightsDTO, error) {
	if h.cache != nil {
		if dto, ok := h.cache.GetInsights(ctx, query.UserID); ok {
			return dto, nil
		}
	}

	today := query.Today
	if today == "" {
		today = sharedDomain.Today()
	}
	since := today.AddDays(-6)

	activity, err := h.source.WeeklyActivity(ctx, query.UserID, since)
	if err != nil {
		return nil, err
	}

	dto := &WeeklyInsightsDTO{
		UserID:   query.UserID,
		From:     string(since),
		To:       string(today),
		Insights: domain.ComputeInsights(activity),
	}

	if h.cache != nil {
		h.cache.SetInsights(ctx, query.UserID, dto)
	}
	return dto, nil
}
