package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/insights/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// DayStatsDTO is one day's completion percentages.
type DayStatsDTO struct {
	Day             string  `json:"date"`
	HabitCompletion float64 `json:"habit_completion"`
	TaskCompletion  float64 `json:"task_completion"`
	HabitsLogged    int     `json:"habits_logged"`
	TasksPlanned    int     `json:"tasks_planned"`
	Mood            *int    `json:"mood"`
}

// StatsDTO is the read model for the trailing week's per-day stats.
type StatsDTO struct {
	UserID uuid.UUID     `json:"user_id"`
	Days   []DayStatsDTO `json:"days"`
}

// GetStatsQuery contains the parameters for reading weekly stats.
type GetStatsQuery struct {
	UserID uuid.UUID
	// Today overrides the reference day; zero value means the current date.
	Today sharedDomain.Day
}

// StatsCache stores computed stats briefly. A nil cache disables caching.
type StatsCache interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*StatsDTO, bool)
	SetStats(ctx context.Context, userID uuid.UUID, dto *StatsDTO)
}

// GetStatsHandler handles the GetStatsQuery.
type GetStatsHandler struct {
	source application.DataSource
	cache  StatsCache
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(source application.DataSource, cache StatsCache) *GetStatsHandler {
	return &GetStatsHandler{source: source, cache: cache}
}

// Handle executes the GetStatsQuery.
func (h *GetStatsHandler) Handle(ctx context.Context, query GetStatsQuery) (*StatsDTO, error) {
	if h.cache != nil {
		if dto, ok := h.cache.GetStats(ctx, query.UserID); ok {
			return dto, nil
		}
	}

	today := query.Today
	if today == "" {
		today = sharedDomain.Today()
	}
	from := today.AddDays(-6)

	days, err := h.source.DailyActivity(ctx, query.UserID, from, today)
	if err != nil {
		return nil, err
	}

	dto := &StatsDTO{UserID: query.UserID, Days: make([]DayStatsDTO, 0, len(days))}
	for _, d := range days {
		stats := DayStatsDTO{
			Day:          d.Day,
			HabitsLogged: d.HabitsLogged,
			TasksPlanned: d.TasksPlanned,
			Mood:         d.Mood,
		}
		if d.HabitsLogged > 0 {
			stats.HabitCompletion = float64(d.HabitsCompleted) / float64(d.HabitsLogged) * 100
		}
		if d.TasksPlanned > 0 {
			stats.TaskCompletion = float64(d.TasksCompleted) / float64(d.TasksPlanned) * 100
		}
		dto.Days = append(dto.Days, stats)
	}

	if h.cache != nil {
		h.cache.SetStats(ctx, query.UserID, dto)
	}
	return dto, nil
}
