package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// ErrDailyLogNotFound is returned when no log exists for the requested day.
var ErrDailyLogNotFound = errors.New("daily log not found")

// DailyLogDTO is the read model for a daily log.
type DailyLogDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Day             string    `json:"date"`
	Mood            *int      `json:"mood"`
	EnergyLevel     *int      `json:"energy_level"`
	Productivity    *int      `json:"productivity_score"`
	Activities      []string  `json:"activities"`
	Notes           string    `json:"notes"`
	WakeTimeActual  string    `json:"wake_time_actual"`
	SleepTimeActual string    `json:"sleep_time_actual"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetDailyLogQuery contains the parameters for getting a day's log.
type GetDailyLogQuery struct {
	UserID uuid.UUID
	Day    string
}

// GetDailyLogHandler handles the GetDailyLogQuery.
type GetDailyLogHandler struct {
	logRepo domain.Repository
}

// NewGetDailyLogHandler creates a new GetDailyLogHandler.
func NewGetDailyLogHandler(logRepo domain.Repository) *GetDailyLogHandler {
	return &GetDailyLogHandler{logRepo: logRepo}
}

// Handle executes the GetDailyLogQuery.
func (h *GetDailyLogHandler) Handle(ctx context.Context, query GetDailyLogQuery) (*DailyLogDTO, error) {
	day, err := sharedDomain.ParseDay(query.Day)
	if err != nil {
		return nil, err
	}

	log, err := h.logRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrDailyLogNotFound
	}

	dto := ToDailyLogDTO(log)
	return &dto, nil
}

// ToDailyLogDTO maps a daily log aggregate onto its read model.
func ToDailyLogDTO(l *domain.DailyLog) DailyLogDTO {
	return DailyLogDTO{
		ID:              l.ID(),
		UserID:          l.UserID(),
		Day:             string(l.Day()),
		Mood:            l.Mood(),
		EnergyLevel:     l.EnergyLevel(),
		Productivity:    l.Productivity(),
		Activities:      l.Activities(),
		Notes:           l.Notes(),
		WakeTimeActual:  l.WakeTimeActual(),
		SleepTimeActual: l.SleepTimeActual(),
		CreatedAt:       l.CreatedAt(),
	}
}
