package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/habits/domain"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// GetStreaksQuery contains the parameters for computing habit streaks.
type GetStreaksQuery struct {
	UserID uuid.UUID
	// Today overrides the reference day; zero value means the current date.
	Today sharedDomain.Day
}

// StreaksDTO maps each of the user's habits to its current streak length.
type StreaksDTO struct {
	UserID  uuid.UUID      `json:"user_id"`
	Streaks map[string]int `json:"streaks"`
}

// GetStreaksHandler handles the GetStreaksQuery. Streaks cover every habit
// named on the profile, including ones with no logs yet.
type GetStreaksHandler struct {
	logRepo     domain.Repository
	profileRepo identityDomain.Repository
}

// NewGetStreaksHandler creates a new GetStreaksHandler.
func NewGetStreaksHandler(logRepo domain.Repository, profileRepo identityDomain.Repository) *GetStreaksHandler {
	return &GetStreaksHandler{logRepo: logRepo, profileRepo: profileRepo}
}

// Handle executes the GetStreaksQuery.
func (h *GetStreaksHandler) Handle(ctx context.Context, query GetStreaksQuery) (*StreaksDTO, error) {
	profile, err := h.profileRepo.FindByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, identityDomain.ErrProfileNotFound
	}

	today := query.Today
	if today == "" {
		today = sharedDomain.Today()
	}

	streaks := make(map[string]int)
	for _, habit := range profile.AllHabits() {
		logs, err := h.logRepo.FindCompletedByHabit(ctx, query.UserID, habit)
		if err != nil {
			return nil, err
		}
		streak, err := domain.CurrentStreak(logs, today)
		if err != nil {
			return nil, err
		}
		streaks[habit] = streak
	}

	return &StreaksDTO{UserID: query.UserID, Streaks: streaks}, nil
}
