package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/identity/domain"
)

// ProfileDTO is the read model for a profile.
type ProfileDTO struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Age                 int       `json:"age"`
	CurrentRole         string    `json:"current_role"`
	GoalRole            string    `json:"goal_role"`
	WakeTime            string    `json:"wake_time"`
	SleepTime           string    `json:"sleep_time"`
	WorkStart           string    `json:"work_start"`
	WorkEnd             string    `json:"work_end"`
	Mode                string    `json:"mode"`
	HabitsToBuild       []string  `json:"habits_to_build"`
	HabitsToQuit        []string  `json:"habits_to_quit"`
	Goals               []string  `json:"goals"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

// GetProfileQuery contains the parameters for getting a profile.
type GetProfileQuery struct {
	ProfileID uuid.UUID
}

// GetProfileHandler handles the GetProfileQuery.
type GetProfileHandler struct {
	profileRepo domain.Repository
}

// NewGetProfileHandler creates a new GetProfileHandler.
func NewGetProfileHandler(profileRepo domain.Repository) *GetProfileHandler {
	return &GetProfileHandler{profileRepo: profileRepo}
}

// Handle executes the GetProfileQuery.
func (h *GetProfileHandler) Handle(ctx context.Context, query GetProfileQuery) (*ProfileDTO, error) {
	profile, err := h.profileRepo.FindByID(ctx, query.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	dto := ToProfileDTO(profile)
	return &dto, nil
}

// ToProfileDTO maps a profile aggregate onto its read model.
func ToProfileDTO(p *domain.Profile) ProfileDTO {
	sched := p.DailySchedule()
	return ProfileDTO{
		ID:                  p.ID(),
		Name:                p.Name(),
		Age:                 p.Age(),
		CurrentRole:         p.CurrentRole(),
		GoalRole:            p.GoalRole(),
		WakeTime:            sched.WakeTime,
		SleepTime:           sched.SleepTime,
		WorkStart:           sched.WorkStart,
		WorkEnd:             sched.WorkEnd,
		Mode:                string(p.Mode()),
		HabitsToBuild:       p.HabitsToBuild(),
		HabitsToQuit:        p.HabitsToQuit(),
		Goals:               p.Goals(),
		OnboardingCompleted: p.OnboardingCompleted(),
		CreatedAt:           p.CreatedAt(),
	}
}
