package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/identity/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// CreateProfileCommand contains the data needed to create a profile.
type CreateProfileCommand struct {
	Name          string
	Age           int
	CurrentRole   string
	GoalRole      string
	WakeTime      string
	SleepTime     string
	WorkStart     string
	WorkEnd       string
	Mode          string
	HabitsToBuild []string
	HabitsToQuit  []string
	Goals         []string
}

// CreateProfileResult contains the result of creating a profile.
type CreateProfileResult struct {
	ProfileID uuid.UUID
}

// CreateProfileHandler handles the CreateProfileCommand.
type CreateProfileHandler struct {
	profileRepo domain.Repository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewCreateProfileHandler creates a new CreateProfileHandler.
func NewCreateProfileHandler(profileRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateProfileHandler {
	return &CreateProfileHandler{
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the CreateProfileCommand.
func (h *CreateProfileHandler) Handle(ctx context.Context, cmd CreateProfileCommand) (*CreateProfileResult, error) {
	var result *CreateProfileResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		mode := domain.AssistantMode(cmd.Mode)
		if !mode.IsValid() {
			mode = domain.ModeModerate
		}

		profile, err := domain.NewProfile(domain.ProfileAttrs{
			Name:        cmd.Name,
			Age:         cmd.Age,
			CurrentRole: cmd.CurrentRole,
			GoalRole:    cmd.GoalRole,
			Schedule: domain.Schedule{
				WakeTime:  cmd.WakeTime,
				SleepTime: cmd.SleepTime,
				WorkStart: cmd.WorkStart,
				WorkEnd:   cmd.WorkEnd,
			},
			Mode:          mode,
			HabitsToBuild: cmd.HabitsToBuild,
			HabitsToQuit:  cmd.HabitsToQuit,
			Goals:         cmd.Goals,
		})
		if err != nil {
			return err
		}

		if err := h.profileRepo.Save(txCtx, profile); err != nil {
			return err
		}

		events := profile.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(profile.ID()))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &CreateProfileResult{ProfileID: profile.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
