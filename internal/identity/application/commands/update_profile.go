package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/identity/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// UpdateProfileCommand contains the data needed to update a profile.
type UpdateProfileCommand struct {
	ProfileID     uuid.UUID
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

// UpdateProfileHandler handles the UpdateProfileCommand.
type UpdateProfileHandler struct {
	profileRepo domain.Repository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewUpdateProfileHandler creates a new UpdateProfileHandler.
func NewUpdateProfileHandler(profileRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *UpdateProfileHandler {
	return &UpdateProfileHandler{
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the UpdateProfileCommand.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		profile, err := h.profileRepo.FindByID(txCtx, cmd.ProfileID)
		if err != nil {
			return err
		}
		if profile == nil {
			return domain.ErrProfileNotFound
		}

		mode := domain.AssistantMode(cmd.Mode)
		if !mode.IsValid() {
			mode = profile.Mode()
		}

		if err := profile.Update(domain.ProfileAttrs{
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
		}); err != nil {
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
		return h.outboxRepo.SaveBatch(txCtx, msgs)
	})
}
