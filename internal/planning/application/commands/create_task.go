package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID        uuid.UUID
	Title         string
	Description   string
	ScheduledTime string
	Day           string
	Priority      string
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   domain.TaskRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo domain.TaskRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	day, err := sharedDomain.ParseDay(cmd.Day)
	if err != nil {
		return nil, err
	}

	var result *CreateTaskResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		priority := domain.Priority(cmd.Priority)
		if !priority.IsValid() {
			priority = domain.PriorityMedium
		}

		task, err := domain.NewTask(cmd.UserID, cmd.Title, cmd.Description, cmd.ScheduledTime, day, priority)
		if err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return err
		}

		events := task.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.UserID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &CreateTaskResult{TaskID: task.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
