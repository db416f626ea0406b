package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
)

// DeleteTaskCommand contains the data needed to delete a task.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo domain.TaskRepository
	uow      sharedApplication.UnitOfWork
	cache    sharedApplication.ReadCacheInvalidator
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler. cache may be nil.
func NewDeleteTaskHandler(taskRepo domain.TaskRepository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *DeleteTaskHandler {
	return &DeleteTaskHandler{taskRepo: taskRepo, uow: uow, cache: cache}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return domain.ErrTaskNotFound
		}
		return h.taskRepo.Delete(txCtx, cmd.TaskID)
	})
	if err != nil {
		return err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, cmd.UserID)
	}
	return nil
}
