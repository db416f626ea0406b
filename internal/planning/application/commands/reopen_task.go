package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
)

// ReopenTaskCommand contains the data needed to mark a task pending again.
type ReopenTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// ReopenTaskHandler handles the ReopenTaskCommand. Points paid for the
// earlier completion stay on the ledger.
type ReopenTaskHandler struct {
	taskRepo domain.TaskRepository
	uow      sharedApplication.UnitOfWork
	cache    sharedApplication.ReadCacheInvalidator
}

// NewReopenTaskHandler creates a new ReopenTaskHandler. cache may be nil.
func NewReopenTaskHandler(taskRepo domain.TaskRepository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *ReopenTaskHandler {
	return &ReopenTaskHandler{taskRepo: taskRepo, uow: uow, cache: cache}
}

// Handle executes the ReopenTaskCommand.
func (h *ReopenTaskHandler) Handle(ctx context.Context, cmd ReopenTaskCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return domain.ErrTaskNotFound
		}

		task.Reopen()
		return h.taskRepo.Save(txCtx, task)
	})
	if err != nil {
		return err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, cmd.UserID)
	}
	return nil
}
