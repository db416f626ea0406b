package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
)

// CompleteScheduleItemCommand contains the data needed to tick off a plan block.
type CompleteScheduleItemCommand struct {
	ItemID uuid.UUID
	UserID uuid.UUID
}

// CompleteScheduleItemHandler handles the CompleteScheduleItemCommand.
type CompleteScheduleItemHandler struct {
	scheduleRepo domain.ScheduleRepository
	uow          sharedApplication.UnitOfWork
	cache        sharedApplication.ReadCacheInvalidator
}

// NewCompleteScheduleItemHandler creates a new CompleteScheduleItemHandler. cache may be nil.
func NewCompleteScheduleItemHandler(scheduleRepo domain.ScheduleRepository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *CompleteScheduleItemHandler {
	return &CompleteScheduleItemHandler{scheduleRepo: scheduleRepo, uow: uow, cache: cache}
}

// Handle executes the CompleteScheduleItemCommand.
func (h *CompleteScheduleItemHandler) Handle(ctx context.Context, cmd CompleteScheduleItemCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := h.scheduleRepo.FindByID(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.UserID() != cmd.UserID {
			return domain.ErrScheduleItemNotFound
		}

		item.MarkCompleted()
		return h.scheduleRepo.Save(txCtx, item)
	})
	if err != nil {
		return err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, cmd.UserID)
	}
	return nil
}
