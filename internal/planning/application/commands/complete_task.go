package commands

import (
	"context"

	"github.com/google/uuid"

	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// CompleteTaskCommand contains the data needed to complete a task.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// CompleteTaskResult contains the result of completing a task.
type CompleteTaskResult struct {
	PointsAwarded int
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo   domain.TaskRepository
	ledgerRepo ledgerDomain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	cache      sharedApplication.ReadCacheInvalidator
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler. cache may be nil.
func NewCompleteTaskHandler(taskRepo domain.TaskRepository, ledgerRepo ledgerDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *CompleteTaskHandler {
	return &CompleteTaskHandler{
		taskRepo:   taskRepo,
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		cache:      cache,
	}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*CompleteTaskResult, error) {
	var result *CompleteTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		task, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if task == nil || task.UserID() != cmd.UserID {
			return domain.ErrTaskNotFound
		}

		if err := task.Complete(); err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, task); err != nil {
			return err
		}

		award, err := ledgerDomain.NewPointEvent(cmd.UserID, ledgerDomain.PointsTaskCompleted, ledgerDomain.ReasonTaskCompleted)
		if err != nil {
			return err
		}
		if err := h.ledgerRepo.Append(txCtx, award); err != nil {
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

		result = &CompleteTaskResult{PointsAwarded: award.Amount()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx, cmd.UserID)
	}

	return result, nil
}
