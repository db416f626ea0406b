package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// ScheduleItemInput is one block of a plan being installed for a day.
type ScheduleItemInput struct {
	StartTime       string
	Title           string
	Description     string
	DurationMinutes int
	Category        string
}

// ReplaceScheduleCommand installs a new plan for a day, discarding the old one.
type ReplaceScheduleCommand struct {
	UserID uuid.UUID
	Day    string
	Items  []ScheduleItemInput
}

// ReplaceScheduleResult contains the result of replacing a day's plan.
type ReplaceScheduleResult struct {
	ItemIDs []uuid.UUID
}

// ReplaceScheduleHandler handles the ReplaceScheduleCommand.
type ReplaceScheduleHandler struct {
	scheduleRepo domain.ScheduleRepository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	cache        sharedApplication.ReadCacheInvalidator
}

// NewReplaceScheduleHandler creates a new ReplaceScheduleHandler. cache may be nil.
func NewReplaceScheduleHandler(scheduleRepo domain.ScheduleRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *ReplaceScheduleHandler {
	return &ReplaceScheduleHandler{
		scheduleRepo: scheduleRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the ReplaceScheduleCommand.
func (h *ReplaceScheduleHandler) Handle(ctx context.Context, cmd ReplaceScheduleCommand) (*ReplaceScheduleResult, error) {
	day, err := sharedDomain.ParseDay(cmd.Day)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.ScheduleItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		category := domain.Category(in.Category)
		if !category.IsValid() {
			category = domain.CategoryPersonal
		}
		item, err := domain.NewScheduleItem(cmd.UserID, day, in.StartTime, in.Title, in.Description, in.DurationMinutes, category)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var result *ReplaceScheduleResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.scheduleRepo.ReplaceDay(txCtx, cmd.UserID, day, items); err != nil {
			return err
		}

		event := domain.NewScheduleReplaced(cmd.UserID, day, len(items))
		events := []sharedDomain.DomainEvent{event}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.UserID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID())
		}
		result = &ReplaceScheduleResult{ItemIDs: ids}
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
