package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/habits/domain"
	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// LogHabitCommand contains the data needed to record a habit for a day.
type LogHabitCommand struct {
	UserID    uuid.UUID
	HabitName string
	HabitType string
	Completed bool
	Day       string
	Notes     string
}

// LogHabitResult contains the result of recording a habit.
type LogHabitResult struct {
	LogID         uuid.UUID
	PointsAwarded int
}

// LogHabitHandler handles the LogHabitCommand. Logging the same habit twice
// on one day overwrites the earlier log instead of creating a second one.
type LogHabitHandler struct {
	logRepo    domain.Repository
	ledgerRepo ledgerDomain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	cache      sharedApplication.ReadCacheInvalidator
}

// NewLogHabitHandler creates a new LogHabitHandler. cache may be nil.
func NewLogHabitHandler(logRepo domain.Repository, ledgerRepo ledgerDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *LogHabitHandler {
	return &LogHabitHandler{
		logRepo:    logRepo,
		ledgerRepo: ledgerRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		cache:      cache,
	}
}

// Handle executes the LogHabitCommand.
func (h *LogHabitHandler) Handle(ctx context.Context, cmd LogHabitCommand) (*LogHabitResult, error) {
	day, err := sharedDomain.ParseDay(cmd.Day)
	if err != nil {
		return nil, err
	}

	var result *LogHabitResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.logRepo.FindByUserHabitDay(txCtx, cmd.UserID, cmd.HabitName, day)
		if err != nil {
			return err
		}

		var log *domain.HabitLog
		wasCompleted := false
		if existing != nil {
			wasCompleted = existing.Completed()
			existing.Record(cmd.Completed, cmd.Notes)
			log = existing
		} else {
			log, err = domain.NewHabitLog(cmd.UserID, cmd.HabitName, domain.HabitType(cmd.HabitType), cmd.Completed, day, cmd.Notes)
			if err != nil {
				return err
			}
		}

		if err := h.logRepo.Save(txCtx, log); err != nil {
			return err
		}

		// Points are awarded once per (habit, day), on the transition to completed.
		points := 0
		if cmd.Completed && !wasCompleted {
			award, err := ledgerDomain.NewPointEvent(cmd.UserID, ledgerDomain.PointsHabitCompleted, ledgerDomain.ReasonHabitCompleted)
			if err != nil {
				return err
			}
			if err := h.ledgerRepo.Append(txCtx, award); err != nil {
				return err
			}
			points = award.Amount()
		}

		events := log.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.UserID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &LogHabitResult{LogID: log.ID(), PointsAwarded: points}
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
