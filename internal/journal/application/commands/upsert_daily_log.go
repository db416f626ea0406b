package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// UpsertDailyLogCommand contains the data needed to record a daily reflection.
// Optional ratings use zero to mean "not recorded".
type UpsertDailyLogCommand struct {
	UserID          uuid.UUID
	Day             string
	Mood            int
	EnergyLevel     int
	Productivity    int
	Activities      []string
	Notes           string
	WakeTimeActual  string
	SleepTimeActual string
}

// UpsertDailyLogResult contains the result of recording a daily log.
type UpsertDailyLogResult struct {
	LogID uuid.UUID
}

// UpsertDailyLogHandler handles the UpsertDailyLogCommand. A second log for
// the same day overwrites the first.
type UpsertDailyLogHandler struct {
	logRepo    domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	cache      sharedApplication.ReadCacheInvalidator
}

// NewUpsertDailyLogHandler creates a new UpsertDailyLogHandler. cache may be nil.
func NewUpsertDailyLogHandler(logRepo domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, cache sharedApplication.ReadCacheInvalidator) *UpsertDailyLogHandler {
	return &UpsertDailyLogHandler{
		logRepo:    logRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		cache:      cache,
	}
}

// Handle executes the UpsertDailyLogCommand.
func (h *UpsertDailyLogHandler) Handle(ctx context.Context, cmd UpsertDailyLogCommand) (*UpsertDailyLogResult, error) {
	day, err := sharedDomain.ParseDay(cmd.Day)
	if err != nil {
		return nil, err
	}

	attrs, err := attrsFromCommand(cmd)
	if err != nil {
		return nil, err
	}

	var result *UpsertDailyLogResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.logRepo.FindByUserAndDay(txCtx, cmd.UserID, day)
		if err != nil {
			return err
		}

		var log *domain.DailyLog
		if existing != nil {
			existing.Record(attrs)
			log = existing
		} else {
			log = domain.NewDailyLog(cmd.UserID, day, attrs)
		}

		if err := h.logRepo.Save(txCtx, log); err != nil {
			return err
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

		result = &UpsertDailyLogResult{LogID: log.ID()}
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

func attrsFromCommand(cmd UpsertDailyLogCommand) (domain.DailyLogAttrs, error) {
	attrs := domain.DailyLogAttrs{
		Activities:      cmd.Activities,
		Notes:           cmd.Notes,
		WakeTimeActual:  cmd.WakeTimeActual,
		SleepTimeActual: cmd.SleepTimeActual,
	}

	var err error
	if cmd.Mood != 0 {
		if attrs.Mood, err = domain.NewRating(cmd.Mood); err != nil {
			return attrs, err
		}
	}
	if cmd.EnergyLevel != 0 {
		if attrs.EnergyLevel, err = domain.NewRating(cmd.EnergyLevel); err != nil {
			return attrs, err
		}
	}
	if cmd.Productivity != 0 {
		if attrs.Productivity, err = domain.NewRating(cmd.Productivity); err != nil {
			return attrs, err
		}
	}
	return attrs, nil
}
