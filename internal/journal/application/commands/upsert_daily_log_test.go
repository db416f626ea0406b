package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// mockLogRepo is a mock implementation of domain.Repository.
type mockLogRepo struct {
	mock.Mock
}

func (m *mockLogRepo) Save(ctx context.Context, log *domain.DailyLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockLogRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyLog, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLog), args.Error(1)
}

func (m *mockLogRepo) FindByUserSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) ([]*domain.DailyLog, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyLog), args.Error(1)
}

func (m *mockLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyLog), args.Error(1)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestUpsertDailyLogHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	t.Run("creates a new log", func(t *testing.T) {
		logRepo := new(mockLogRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpsertDailyLogHandler(logRepo, outboxRepo, uow, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		logRepo.On("FindByUserAndDay", txCtx, userID, day).Return(nil, nil)
		logRepo.On("Save", txCtx, mock.MatchedBy(func(l *domain.DailyLog) bool {
			return l.UserID() == userID && *l.Mood() == 4 && l.Notes() == "good day"
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, UpsertDailyLogCommand{
			UserID: userID,
			Day:    "2025-07-15",
			Mood:   4,
			Notes:  "good day",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.LogID)
		logRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("overwrites the existing log for the day", func(t *testing.T) {
		logRepo := new(mockLogRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpsertDailyLogHandler(logRepo, outboxRepo, uow, nil)

		now := time.Now().UTC()
		mood, err := domain.NewRating(2)
		require.NoError(t, err)
		existing := domain.RehydrateDailyLog(
			uuid.New(), userID, day,
			domain.DailyLogAttrs{Mood: mood, Notes: "rough morning"},
			now, now,
		)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		logRepo.On("FindByUserAndDay", txCtx, userID, day).Return(existing, nil)
		logRepo.On("Save", txCtx, mock.MatchedBy(func(l *domain.DailyLog) bool {
			return l.ID() == existing.ID() && l.Mood() == nil && l.Notes() == "turned it around"
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, UpsertDailyLogCommand{
			UserID: userID,
			Day:    "2025-07-15",
			Notes:  "turned it around",
		})

		require.NoError(t, err)
		assert.Equal(t, existing.ID(), result.LogID)
		logRepo.AssertExpectations(t)
	})

	t.Run("rejects an out-of-range rating before opening a transaction", func(t *testing.T) {
		logRepo := new(mockLogRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpsertDailyLogHandler(logRepo, outboxRepo, uow, nil)

		_, err := handler.Handle(context.Background(), UpsertDailyLogCommand{
			UserID: userID,
			Day:    "2025-07-15",
			Mood:   9,
		})

		require.ErrorIs(t, err, domain.ErrRatingOutOfRange)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
		logRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		logRepo := new(mockLogRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewUpsertDailyLogHandler(logRepo, outboxRepo, uow, nil)

		_, err := handler.Handle(context.Background(), UpsertDailyLogCommand{
			UserID: userID,
			Day:    "July 15",
			Mood:   3,
		})

		var parseErr *sharedDomain.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "July 15", parseErr.Value)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
