package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// mockTaskRepo is a mock implementation of domain.TaskRepository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockScheduleRepo is a mock implementation of domain.ScheduleRepository.
type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) ReplaceDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day, items []*domain.ScheduleItem) error {
	args := m.Called(ctx, userID, day, items)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.ScheduleItem, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleItem), args.Error(1)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleItem), args.Error(1)
}

func (m *mockScheduleRepo) Save(ctx context.Context, item *domain.ScheduleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// mockLedgerRepo is a mock implementation of the ledger repository.
type mockLedgerRepo struct {
	mock.Mock
}

func (m *mockLedgerRepo) Append(ctx context.Context, event *ledgerDomain.PointEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockLedgerRepo) SumByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockLedgerRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*ledgerDomain.PointEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.PointEvent), args.Error(1)
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

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	newTask := func() *domain.Task {
		task, err := domain.NewTask(userID, "revise DSA", "", "", day, domain.PriorityMedium)
		require.NoError(t, err)
		task.ClearDomainEvents()
		return task
	}

	t.Run("completes a task and awards points", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, ledgerRepo, outboxRepo, uow, nil)

		task := newTask()
		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, task.ID()).Return(task, nil)
		taskRepo.On("Save", txCtx, task).Return(nil)
		ledgerRepo.On("Append", txCtx, mock.MatchedBy(func(e *ledgerDomain.PointEvent) bool {
			return e.Amount() == ledgerDomain.PointsTaskCompleted && e.Reason() == ledgerDomain.ReasonTaskCompleted
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: task.ID(), UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, ledgerDomain.PointsTaskCompleted, result.PointsAwarded)
		assert.True(t, task.Completed())

		taskRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("completing twice fails without extra points", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, ledgerRepo, outboxRepo, uow, nil)

		task := newTask()
		require.NoError(t, task.Complete())
		task.ClearDomainEvents()

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, task.ID()).Return(task, nil)

		result, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: task.ID(), UserID: userID})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrTaskAlreadyDone)
		ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects completing another user's task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCompleteTaskHandler(taskRepo, ledgerRepo, outboxRepo, uow, nil)

		task := newTask()
		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		taskRepo.On("FindByID", txCtx, task.ID()).Return(task, nil)

		result, err := handler.Handle(ctx, CompleteTaskCommand{TaskID: task.ID(), UserID: uuid.New()})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestReplaceScheduleHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	t.Run("replaces the day's plan", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewReplaceScheduleHandler(scheduleRepo, outboxRepo, uow, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		scheduleRepo.On("ReplaceDay", txCtx, userID, day, mock.MatchedBy(func(items []*domain.ScheduleItem) bool {
			return len(items) == 2
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ReplaceScheduleCommand{
			UserID: userID,
			Day:    "2025-07-15",
			Items: []ScheduleItemInput{
				{StartTime: "07:00", Title: "Morning run", DurationMinutes: 45, Category: "health"},
				{StartTime: "09:00", Title: "Deep work", DurationMinutes: 120, Category: "work"},
			},
		}

		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Len(t, result.ItemIDs, 2)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("unknown category defaults to personal", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewReplaceScheduleHandler(scheduleRepo, outboxRepo, uow, nil)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		scheduleRepo.On("ReplaceDay", txCtx, userID, day, mock.MatchedBy(func(items []*domain.ScheduleItem) bool {
			return len(items) == 1 && items[0].Category() == domain.CategoryPersonal
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ReplaceScheduleCommand{
			UserID: userID,
			Day:    "2025-07-15",
			Items: []ScheduleItemInput{
				{StartTime: "20:00", Title: "Call family", DurationMinutes: 30, Category: "social"},
			},
		}

		_, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("rejects a malformed day", func(t *testing.T) {
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewReplaceScheduleHandler(scheduleRepo, outboxRepo, uow, nil)

		_, err := handler.Handle(context.Background(), ReplaceScheduleCommand{UserID: userID, Day: "tomorrow"})

		var parseErr *sharedDomain.ParseError
		assert.ErrorAs(t, err, &parseErr)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
