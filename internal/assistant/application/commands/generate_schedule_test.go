package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	planningCommands "github.com/hiteshchouriya/rik/internal/planning/application/commands"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// mockScheduleRepo is a mock implementation of the planning schedule repository.
type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) ReplaceDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day, items []*planningDomain.ScheduleItem) error {
	args := m.Called(ctx, userID, day, items)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*planningDomain.ScheduleItem, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planningDomain.ScheduleItem), args.Error(1)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.ScheduleItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningDomain.ScheduleItem), args.Error(1)
}

func (m *mockScheduleRepo) Save(ctx context.Context, item *planningDomain.ScheduleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func TestGenerateScheduleHandler_Handle(t *testing.T) {
	userID := uuid.New()
	day := sharedDomain.Day("2025-07-15")

	newHandler := func() (*GenerateScheduleHandler, *mockProfileRepo, *mockTaskRepo, *mockScheduleRepo, *mockOutboxRepo, *mockUnitOfWork, *mockLLM) {
		profileRepo := new(mockProfileRepo)
		taskRepo := new(mockTaskRepo)
		scheduleRepo := new(mockScheduleRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		llm := new(mockLLM)
		replace := planningCommands.NewReplaceScheduleHandler(scheduleRepo, outboxRepo, uow, nil)
		handler := NewGenerateScheduleHandler(profileRepo, taskRepo, replace, llm)
		return handler, profileRepo, taskRepo, scheduleRepo, outboxRepo, uow, llm
	}

	t.Run("installs the generated plan, replacing the old one", func(t *testing.T) {
		handler, profileRepo, taskRepo, scheduleRepo, outboxRepo, uow, llm := newHandler()

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		profileRepo.On("FindByID", ctx, userID).Return(testProfile(userID), nil)
		taskRepo.On("FindByUserAndDay", ctx, userID, day).Return([]*planningDomain.Task{}, nil)
		llm.On("Complete", ctx, mock.Anything, mock.Anything).Return("```json\n"+`[
			{"title": "Morning run", "description": "5k easy pace", "start_time": "06:45", "duration_minutes": 30, "category": "health"},
			{"title": "Go study block", "start_time": "19:00", "duration_minutes": 60, "category": "learning"}
		]`+"\n```", nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		scheduleRepo.On("ReplaceDay", txCtx, userID, day, mock.MatchedBy(func(items []*planningDomain.ScheduleItem) bool {
			return len(items) == 2 && items[0].Title() == "Morning run" && items[1].Category() == planningDomain.CategoryLearning
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.Anything).Return(nil)

		result, err := handler.Handle(ctx, GenerateScheduleCommand{UserID: userID, Day: "2025-07-15"})

		require.NoError(t, err)
		assert.Equal(t, "2025-07-15", result.Day)
		assert.Len(t, result.ItemIDs, 2)

		scheduleRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("unparseable plan leaves the day untouched", func(t *testing.T) {
		handler, profileRepo, taskRepo, scheduleRepo, _, uow, llm := newHandler()

		ctx := context.Background()
		profileRepo.On("FindByID", ctx, userID).Return(testProfile(userID), nil)
		taskRepo.On("FindByUserAndDay", ctx, userID, day).Return([]*planningDomain.Task{}, nil)
		llm.On("Complete", ctx, mock.Anything, mock.Anything).Return("Here is your plan: run, work, sleep.", nil)

		result, err := handler.Handle(ctx, GenerateScheduleCommand{UserID: userID, Day: "2025-07-15"})

		assert.Nil(t, result)
		assert.Error(t, err)
		scheduleRepo.AssertNotCalled(t, "ReplaceDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		handler, profileRepo, _, _, _, _, llm := newHandler()

		ctx := context.Background()
		profileRepo.On("FindByID", ctx, userID).Return(nil, nil)

		result, err := handler.Handle(ctx, GenerateScheduleCommand{UserID: userID, Day: "2025-07-15"})

		assert.Nil(t, result)
		assert.Error(t, err)
		llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}
