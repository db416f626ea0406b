package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	habitsDomain "github.com/hiteshchouriya/rik/internal/habits/domain"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	journalDomain "github.com/hiteshchouriya/rik/internal/journal/domain"
	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// mockChatRepo is a mock implementation of domain.ChatRepository.
type mockChatRepo struct {
	mock.Mock
}

func (m *mockChatRepo) Save(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockChatRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

// mockAnalysisRepo is a mock implementation of domain.AnalysisRepository.
type mockAnalysisRepo struct {
	mock.Mock
}

func (m *mockAnalysisRepo) Save(ctx context.Context, analysis *domain.DailyAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *mockAnalysisRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyAnalysis, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyAnalysis), args.Error(1)
}

// mockProfileRepo is a mock implementation of the identity repository.
type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Save(ctx context.Context, profile *identityDomain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*identityDomain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockHabitRepo is a mock implementation of the habits repository.
type mockHabitRepo struct {
	mock.Mock
}

func (m *mockHabitRepo) Save(ctx context.Context, log *habitsDomain.HabitLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockHabitRepo) FindByUserHabitDay(ctx context.Context, userID uuid.UUID, habitName string, day sharedDomain.Day) (*habitsDomain.HabitLog, error) {
	args := m.Called(ctx, userID, habitName, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*habitsDomain.HabitLog), args.Error(1)
}

func (m *mockHabitRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*habitsDomain.HabitLog, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*habitsDomain.HabitLog), args.Error(1)
}

func (m *mockHabitRepo) FindCompletedByHabit(ctx context.Context, userID uuid.UUID, habitName string) ([]*habitsDomain.HabitLog, error) {
	args := m.Called(ctx, userID, habitName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*habitsDomain.HabitLog), args.Error(1)
}

func (m *mockHabitRepo) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockHabitRepo) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

// mockTaskRepo is a mock implementation of the planning task repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *planningDomain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*planningDomain.Task, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planningDomain.Task), args.Error(1)
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

// mockJournalRepo is a mock implementation of the journal repository.
type mockJournalRepo struct {
	mock.Mock
}

func (m *mockJournalRepo) Save(ctx context.Context, log *journalDomain.DailyLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockJournalRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*journalDomain.DailyLog, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journalDomain.DailyLog), args.Error(1)
}

func (m *mockJournalRepo) FindByUserSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) ([]*journalDomain.DailyLog, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journalDomain.DailyLog), args.Error(1)
}

func (m *mockJournalRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*journalDomain.DailyLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journalDomain.DailyLog), args.Error(1)
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

// mockLLM is a mock implementation of application.LLMClient.
type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Complete(ctx context.Context, systemMessage, userMessage string) (string, error) {
	args := m.Called(ctx, systemMessage, userMessage)
	return args.String(0), args.Error(1)
}

func testProfile(userID uuid.UUID) *identityDomain.Profile {
	now := time.Now()
	return identityDomain.RehydrateProfile(userID, identityDomain.ProfileAttrs{
		Name:        "Hitesh",
		Age:         28,
		CurrentRole: "Support Engineer",
		GoalRole:    "Backend Developer",
		Schedule: identityDomain.Schedule{
			WakeTime:  "06:30",
			SleepTime: "23:00",
			WorkStart: "09:00",
			WorkEnd:   "18:00",
		},
		Mode:          identityDomain.ModeModerate,
		HabitsToBuild: []string{"Morning run"},
		Goals:         []string{"Ship a side project"},
	}, true, now, now)
}

func TestSendMessageHandler_Handle(t *testing.T) {
	userID := uuid.New()

	newHandler := func() (*SendMessageHandler, *mockChatRepo, *mockProfileRepo, *mockHabitRepo, *mockTaskRepo, *mockJournalRepo, *mockLLM, *mockUnitOfWork) {
		chatRepo := new(mockChatRepo)
		profileRepo := new(mockProfileRepo)
		habitRepo := new(mockHabitRepo)
		taskRepo := new(mockTaskRepo)
		journalRepo := new(mockJournalRepo)
		llm := new(mockLLM)
		uow := new(mockUnitOfWork)
		handler := NewSendMessageHandler(chatRepo, profileRepo, habitRepo, taskRepo, journalRepo, llm, uow, DefaultChatHistoryLimit)
		return handler, chatRepo, profileRepo, habitRepo, taskRepo, journalRepo, llm, uow
	}

	t.Run("grounds the prompt and saves both sides", func(t *testing.T) {
		handler, chatRepo, profileRepo, habitRepo, taskRepo, journalRepo, llm, uow := newHandler()

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		history := []*domain.ChatMessage{
			domain.RehydrateChatMessage(uuid.New(), userID, domain.RoleAssistant, "Get back on it tomorrow.", time.Now()),
			domain.RehydrateChatMessage(uuid.New(), userID, domain.RoleUser, "I skipped my run.", time.Now().Add(-time.Minute)),
		}

		profileRepo.On("FindByID", ctx, userID).Return(testProfile(userID), nil)
		habitRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*habitsDomain.HabitLog{}, nil)
		taskRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*planningDomain.Task{}, nil)
		journalRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return(nil, nil)
		chatRepo.On("ListRecent", ctx, userID, DefaultChatHistoryLimit).Return(history, nil)

		llm.On("Complete", ctx,
			mock.MatchedBy(func(system string) bool {
				return containsAll(system, "Hitesh", "Backend Developer", "Morning run")
			}),
			mock.MatchedBy(func(message string) bool {
				return containsAll(message,
					"Previous conversation:\nUser: I skipped my run.\nAssistant: Get back on it tomorrow.",
					"User's new message: I ran today!")
			}),
		).Return("Great job getting back on track.", nil)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		chatRepo.On("Save", txCtx, mock.MatchedBy(func(msg *domain.ChatMessage) bool {
			return msg.Role() == domain.RoleUser && msg.Content() == "I ran today!"
		})).Return(nil).Once()
		chatRepo.On("Save", txCtx, mock.MatchedBy(func(msg *domain.ChatMessage) bool {
			return msg.Role() == domain.RoleAssistant && msg.Content() == "Great job getting back on track."
		})).Return(nil).Once()

		result, err := handler.Handle(ctx, SendMessageCommand{UserID: userID, Message: "I ran today!"})

		require.NoError(t, err)
		assert.Equal(t, "Great job getting back on track.", result.Response)
		assert.NotEqual(t, uuid.Nil, result.MessageID)

		chatRepo.AssertExpectations(t)
		llm.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects a blank message before any lookup", func(t *testing.T) {
		handler, _, profileRepo, _, _, _, llm, _ := newHandler()

		result, err := handler.Handle(context.Background(), SendMessageCommand{UserID: userID, Message: "  "})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
		profileRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		handler, _, profileRepo, _, _, _, _, _ := newHandler()

		ctx := context.Background()
		profileRepo.On("FindByID", ctx, userID).Return(nil, nil)

		result, err := handler.Handle(ctx, SendMessageCommand{UserID: userID, Message: "hello"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, identityDomain.ErrProfileNotFound)
	})

	t.Run("nothing is saved when the model fails", func(t *testing.T) {
		handler, chatRepo, profileRepo, habitRepo, taskRepo, journalRepo, llm, uow := newHandler()

		ctx := context.Background()
		profileRepo.On("FindByID", ctx, userID).Return(testProfile(userID), nil)
		habitRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*habitsDomain.HabitLog{}, nil)
		taskRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*planningDomain.Task{}, nil)
		journalRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return(nil, nil)
		chatRepo.On("ListRecent", ctx, userID, DefaultChatHistoryLimit).Return([]*domain.ChatMessage{}, nil)
		llm.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errors.New("model down"))

		result, err := handler.Handle(ctx, SendMessageCommand{UserID: userID, Message: "hello"})

		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "model down")
		chatRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("honors the configured history window", func(t *testing.T) {
		chatRepo := new(mockChatRepo)
		profileRepo := new(mockProfileRepo)
		habitRepo := new(mockHabitRepo)
		taskRepo := new(mockTaskRepo)
		journalRepo := new(mockJournalRepo)
		llm := new(mockLLM)
		uow := new(mockUnitOfWork)
		handler := NewSendMessageHandler(chatRepo, profileRepo, habitRepo, taskRepo, journalRepo, llm, uow, 3)

		ctx := context.Background()
		profileRepo.On("FindByID", ctx, userID).Return(testProfile(userID), nil)
		habitRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*habitsDomain.HabitLog{}, nil)
		taskRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return([]*planningDomain.Task{}, nil)
		journalRepo.On("FindByUserAndDay", ctx, userID, mock.AnythingOfType("domain.Day")).Return(nil, nil)
		chatRepo.On("ListRecent", ctx, userID, 3).Return([]*domain.ChatMessage{}, nil)
		llm.On("Complete", ctx, mock.Anything, mock.Anything).Return("", errors.New("model down"))

		_, err := handler.Handle(ctx, SendMessageCommand{UserID: userID, Message: "hello"})

		assert.Error(t, err)
		chatRepo.AssertExpectations(t)
	})
}

func containsAll(s string, parts ...string) bool {
	for _, part := range parts {
		if !strings.Contains(s, part) {
			return false
		}
	}
	return true
}
