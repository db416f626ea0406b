package commands

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/application"
	"github.com/hiteshchouriya/rik/internal/assistant/application/services"
	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	habitsDomain "github.com/hiteshchouriya/rik/internal/habits/domain"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	journalDomain "github.com/hiteshchouriya/rik/internal/journal/domain"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// DefaultChatHistoryLimit is how many prior messages are folded into the
// prompt when no limit is configured.
const DefaultChatHistoryLimit = 20

// SendMessageCommand contains the data needed to chat with the coach.
type SendMessageCommand struct {
	UserID  uuid.UUID
	Message string
}

// SendMessageResult contains the coach's reply.
type SendMessageResult struct {
	Response  string
	MessageID uuid.UUID
}

// SendMessageHandler handles the SendMessageCommand. It grounds the model in
// the user's profile, today's progress and the recent conversation, then
// persists both sides of the exchange.
type SendMessageHandler struct {
	chatRepo     domain.ChatRepository
	profileRepo  identityDomain.Repository
	habitRepo    habitsDomain.Repository
	taskRepo     planningDomain.TaskRepository
	journalRepo  journalDomain.Repository
	llm          application.LLMClient
	uow          sharedApplication.UnitOfWork
	historyLimit int
}

// NewSendMessageHandler creates a new SendMessageHandler. historyLimit caps
// how many prior messages the prompt carries; zero or negative falls back to
// DefaultChatHistoryLimit.
func NewSendMessageHandler(
	chatRepo domain.ChatRepository,
	profileRepo identityDomain.Repository,
	habitRepo habitsDomain.Repository,
	taskRepo planningDomain.TaskRepository,
	journalRepo journalDomain.Repository,
	llm application.LLMClient,
	uow sharedApplication.UnitOfWork,
	historyLimit int,
) *SendMessageHandler {
	if historyLimit <= 0 {
		historyLimit = DefaultChatHistoryLimit
	}
	return &SendMessageHandler{
		chatRepo:     chatRepo,
		profileRepo:  profileRepo,
		habitRepo:    habitRepo,
		taskRepo:     taskRepo,
		journalRepo:  journalRepo,
		llm:          llm,
		uow:          uow,
		historyLimit: historyLimit,
	}
}

// Handle executes the SendMessageCommand.
func (h *SendMessageHandler) Handle(ctx context.Context, cmd SendMessageCommand) (*SendMessageResult, error) {
	if strings.TrimSpace(cmd.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	profile, err := h.profileRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, identityDomain.ErrProfileNotFound
	}

	today := sharedDomain.Today()

	habits, err := h.habitRepo.FindByUserAndDay(ctx, cmd.UserID, today)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.FindByUserAndDay(ctx, cmd.UserID, today)
	if err != nil {
		return nil, err
	}
	dailyLog, err := h.journalRepo.FindByUserAndDay(ctx, cmd.UserID, today)
	if err != nil {
		return nil, err
	}

	recent, err := h.chatRepo.ListRecent(ctx, cmd.UserID, h.historyLimit)
	if err != nil {
		return nil, err
	}

	systemPrompt := services.BuildChatSystemPrompt(profileContext(profile), todayProgress(habits, tasks, dailyLog))
	message := services.BuildChatMessage(chatTurns(recent), cmd.Message)

	response, err := h.llm.Complete(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	userMsg, err := domain.NewChatMessage(cmd.UserID, domain.RoleUser, cmd.Message)
	if err != nil {
		return nil, err
	}
	assistantMsg, err := domain.NewChatMessage(cmd.UserID, domain.RoleAssistant, response)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.chatRepo.Save(txCtx, userMsg); err != nil {
			return err
		}
		return h.chatRepo.Save(txCtx, assistantMsg)
	})
	if err != nil {
		return nil, err
	}

	return &SendMessageResult{Response: response, MessageID: assistantMsg.ID()}, nil
}

func profileContext(p *identityDomain.Profile) services.ProfileContext {
	schedule := p.DailySchedule()
	return services.ProfileContext{
		Name:          p.Name(),
		Age:           p.Age(),
		CurrentRole:   p.CurrentRole(),
		GoalRole:      p.GoalRole(),
		WakeTime:      schedule.WakeTime,
		SleepTime:     schedule.SleepTime,
		WorkStart:     schedule.WorkStart,
		WorkEnd:       schedule.WorkEnd,
		Mode:          string(p.Mode()),
		HabitsToBuild: p.HabitsToBuild(),
		HabitsToQuit:  p.HabitsToQuit(),
		Goals:         p.Goals(),
	}
}

func todayProgress(habits []*habitsDomain.HabitLog, tasks []*planningDomain.Task, dailyLog *journalDomain.DailyLog) services.TodayProgress {
	progress := services.TodayProgress{
		HabitsLogged: len(habits),
		TasksTotal:   len(tasks),
	}
	for _, h := range habits {
		if h.Completed() {
			progress.HabitsCompleted++
		}
	}
	for _, t := range tasks {
		if t.Completed() {
			progress.TasksCompleted++
		}
	}
	if dailyLog != nil {
		progress.Mood = (*int)(dailyLog.Mood())
		progress.Energy = (*int)(dailyLog.EnergyLevel())
	}
	return progress
}

// chatTurns converts newest-first history into chronological prompt turns.
func chatTurns(recent []*domain.ChatMessage) []services.ChatTurn {
	turns := make([]services.ChatTurn, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		turns = append(turns, services.ChatTurn{
			Role:    string(recent[i].Role()),
			Content: recent[i].Content(),
		})
	}
	return turns
}
