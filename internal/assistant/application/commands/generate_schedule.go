package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/application"
	"github.com/hiteshchouriya/rik/internal/assistant/application/services"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	planningCommands "github.com/hiteshchouriya/rik/internal/planning/application/commands"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// GenerateScheduleCommand contains the data needed to plan a day.
type GenerateScheduleCommand struct {
	UserID uuid.UUID
	Day    string // empty means today
}

// GenerateScheduleResult contains the installed plan's item IDs.
type GenerateScheduleResult struct {
	Day     string
	ItemIDs []uuid.UUID
}

// GenerateScheduleHandler handles the GenerateScheduleCommand. The model
// drafts a time-blocked plan around the user's profile and existing tasks;
// installing it replaces whatever plan the day had before.
type GenerateScheduleHandler struct {
	profileRepo identityDomain.Repository
	taskRepo    planningDomain.TaskRepository
	replace     *planningCommands.ReplaceScheduleHandler
	llm         application.LLMClient
}

// NewGenerateScheduleHandler creates a new GenerateScheduleHandler.
func NewGenerateScheduleHandler(
	profileRepo identityDomain.Repository,
	taskRepo planningDomain.TaskRepository,
	replace *planningCommands.ReplaceScheduleHandler,
	llm application.LLMClient,
) *GenerateScheduleHandler {
	return &GenerateScheduleHandler{
		profileRepo: profileRepo,
		taskRepo:    taskRepo,
		replace:     replace,
		llm:         llm,
	}
}

// Handle executes the GenerateScheduleCommand.
func (h *GenerateScheduleHandler) Handle(ctx context.Context, cmd GenerateScheduleCommand) (*GenerateScheduleResult, error) {
	day := sharedDomain.Today()
	if cmd.Day != "" {
		var err error
		if day, err = sharedDomain.ParseDay(cmd.Day); err != nil {
			return nil, err
		}
	}

	profile, err := h.profileRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, identityDomain.ErrProfileNotFound
	}

	tasks, err := h.taskRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}

	prompt := services.BuildSchedulePrompt(profileContext(profile), day.String(), taskStatuses(tasks))

	response, err := h.llm.Complete(ctx, services.ScheduleSystemMessage, prompt)
	if err != nil {
		return nil, err
	}

	items, err := services.ParseScheduleResponse(response)
	if err != nil {
		return nil, err
	}

	inputs := make([]planningCommands.ScheduleItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, planningCommands.ScheduleItemInput{
			StartTime:       item.StartTime,
			Title:           item.Title,
			Description:     item.Description,
			DurationMinutes: item.DurationMinutes,
			Category:        item.Category,
		})
	}

	replaced, err := h.replace.Handle(ctx, planningCommands.ReplaceScheduleCommand{
		UserID: cmd.UserID,
		Day:    day.String(),
		Items:  inputs,
	})
	if err != nil {
		return nil, err
	}

	return &GenerateScheduleResult{Day: day.String(), ItemIDs: replaced.ItemIDs}, nil
}
