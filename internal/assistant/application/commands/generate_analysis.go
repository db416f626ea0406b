package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/application"
	"github.com/hiteshchouriya/rik/internal/assistant/application/services"
	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	habitsDomain "github.com/hiteshchouriya/rik/internal/habits/domain"
	identityDomain "github.com/hiteshchouriya/rik/internal/identity/domain"
	journalDomain "github.com/hiteshchouriya/rik/internal/journal/domain"
	ledgerDomain "github.com/hiteshchouriya/rik/internal/ledger/domain"
	planningDomain "github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedApplication "github.com/hiteshchouriya/rik/internal/shared/application"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	"github.com/hiteshchouriya/rik/internal/shared/infrastructure/outbox"
)

// GenerateAnalysisCommand contains the data needed to review a day.
type GenerateAnalysisCommand struct {
	UserID uuid.UUID
	Day    string // empty means today
}

// GenerateAnalysisResult contains the generated review.
type GenerateAnalysisResult struct {
	AnalysisID      uuid.UUID
	Summary         string
	Achievements    []string
	Improvements    []string
	Recommendations []string
	OverallScore    int
	PointsAwarded   int
	Parsed          bool
}

// GenerateAnalysisHandler handles the GenerateAnalysisCommand. Regenerating
// an existing day's analysis overwrites it; the score bonus is paid at most
// once per (user, day).
type GenerateAnalysisHandler struct {
	analysisRepo domain.AnalysisRepository
	profileRepo  identityDomain.Repository
	habitRepo    habitsDomain.Repository
	taskRepo     planningDomain.TaskRepository
	journalRepo  journalDomain.Repository
	ledgerRepo   ledgerDomain.Repository
	outboxRepo   outbox.Repository
	llm          application.LLMClient
	uow          sharedApplication.UnitOfWork
	cache        sharedApplication.ReadCacheInvalidator
}

// NewGenerateAnalysisHandler creates a new GenerateAnalysisHandler. cache may be nil.
func NewGenerateAnalysisHandler(
	analysisRepo domain.AnalysisRepository,
	profileRepo identityDomain.Repository,
	habitRepo habitsDomain.Repository,
	taskRepo planningDomain.TaskRepository,
	journalRepo journalDomain.Repository,
	ledgerRepo ledgerDomain.Repository,
	outboxRepo outbox.Repository,
	llm application.LLMClient,
	uow sharedApplication.UnitOfWork,
	cache sharedApplication.ReadCacheInvalidator,
) *GenerateAnalysisHandler {
	return &GenerateAnalysisHandler{
		analysisRepo: analysisRepo,
		profileRepo:  profileRepo,
		habitRepo:    habitRepo,
		taskRepo:     taskRepo,
		journalRepo:  journalRepo,
		ledgerRepo:   ledgerRepo,
		outboxRepo:   outboxRepo,
		llm:          llm,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the GenerateAnalysisCommand.
func (h *GenerateAnalysisHandler) Handle(ctx context.Context, cmd GenerateAnalysisCommand) (*GenerateAnalysisResult, error) {
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

	habits, err := h.habitRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}
	dailyLog, err := h.journalRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}

	prompt := services.BuildAnalysisPrompt(profileContext(profile), habitStatuses(habits), taskStatuses(tasks), reflectionContext(dailyLog))

	response, err := h.llm.Complete(ctx, services.AnalysisSystemMessage, prompt)
	if err != nil {
		return nil, err
	}

	payload, parseErr := services.ParseAnalysisResponse(response)
	parsed := parseErr == nil
	if !parsed {
		payload = services.FallbackAnalysis(response)
	}

	content := domain.AnalysisContent{
		Summary:         payload.Summary,
		Achievements:    payload.Achievements,
		Improvements:    payload.Improvements,
		Recommendations: payload.Recommendations,
		OverallScore:    clampScore(payload.OverallScore),
	}

	var result *GenerateAnalysisResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		analysis, err := h.analysisRepo.FindByUserAndDay(txCtx, cmd.UserID, day)
		if err != nil {
			return err
		}

		if analysis != nil {
			if err := analysis.Revise(content); err != nil {
				return err
			}
		} else {
			if analysis, err = domain.NewDailyAnalysis(cmd.UserID, day, content); err != nil {
				return err
			}
		}

		points := 0
		if analysis.OverallScore() >= ledgerDomain.AnalysisScoreThreshold && analysis.AwardPoints(ledgerDomain.PointsStrongAnalysis) {
			award, err := ledgerDomain.NewPointEvent(cmd.UserID, ledgerDomain.PointsStrongAnalysis, ledgerDomain.ReasonStrongAnalysis)
			if err != nil {
				return err
			}
			if err := h.ledgerRepo.Append(txCtx, award); err != nil {
				return err
			}
			points = award.Amount()
		}

		if err := h.analysisRepo.Save(txCtx, analysis); err != nil {
			return err
		}

		events := analysis.DomainEvents()
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(cmd.UserID))

		msgs, err := outbox.FromEvents(events)
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		result = &GenerateAnalysisResult{
			AnalysisID:      analysis.ID(),
			Summary:         analysis.Summary(),
			Achievements:    analysis.Achievements(),
			Improvements:    analysis.Improvements(),
			Recommendations: analysis.Recommendations(),
			OverallScore:    analysis.OverallScore(),
			PointsAwarded:   points,
			Parsed:          parsed,
		}
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

func habitStatuses(habits []*habitsDomain.HabitLog) []services.HabitStatus {
	statuses := make([]services.HabitStatus, 0, len(habits))
	for _, h := range habits {
		statuses = append(statuses, services.HabitStatus{Name: h.HabitName(), Completed: h.Completed()})
	}
	return statuses
}

func taskStatuses(tasks []*planningDomain.Task) []services.TaskStatus {
	statuses := make([]services.TaskStatus, 0, len(tasks))
	for _, t := range tasks {
		statuses = append(statuses, services.TaskStatus{Title: t.Title(), Completed: t.Completed()})
	}
	return statuses
}

func reflectionContext(log *journalDomain.DailyLog) *services.ReflectionContext {
	if log == nil {
		return nil
	}
	return &services.ReflectionContext{
		Mood:         (*int)(log.Mood()),
		Energy:       (*int)(log.EnergyLevel()),
		Productivity: (*int)(log.Productivity()),
		Notes:        log.Notes(),
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
