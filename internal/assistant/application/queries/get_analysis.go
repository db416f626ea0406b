package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// GetAnalysisQuery contains the parameters for fetching a day's analysis.
type GetAnalysisQuery struct {
	UserID uuid.UUID
	Day    string
}

// AnalysisDTO is the data transfer object for a daily analysis.
type AnalysisDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Day             string    `json:"date"`
	Summary         string    `json:"summary"`
	Achievements    []string  `json:"achievements"`
	Improvements    []string  `json:"improvements"`
	Recommendations []string  `json:"recommendations"`
	OverallScore    int       `json:"overall_score"`
	PointsEarned    int       `json:"points_earned"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetAnalysisHandler handles the GetAnalysisQuery.
type GetAnalysisHandler struct {
	analysisRepo domain.AnalysisRepository
}

// NewGetAnalysisHandler creates a new GetAnalysisHandler.
func NewGetAnalysisHandler(analysisRepo domain.AnalysisRepository) *GetAnalysisHandler {
	return &GetAnalysisHandler{analysisRepo: analysisRepo}
}

// Handle executes the GetAnalysisQuery.
func (h *GetAnalysisHandler) Handle(ctx context.Context, query GetAnalysisQuery) (*AnalysisDTO, error) {
	day, err := sharedDomain.ParseDay(query.Day)
	if err != nil {
		return nil, err
	}

	analysis, err := h.analysisRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, domain.ErrAnalysisNotFound
	}

	dto := ToAnalysisDTO(analysis)
	return &dto, nil
}

// ToAnalysisDTO converts a daily analysis to its DTO.
func ToAnalysisDTO(a *domain.DailyAnalysis) AnalysisDTO {
	return AnalysisDTO{
		ID:              a.ID(),
		UserID:          a.UserID(),
		Day:             a.Day().String(),
		Summary:         a.Summary(),
		Achievements:    a.Achievements(),
		Improvements:    a.Improvements(),
		Recommendations: a.Recommendations(),
		OverallScore:    a.OverallScore(),
		PointsEarned:    a.PointsEarned(),
		CreatedAt:       a.CreatedAt(),
	}
}
