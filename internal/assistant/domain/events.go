package domain

import (
	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

const analysisAggregateType = "DailyAnalysis"

// AnalysisGenerated is emitted when a daily analysis is created or revised.
type AnalysisGenerated struct {
	sharedDomain.BaseEvent
	AnalysisID   uuid.UUID `json:"analysis_id"`
	UserID       uuid.UUID `json:"user_id"`
	Day          string    `json:"day"`
	OverallScore int       `json:"overall_score"`
}

// NewAnalysisGenerated creates an AnalysisGenerated event.
func NewAnalysisGenerated(a *DailyAnalysis) *AnalysisGenerated {
	return &AnalysisGenerated{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), analysisAggregateType, "assistant.analysis.generated"),
		AnalysisID:   a.ID(),
		UserID:       a.UserID(),
		Day:          a.Day().String(),
		OverallScore: a.OverallScore(),
	}
}
