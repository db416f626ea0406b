package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// ErrScoreOutOfRange is returned when an overall score is not 0-100.
var ErrScoreOutOfRange = errors.New("overall score must be between 0 and 100")

// AnalysisContent is the structured review produced for one day.
type AnalysisContent struct {
	Summary         string
	Achievements    []string
	Improvements    []string
	Recommendations []string
	OverallScore    int
}

func (c AnalysisContent) validate() error {
	if c.OverallScore < 0 || c.OverallScore > 100 {
		return ErrScoreOutOfRange
	}
	return nil
}

// DailyAnalysis is the coach's end-of-day review. There is at most one per
// (user, day); regenerating overwrites the previous review.
type DailyAnalysis struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	day          sharedDomain.Day
	content      AnalysisContent
	pointsEarned int
}

// NewDailyAnalysis creates a new analysis for a day.
func NewDailyAnalysis(userID uuid.UUID, day sharedDomain.Day, content AnalysisContent) (*DailyAnalysis, error) {
	if err := content.validate(); err != nil {
		return nil, err
	}

	a := &DailyAnalysis{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               day,
		content:           normalizeContent(content),
	}
	a.AddDomainEvent(NewAnalysisGenerated(a))
	return a, nil
}

// Revise overwrites the analysis content after regeneration. Points already
// earned stay put.
func (a *DailyAnalysis) Revise(content AnalysisContent) error {
	if err := content.validate(); err != nil {
		return err
	}
	a.content = normalizeContent(content)
	a.Touch()
	a.AddDomainEvent(NewAnalysisGenerated(a))
	return nil
}

// AwardPoints records the bonus earned by this analysis, once.
func (a *DailyAnalysis) AwardPoints(points int) bool {
	if a.pointsEarned > 0 || points <= 0 {
		return false
	}
	a.pointsEarned = points
	return true
}

// Getters
func (a *DailyAnalysis) UserID() uuid.UUID         { return a.userID }
func (a *DailyAnalysis) Day() sharedDomain.Day     { return a.day }
func (a *DailyAnalysis) Summary() string           { return a.content.Summary }
func (a *DailyAnalysis) Achievements() []string    { return a.content.Achievements }
func (a *DailyAnalysis) Improvements() []string    { return a.content.Improvements }
func (a *DailyAnalysis) Recommendations() []string { return a.content.Recommendations }
func (a *DailyAnalysis) OverallScore() int         { return a.content.OverallScore }
func (a *DailyAnalysis) PointsEarned() int         { return a.pointsEarned }

// RehydrateDailyAnalysis recreates an analysis from persisted state.
func RehydrateDailyAnalysis(
	id, userID uuid.UUID,
	day sharedDomain.Day,
	content AnalysisContent,
	pointsEarned int,
	createdAt, updatedAt time.Time,
) *DailyAnalysis {
	return &DailyAnalysis{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		day:               day,
		content:           normalizeContent(content),
		pointsEarned:      pointsEarned,
	}
}

func normalizeContent(c AnalysisContent) AnalysisContent {
	if c.Achievements == nil {
		c.Achievements = []string{}
	}
	if c.Improvements == nil {
		c.Improvements = []string{}
	}
	if c.Recommendations == nil {
		c.Recommendations = []string{}
	}
	return c
}
