package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

// ErrAnalysisNotFound is returned when no analysis exists for a day.
var ErrAnalysisNotFound = errors.New("analysis not found")

// ChatRepository persists the conversation between user and coach.
type ChatRepository interface {
	Save(ctx context.Context, msg *ChatMessage) error
	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*ChatMessage, error)
}

// AnalysisRepository persists daily analyses, one row per (user, day).
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *DailyAnalysis) error
	// FindByUserAndDay finds the analysis for a day, or nil.
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*DailyAnalysis, error)
}
