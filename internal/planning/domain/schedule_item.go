package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

var (
	ErrScheduleEmptyTitle      = errors.New("schedule item title cannot be empty")
	ErrScheduleInvalidCategory = errors.New("invalid schedule category")
	ErrScheduleInvalidDuration = errors.New("schedule item duration must be positive")
)

// Category classifies a block of a generated day plan.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"
	CategoryRest     Category = "rest"
)

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryHealth, CategoryLearning, CategoryPersonal, CategoryRest:
		return true
	default:
		return false
	}
}

// ScheduleItem is one timed block of a day's generated plan.
type ScheduleItem struct {
	sharedDomain.BaseAggregateRoot
	userID          uuid.UUID
	day             sharedDomain.Day
	startTime       string
	title           string
	description     string
	durationMinutes int
	category        Category
	completed       bool
}

// NewScheduleItem creates a new schedule item.
func NewScheduleItem(userID uuid.UUID, day sharedDomain.Day, startTime, title, description string, durationMinutes int, category Category) (*ScheduleItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrScheduleEmptyTitle
	}
	if durationMinutes <= 0 {
		return nil, ErrScheduleInvalidDuration
	}
	if !category.IsValid() {
		return nil, ErrScheduleInvalidCategory
	}

	return &ScheduleItem{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               day,
		startTime:         startTime,
		title:             title,
		description:       description,
		durationMinutes:   durationMinutes,
		category:          category,
	}, nil
}

// MarkCompleted toggles the item done. Completing twice is a no-op.
func (s *ScheduleItem) MarkCompleted() {
	if s.completed {
		return
	}
	s.completed = true
	s.Touch()
}

// Getters
func (s *ScheduleItem) UserID() uuid.UUID     { return s.userID }
func (s *ScheduleItem) Day() sharedDomain.Day { return s.day }
func (s *ScheduleItem) StartTime() string     { return s.startTime }
func (s *ScheduleItem) Title() string         { return s.title }
func (s *ScheduleItem) Description() string   { return s.description }
func (s *ScheduleItem) DurationMinutes() int  { return s.durationMinutes }
func (s *ScheduleItem) Category() Category    { return s.category }
func (s *ScheduleItem) Completed() bool       { return s.completed }

// RehydrateScheduleItem recreates a schedule item from persisted state.
func RehydrateScheduleItem(
	id, userID uuid.UUID,
	day sharedDomain.Day,
	startTime, title, description string,
	durationMinutes int,
	category Category,
	completed bool,
	createdAt, updatedAt time.Time,
) *ScheduleItem {
	return &ScheduleItem{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		day:               day,
		startTime:         startTime,
		title:             title,
		description:       description,
		durationMinutes:   durationMinutes,
		category:          category,
		completed:         completed,
	}
}
