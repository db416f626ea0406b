package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

var (
	ErrProfileEmptyName   = errors.New("profile name cannot be empty")
	ErrProfileInvalidAge  = errors.New("age must be positive")
	ErrProfileInvalidMode = errors.New("invalid assistant mode")
	ErrProfileInvalidTime = errors.New("time must be in HH:MM form")
)

// AssistantMode controls the coaching tone used by the assistant.
type AssistantMode string

const (
	ModeStrict   AssistantMode = "strict"
	ModeModerate AssistantMode = "moderate"
	ModeCasual   AssistantMode = "casual"
)

// IsValid checks if the assistant mode is valid.
func (m AssistantMode) IsValid() bool {
	switch m {
	case ModeStrict, ModeModerate, ModeCasual:
		return true
	default:
		return false
	}
}

// Schedule holds the user's daily anchor times as "HH:MM" strings.
type Schedule struct {
	WakeTime  string
	SleepTime string
	WorkStart string
	WorkEnd   string
}

func (s Schedule) validate() error {
	for _, v := range []string{s.WakeTime, s.SleepTime, s.WorkStart, s.WorkEnd} {
		if _, err := time.Parse("15:04", v); err != nil {
			return ErrProfileInvalidTime
		}
	}
	return nil
}

// Profile is the user's life-coaching profile: who they are, what they are
// working toward, and which habits they are building or quitting.
type Profile struct {
	sharedDomain.BaseAggregateRoot
	name                string
	age                 int
	currentRole         string
	goalRole            string
	schedule            Schedule
	mode                AssistantMode
	habitsToBuild       []string
	habitsToQuit        []string
	goals               []string
	onboardingCompleted bool
}

// ProfileAttrs carries the mutable attributes of a profile.
type ProfileAttrs struct {
	Name          string
	Age           int
	CurrentRole   string
	GoalRole      string
	Schedule      Schedule
	Mode          AssistantMode
	HabitsToBuild []string
	HabitsToQuit  []string
	Goals         []string
}

func (a ProfileAttrs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrProfileEmptyName
	}
	if a.Age <= 0 {
		return ErrProfileInvalidAge
	}
	if !a.Mode.IsValid() {
		return ErrProfileInvalidMode
	}
	return a.Schedule.validate()
}

// NewProfile creates a new profile. Creation completes onboarding.
func NewProfile(attrs ProfileAttrs) (*Profile, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	p := &Profile{
		BaseAggregateRoot:   sharedDomain.NewBaseAggregateRoot(),
		onboardingCompleted: true,
	}
	p.apply(attrs)
	p.AddDomainEvent(NewProfileCreated(p))
	return p, nil
}

// Update replaces the mutable attributes of the profile.
func (p *Profile) Update(attrs ProfileAttrs) error {
	if err := attrs.validate(); err != nil {
		return err
	}
	p.apply(attrs)
	p.Touch()
	p.AddDomainEvent(NewProfileUpdated(p))
	return nil
}

func (p *Profile) apply(attrs ProfileAttrs) {
	p.name = strings.TrimSpace(attrs.Name)
	p.age = attrs.Age
	p.currentRole = attrs.CurrentRole
	p.goalRole = attrs.GoalRole
	p.schedule = attrs.Schedule
	p.mode = attrs.Mode
	p.habitsToBuild = cloneStrings(attrs.HabitsToBuild)
	p.habitsToQuit = cloneStrings(attrs.HabitsToQuit)
	p.goals = cloneStrings(attrs.Goals)
}

// Getters
func (p *Profile) Name() string              { return p.name }
func (p *Profile) Age() int                  { return p.age }
func (p *Profile) CurrentRole() string       { return p.currentRole }
func (p *Profile) GoalRole() string          { return p.goalRole }
func (p *Profile) DailySchedule() Schedule   { return p.schedule }
func (p *Profile) Mode() AssistantMode       { return p.mode }
func (p *Profile) HabitsToBuild() []string   { return p.habitsToBuild }
func (p *Profile) HabitsToQuit() []string    { return p.habitsToQuit }
func (p *Profile) Goals() []string           { return p.goals }
func (p *Profile) OnboardingCompleted() bool { return p.onboardingCompleted }

// AllHabits returns the build and quit habit names in declaration order.
func (p *Profile) AllHabits() []string {
	all := make([]string, 0, len(p.habitsToBuild)+len(p.habitsToQuit))
	all = append(all, p.habitsToBuild...)
	all = append(all, p.habitsToQuit...)
	return all
}

// RehydrateProfile recreates a profile from persisted state without events.
func RehydrateProfile(
	id uuid.UUID,
	attrs ProfileAttrs,
	onboardingCompleted bool,
	createdAt, updatedAt time.Time,
) *Profile {
	p := &Profile{
		BaseAggregateRoot:   sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		onboardingCompleted: onboardingCompleted,
	}
	p.apply(attrs)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
