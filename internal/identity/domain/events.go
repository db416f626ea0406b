package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
)

const aggregateType = "Profile"

// ProfileCreated is emitted when a profile is created.
type ProfileCreated struct {
	sharedDomain.BaseEvent
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
}

// NewProfileCreated creates a ProfileCreated event.
func NewProfileCreated(p *Profile) *ProfileCreated {
	return &ProfileCreated{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), aggregateType, "identity.profile.created"),
		ProfileID: p.ID(),
		Name:      p.Name(),
		Mode:      string(p.Mode()),
	}
}

// ProfileUpdated is emitted when a profile's attributes change.
type ProfileUpdated struct {
	sharedDomain.BaseEvent
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
}

// NewProfileUpdated creates a ProfileUpdated event.
func NewProfileUpdated(p *Profile) *ProfileUpdated {
	return &ProfileUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), aggregateType, "identity.profile.updated"),
		ProfileID: p.ID(),
		Name:      p.Name(),
		Mode:      string(p.Mode()),
	}
}
