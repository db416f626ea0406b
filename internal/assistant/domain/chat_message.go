package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message content cannot be empty")
	ErrInvalidChatRole = errors.New("invalid chat role")
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatMessage is one turn of the coaching conversation.
type ChatMessage struct {
	id        uuid.UUID
	userID    uuid.UUID
	role      Role
	content   string
	createdAt time.Time
}

// NewChatMessage creates a chat message.
func NewChatMessage(userID uuid.UUID, role Role, content string) (*ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if !role.IsValid() {
		return nil, ErrInvalidChatRole
	}
	return &ChatMessage{
		id:        uuid.New(),
		userID:    userID,
		role:      role,
		content:   content,
		createdAt: time.Now(),
	}, nil
}

// Getters
func (m *ChatMessage) ID() uuid.UUID        { return m.id }
func (m *ChatMessage) UserID() uuid.UUID    { return m.userID }
func (m *ChatMessage) Role() Role           { return m.role }
func (m *ChatMessage) Content() string      { return m.content }
func (m *ChatMessage) CreatedAt() time.Time { return m.createdAt }

// RehydrateChatMessage recreates a chat message from persisted state.
func RehydrateChatMessage(id, userID uuid.UUID, role Role, content string, createdAt time.Time) *ChatMessage {
	return &ChatMessage{
		id:        id,
		userID:    userID,
		role:      role,
		content:   content,
		createdAt: createdAt,
	}
}
