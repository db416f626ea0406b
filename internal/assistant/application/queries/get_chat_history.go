package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
)

// DefaultHistoryLimit bounds a history fetch when no limit is given.
const DefaultHistoryLimit = 50

// GetChatHistoryQuery contains the parameters for fetching conversation history.
type GetChatHistoryQuery struct {
	UserID uuid.UUID
	Limit  int
}

// ChatMessageDTO is the data transfer object for a chat message.
type ChatMessageDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GetChatHistoryHandler handles the GetChatHistoryQuery.
type GetChatHistoryHandler struct {
	chatRepo domain.ChatRepository
}

// NewGetChatHistoryHandler creates a new GetChatHistoryHandler.
func NewGetChatHistoryHandler(chatRepo domain.ChatRepository) *GetChatHistoryHandler {
	return &GetChatHistoryHandler{chatRepo: chatRepo}
}

// Handle executes the GetChatHistoryQuery. The newest messages within the
// limit are returned in chronological order.
func (h *GetChatHistoryHandler) Handle(ctx context.Context, query GetChatHistoryQuery) ([]ChatMessageDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	recent, err := h.chatRepo.ListRecent(ctx, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]ChatMessageDTO, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		dtos = append(dtos, ChatMessageDTO{
			ID:        msg.ID(),
			UserID:    msg.UserID(),
			Role:      string(msg.Role()),
			Content:   msg.Content(),
			CreatedAt: msg.CreatedAt(),
		})
	}
	return dtos, nil
}
