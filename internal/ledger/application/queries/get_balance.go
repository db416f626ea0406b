package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/ledger/domain"
)

// PointEventDTO is the read model for a single point award.
type PointEventDTO struct {
	ID         uuid.UUID `json:"id"`
	Amount     int       `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BalanceDTO is the read model for a user's point balance.
type BalanceDTO struct {
	UserID uuid.UUID       `json:"user_id"`
	Total  int             `json:"total"`
	Recent []PointEventDTO `json:"recent"`
}

// GetBalanceQuery contains the parameters for reading a point balance.
type GetBalanceQuery struct {
	UserID      uuid.UUID
	RecentLimit int
}

// GetBalanceHandler handles the GetBalanceQuery.
type GetBalanceHandler struct {
	ledgerRepo domain.Repository
}

// NewGetBalanceHandler creates a new GetBalanceHandler.
func NewGetBalanceHandler(ledgerRepo domain.Repository) *GetBalanceHandler {
	return &GetBalanceHandler{ledgerRepo: ledgerRepo}
}

// Handle executes the GetBalanceQuery.
func (h *GetBalanceHandler) Handle(ctx context.Context, query GetBalanceQuery) (*BalanceDTO, error) {
	total, err := h.ledgerRepo.SumByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	limit := query.RecentLimit
	if limit <= 0 {
		limit = 20
	}
	events, err := h.ledgerRepo.ListRecent(ctx, query.UserID, limit)
	if err != nil {
		return nil, err
	}

	recent := make([]PointEventDTO, 0, len(events))
	for _, e := range events {
		recent = append(recent, PointEventDTO{
			ID:         e.ID(),
			Amount:     e.Amount(),
			Reason:     e.Reason(),
			OccurredAt: e.OccurredAt(),
		})
	}

	return &BalanceDTO{UserID: query.UserID, Total: total, Recent: recent}, nil
}
