package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresChatRepository implements domain.ChatRepository using PostgreSQL.
type PostgresChatRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresChatRepository creates a new PostgreSQL chat repository.
func NewPostgresChatRepository(pool *pgxpool.Pool) *PostgresChatRepository {
	return &PostgresChatRepository{pool: pool}
}

// Save persists a chat message. Messages are append-only.
func (r *PostgresChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		msg.ID(),
		msg.UserID(),
		string(msg.Role()),
		msg.Content(),
		msg.CreatedAt(),
	)
	return err
}

// ListRecent returns up to limit messages for a user, newest first.
func (r *PostgresChatRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*domain.ChatMessage, 0)
	for rows.Next() {
		var (
			id, rowUserID uuid.UUID
			role, content string
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &rowUserID, &role, &content, &createdAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, domain.RehydrateChatMessage(id, rowUserID, domain.Role(role), content, createdAt))
	}
	return msgs, rows.Err()
}
