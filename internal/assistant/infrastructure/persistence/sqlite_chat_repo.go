package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteChatRepository implements domain.ChatRepository using SQLite.
type SQLiteChatRepository struct {
	db *sql.DB
}

// NewSQLiteChatRepository creates a new SQLite chat repository.
func NewSQLiteChatRepository(db *sql.DB) *SQLiteChatRepository {
	return &SQLiteChatRepository{db: db}
}

// Save persists a chat message. Messages are append-only.
func (r *SQLiteChatRepository) Save(ctx context.Context, msg *domain.ChatMessage) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := execer.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		msg.ID().String(),
		msg.UserID().String(),
		string(msg.Role()),
		msg.Content(),
		msg.CreatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ListRecent returns up to limit messages for a user, newest first.
func (r *SQLiteChatRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.ChatMessage, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*domain.ChatMessage, 0)
	for rows.Next() {
		var idStr, uidStr, role, content, createdAt string
		if err := rows.Scan(&idStr, &uidStr, &role, &content, &createdAt); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			return nil, err
		}
		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}

		msgs = append(msgs, domain.RehydrateChatMessage(id, uid, domain.Role(role), content, created))
	}
	return msgs, rows.Err()
}
