package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/ledger/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteLedgerRepository implements domain.Repository using SQLite.
type SQLiteLedgerRepository struct {
	db *sql.DB
}

// NewSQLiteLedgerRepository creates a new SQLite ledger repository.
func NewSQLiteLedgerRepository(db *sql.DB) *SQLiteLedgerRepository {
	return &SQLiteLedgerRepository{db: db}
}

// Append stores a point event.
func (r *SQLiteLedgerRepository) Append(ctx context.Context, event *domain.PointEvent) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := execer.ExecContext(ctx, `
		INSERT INTO point_events (id, user_id, amount, reason, occurred_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		event.ID().String(),
		event.UserID().String(),
		event.Amount(),
		event.Reason(),
		event.OccurredAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// SumByUser returns the user's current point balance.
func (r *SQLiteLedgerRepository) SumByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	var total int
	err := execer.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM point_events WHERE user_id = ?
	`, userID.String()).Scan(&total)
	return total, err
}

// ListRecent returns the user's most recent events, newest first.
func (r *SQLiteLedgerRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PointEvent, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, amount, reason, occurred_at
		FROM point_events
		WHERE user_id = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.PointEvent, 0)
	for rows.Next() {
		var (
			idStr, uidStr, reason, occurredAt string
			amount                            int
		)
		if err := rows.Scan(&idStr, &uidStr, &amount, &reason, &occurredAt); err != nil {
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
		at, err := time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, err
		}
		events = append(events, domain.RehydratePointEvent(id, uid, amount, reason, at))
	}
	return events, rows.Err()
}
