package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/ledger/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresLedgerRepository implements domain.Repository using PostgreSQL.
type PostgresLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLedgerRepository creates a new PostgreSQL ledger repository.
func NewPostgresLedgerRepository(pool *pgxpool.Pool) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{pool: pool}
}

// Append stores a point event.
func (r *PostgresLedgerRepository) Append(ctx context.Context, event *domain.PointEvent) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO point_events (id, user_id, amount, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		event.ID(),
		event.UserID(),
		event.Amount(),
		event.Reason(),
		event.OccurredAt(),
	)
	return err
}

// SumByUser returns the user's current point balance.
func (r *PostgresLedgerRepository) SumByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var total int
	err := exec.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM point_events WHERE user_id = $1
	`, userID).Scan(&total)
	return total, err
}

// ListRecent returns the user's most recent events, newest first.
func (r *PostgresLedgerRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PointEvent, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, `
		SELECT id, user_id, amount, reason, occurred_at
		FROM point_events
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.PointEvent, 0)
	for rows.Next() {
		var (
			id, uid    uuid.UUID
			amount     int
			reason     string
			occurredAt time.Time
		)
		if err := rows.Scan(&id, &uid, &amount, &reason, &occurredAt); err != nil {
			return nil, err
		}
		events = append(events, domain.RehydratePointEvent(id, uid, amount, reason, occurredAt))
	}
	return events, rows.Err()
}
