package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresScheduleRepository implements domain.ScheduleRepository using PostgreSQL.
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleRepository creates a new PostgreSQL schedule repository.
func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// scheduleItemRow represents a database row for schedule items.
type scheduleItemRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Day             string
	StartTime       string
	Title           string
	Description     string
	DurationMinutes int
	Category        string
	Completed       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const scheduleColumns = `id, user_id, day, start_time, title, description, duration_minutes, category, completed, created_at, updated_at`

const insertScheduleItemSQL = `
	INSERT INTO schedule_items (
		id, user_id, day, start_time, title, description, duration_minutes, category, completed, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET
		start_time = EXCLUDED.start_time,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		duration_minutes = EXCLUDED.duration_minutes,
		category = EXCLUDED.category,
		completed = EXCLUDED.completed,
		updated_at = EXCLUDED.updated_at
`

// ReplaceDay atomically swaps the plan for a day.
func (r *PostgresScheduleRepository) ReplaceDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day, items []*domain.ScheduleItem) error {
	if info, ok := sharedPersistence.TxInfoFromContext(ctx); ok {
		return r.replaceDayWithTx(ctx, info.Tx, userID, day, items)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.replaceDayWithTx(ctx, tx, userID, day, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresScheduleRepository) replaceDayWithTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID, day sharedDomain.Day, items []*domain.ScheduleItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM schedule_items WHERE user_id = $1 AND day = $2`, userID, string(day)); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, insertScheduleItemSQL, scheduleItemArgs(item)...); err != nil {
			return err
		}
	}
	return nil
}

// Save persists a single schedule item update.
func (r *PostgresScheduleRepository) Save(ctx context.Context, item *domain.ScheduleItem) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, insertScheduleItemSQL, scheduleItemArgs(item)...)
	return err
}

// FindByID finds a schedule item by its ID, or nil.
func (r *PostgresScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleItem, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_items WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row scheduleItemRow
	err := exec.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.UserID, &row.Day, &row.StartTime, &row.Title, &row.Description,
		&row.DurationMinutes, &row.Category, &row.Completed, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToScheduleItem(row)
}

// FindByUserAndDay finds the plan for a day ordered by start time.
func (r *PostgresScheduleRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.ScheduleItem, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_items WHERE user_id = $1 AND day = $2 ORDER BY start_time`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.ScheduleItem, 0)
	for rows.Next() {
		var row scheduleItemRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.Day, &row.StartTime, &row.Title, &row.Description,
			&row.DurationMinutes, &row.Category, &row.Completed, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item, err := rowToScheduleItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scheduleItemArgs(item *domain.ScheduleItem) []any {
	return []any{
		item.ID(),
		item.UserID(),
		string(item.Day()),
		item.StartTime(),
		item.Title(),
		item.Description(),
		item.DurationMinutes(),
		string(item.Category()),
		item.Completed(),
		item.CreatedAt(),
		item.UpdatedAt(),
	}
}

func rowToScheduleItem(row scheduleItemRow) (*domain.ScheduleItem, error) {
	day, err := sharedDomain.ParseDay(row.Day)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateScheduleItem(
		row.ID,
		row.UserID,
		day,
		row.StartTime,
		row.Title,
		row.Description,
		row.DurationMinutes,
		domain.Category(row.Category),
		row.Completed,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
