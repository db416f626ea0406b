package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/planning/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteScheduleRepository implements domain.ScheduleRepository using SQLite.
type SQLiteScheduleRepository struct {
	db *sql.DB
}

// NewSQLiteScheduleRepository creates a new SQLite schedule repository.
func NewSQLiteScheduleRepository(db *sql.DB) *SQLiteScheduleRepository {
	return &SQLiteScheduleRepository{db: db}
}

const sqliteInsertScheduleItemSQL = `
	INSERT INTO schedule_items (
		id, user_id, day, start_time, title, description, duration_minutes, category, completed, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		start_time = excluded.start_time,
		title = excluded.title,
		description = excluded.description,
		duration_minutes = excluded.duration_minutes,
		category = excluded.category,
		completed = excluded.completed,
		updated_at = excluded.updated_at
`

// ReplaceDay atomically swaps the plan for a day.
func (r *SQLiteScheduleRepository) ReplaceDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day, items []*domain.ScheduleItem) error {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return replaceDayExec(ctx, info.Tx, userID, day, items)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceDayExec(ctx, tx, userID, day, items); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceDayExec(ctx context.Context, execer sharedPersistence.SQLiteExecutor, userID uuid.UUID, day sharedDomain.Day, items []*domain.ScheduleItem) error {
	if _, err := execer.ExecContext(ctx, `DELETE FROM schedule_items WHERE user_id = ? AND day = ?`, userID.String(), string(day)); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := execer.ExecContext(ctx, sqliteInsertScheduleItemSQL, sqliteScheduleItemArgs(item)...); err != nil {
			return err
		}
	}
	return nil
}

// Save persists a single schedule item update.
func (r *SQLiteScheduleRepository) Save(ctx context.Context, item *domain.ScheduleItem) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := execer.ExecContext(ctx, sqliteInsertScheduleItemSQL, sqliteScheduleItemArgs(item)...)
	return err
}

// FindByID finds a schedule item by its ID, or nil.
func (r *SQLiteScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ScheduleItem, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT id, user_id, day, start_time, title, description, duration_minutes, category, completed, created_at, updated_at
		FROM schedule_items WHERE id = ?
	`, id.String())

	item, err := scanSQLiteScheduleItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// FindByUserAndDay finds the plan for a day ordered by start time.
func (r *SQLiteScheduleRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.ScheduleItem, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, day, start_time, title, description, duration_minutes, category, completed, created_at, updated_at
		FROM schedule_items
		WHERE user_id = ? AND day = ?
		ORDER BY start_time
	`, userID.String(), string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.ScheduleItem, 0)
	for rows.Next() {
		item, err := scanSQLiteScheduleItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func sqliteScheduleItemArgs(item *domain.ScheduleItem) []any {
	return []any{
		item.ID().String(),
		item.UserID().String(),
		string(item.Day()),
		item.StartTime(),
		item.Title(),
		item.Description(),
		item.DurationMinutes(),
		string(item.Category()),
		boolToInt(item.Completed()),
		item.CreatedAt().UTC().Format(time.RFC3339Nano),
		item.UpdatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func scanSQLiteScheduleItem(row rowScanner) (*domain.ScheduleItem, error) {
	var (
		idStr, uidStr, dayStr, startTime, title, description string
		durationMinutes, completed                           int
		category, createdAt, updatedAt                       string
	)
	if err := row.Scan(&idStr, &uidStr, &dayStr, &startTime, &title, &description, &durationMinutes, &category, &completed, &createdAt, &updatedAt); err != nil {
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
	day, err := sharedDomain.ParseDay(dayStr)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateScheduleItem(
		id, uid, day, startTime, title, description,
		durationMinutes, domain.Category(category), completed != 0, created, updated,
	), nil
}
