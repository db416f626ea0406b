package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/habits/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteHabitLogRepository implements domain.Repository using SQLite.
type SQLiteHabitLogRepository struct {
	db *sql.DB
}

// NewSQLiteHabitLogRepository creates a new SQLite habit log repository.
func NewSQLiteHabitLogRepository(db *sql.DB) *SQLiteHabitLogRepository {
	return &SQLiteHabitLogRepository{db: db}
}

// Save persists a habit log, overwriting any earlier log for the same day.
func (r *SQLiteHabitLogRepository) Save(ctx context.Context, log *domain.HabitLog) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := execer.ExecContext(ctx, `
		INSERT INTO habit_logs (
			id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, habit_name, day) DO UPDATE SET
			habit_type = excluded.habit_type,
			completed = excluded.completed,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		log.ID().String(),
		log.UserID().String(),
		log.HabitName(),
		string(log.HabitType()),
		boolToInt(log.Completed()),
		string(log.Day()),
		log.Notes(),
		log.CreatedAt().UTC().Format(time.RFC3339Nano),
		log.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByUserHabitDay finds the log for a habit on a day, or nil.
func (r *SQLiteHabitLogRepository) FindByUserHabitDay(ctx context.Context, userID uuid.UUID, habitName string, day sharedDomain.Day) (*domain.HabitLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at
		FROM habit_logs
		WHERE user_id = ? AND habit_name = ? AND day = ?
	`, userID.String(), habitName, string(day))

	log, err := scanSQLiteHabitLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

// FindByUserAndDay finds all logs for a user on a day.
func (r *SQLiteHabitLogRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.HabitLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at
		FROM habit_logs
		WHERE user_id = ? AND day = ?
		ORDER BY habit_name
	`, userID.String(), string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteHabitLogs(rows)
}

// FindCompletedByHabit finds all completed logs for a habit, newest day first.
func (r *SQLiteHabitLogRepository) FindCompletedByHabit(ctx context.Context, userID uuid.UUID, habitName string) ([]*domain.HabitLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at
		FROM habit_logs
		WHERE user_id = ? AND habit_name = ? AND completed = 1
		ORDER BY day DESC
	`, userID.String(), habitName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteHabitLogs(rows)
}

// CountCompletedSince counts completed logs for a user on or after the given day.
func (r *SQLiteHabitLogRepository) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	var count int
	err := execer.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habit_logs WHERE user_id = ? AND day >= ? AND completed = 1
	`, userID.String(), string(since)).Scan(&count)
	return count, err
}

// CountSince counts all logs for a user on or after the given day.
func (r *SQLiteHabitLogRepository) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	var count int
	err := execer.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habit_logs WHERE user_id = ? AND day >= ?
	`, userID.String(), string(since)).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteHabitLog(row rowScanner) (*domain.HabitLog, error) {
	var (
		idStr, uidStr, habitName, habitType string
		completed                           int
		dayStr, notes                       string
		createdAt, updatedAt                string
	)
	if err := row.Scan(&idStr, &uidStr, &habitName, &habitType, &completed, &dayStr, &notes, &createdAt, &updatedAt); err != nil {
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

	return domain.RehydrateHabitLog(
		id, uid, habitName, domain.HabitType(habitType),
		completed != 0, day, notes, created, updated,
	), nil
}

func collectSQLiteHabitLogs(rows *sql.Rows) ([]*domain.HabitLog, error) {
	logs := make([]*domain.HabitLog, 0)
	for rows.Next() {
		log, err := scanSQLiteHabitLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
