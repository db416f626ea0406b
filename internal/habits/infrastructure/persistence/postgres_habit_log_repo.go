package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/habits/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresHabitLogRepository implements domain.Repository using PostgreSQL.
type PostgresHabitLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHabitLogRepository creates a new PostgreSQL habit log repository.
func NewPostgresHabitLogRepository(pool *pgxpool.Pool) *PostgresHabitLogRepository {
	return &PostgresHabitLogRepository{pool: pool}
}

// habitLogRow represents a database row for habit logs.
type habitLogRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	HabitName string
	HabitType string
	Completed bool
	Day       string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const habitLogColumns = `id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at`

// Save persists a habit log. The (user, habit, day) key is unique, so a
// second log for the same day overwrites the first.
func (r *PostgresHabitLogRepository) Save(ctx context.Context, log *domain.HabitLog) error {
	query := `
		INSERT INTO habit_logs (
			id, user_id, habit_name, habit_type, completed, day, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, habit_name, day) DO UPDATE SET
			habit_type = EXCLUDED.habit_type,
			completed = EXCLUDED.completed,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		log.ID(),
		log.UserID(),
		log.HabitName(),
		string(log.HabitType()),
		log.Completed(),
		string(log.Day()),
		log.Notes(),
		log.CreatedAt(),
		log.UpdatedAt(),
	)
	return err
}

// FindByUserHabitDay finds the log for a habit on a day, or nil.
func (r *PostgresHabitLogRepository) FindByUserHabitDay(ctx context.Context, userID uuid.UUID, habitName string, day sharedDomain.Day) (*domain.HabitLog, error) {
	query := `SELECT ` + habitLogColumns + ` FROM habit_logs WHERE user_id = $1 AND habit_name = $2 AND day = $3`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row habitLogRow
	err := exec.QueryRow(ctx, query, userID, habitName, string(day)).Scan(
		&row.ID, &row.UserID, &row.HabitName, &row.HabitType,
		&row.Completed, &row.Day, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToHabitLog(row)
}

// FindByUserAndDay finds all logs for a user on a day.
func (r *PostgresHabitLogRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.HabitLog, error) {
	query := `SELECT ` + habitLogColumns + ` FROM habit_logs WHERE user_id = $1 AND day = $2 ORDER BY habit_name`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHabitLogs(rows)
}

// FindCompletedByHabit finds all completed logs for a habit, newest day first.
func (r *PostgresHabitLogRepository) FindCompletedByHabit(ctx context.Context, userID uuid.UUID, habitName string) ([]*domain.HabitLog, error) {
	query := `
		SELECT ` + habitLogColumns + `
		FROM habit_logs
		WHERE user_id = $1 AND habit_name = $2 AND completed = TRUE
		ORDER BY day DESC
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, habitName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHabitLogs(rows)
}

// CountCompletedSince counts completed logs for a user on or after the given day.
func (r *PostgresHabitLogRepository) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var count int
	err := exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM habit_logs WHERE user_id = $1 AND day >= $2 AND completed = TRUE
	`, userID, string(since)).Scan(&count)
	return count, err
}

// CountSince counts all logs for a user on or after the given day.
func (r *PostgresHabitLogRepository) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var count int
	err := exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM habit_logs WHERE user_id = $1 AND day >= $2
	`, userID, string(since)).Scan(&count)
	return count, err
}

func scanHabitLogs(rows pgx.Rows) ([]*domain.HabitLog, error) {
	logs := make([]*domain.HabitLog, 0)
	for rows.Next() {
		var row habitLogRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.HabitName, &row.HabitType,
			&row.Completed, &row.Day, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		log, err := rowToHabitLog(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func rowToHabitLog(row habitLogRow) (*domain.HabitLog, error) {
	day, err := sharedDomain.ParseDay(row.Day)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateHabitLog(
		row.ID,
		row.UserID,
		row.HabitName,
		domain.HabitType(row.HabitType),
		row.Completed,
		day,
		row.Notes,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
