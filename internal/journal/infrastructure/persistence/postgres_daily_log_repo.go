package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresDailyLogRepository implements domain.Repository using PostgreSQL.
type PostgresDailyLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDailyLogRepository creates a new PostgreSQL daily log repository.
func NewPostgresDailyLogRepository(pool *pgxpool.Pool) *PostgresDailyLogRepository {
	return &PostgresDailyLogRepository{pool: pool}
}

// dailyLogRow represents a database row for daily logs.
type dailyLogRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Day             string
	Mood            *int
	EnergyLevel     *int
	Productivity    *int
	Activities      []byte
	Notes           string
	WakeTimeActual  string
	SleepTimeActual string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const dailyLogColumns = `id, user_id, day, mood, energy_level, productivity_score,
       activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at`

// Save persists a daily log, overwriting any earlier log for the same day.
func (r *PostgresDailyLogRepository) Save(ctx context.Context, log *domain.DailyLog) error {
	activities, err := json.Marshal(log.Activities())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_logs (
			id, user_id, day, mood, energy_level, productivity_score,
			activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, day) DO UPDATE SET
			mood = EXCLUDED.mood,
			energy_level = EXCLUDED.energy_level,
			productivity_score = EXCLUDED.productivity_score,
			activities = EXCLUDED.activities,
			notes = EXCLUDED.notes,
			wake_time_actual = EXCLUDED.wake_time_actual,
			sleep_time_actual = EXCLUDED.sleep_time_actual,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err = exec.Exec(ctx, query,
		log.ID(),
		log.UserID(),
		string(log.Day()),
		(*int)(log.Mood()),
		(*int)(log.EnergyLevel()),
		(*int)(log.Productivity()),
		activities,
		log.Notes(),
		log.WakeTimeActual(),
		log.SleepTimeActual(),
		log.CreatedAt(),
		log.UpdatedAt(),
	)
	return err
}

// FindByUserAndDay finds the log for a day, or nil.
func (r *PostgresDailyLogRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE user_id = $1 AND day = $2`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row dailyLogRow
	err := exec.QueryRow(ctx, query, userID, string(day)).Scan(
		&row.ID, &row.UserID, &row.Day, &row.Mood, &row.EnergyLevel, &row.Productivity,
		&row.Activities, &row.Notes, &row.WakeTimeActual, &row.SleepTimeActual,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToDailyLog(row)
}

// FindByUserSince finds all logs on or after the given day, newest first.
func (r *PostgresDailyLogRepository) FindByUserSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) ([]*domain.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE user_id = $1 AND day >= $2 ORDER BY day DESC`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, string(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDailyLogs(rows)
}

// ListByUser returns the user's most recent logs, newest first.
func (r *PostgresDailyLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + ` FROM daily_logs WHERE user_id = $1 ORDER BY day DESC LIMIT $2`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDailyLogs(rows)
}

func scanDailyLogs(rows pgx.Rows) ([]*domain.DailyLog, error) {
	logs := make([]*domain.DailyLog, 0)
	for rows.Next() {
		var row dailyLogRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.Day, &row.Mood, &row.EnergyLevel, &row.Productivity,
			&row.Activities, &row.Notes, &row.WakeTimeActual, &row.SleepTimeActual,
			&row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		log, err := rowToDailyLog(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func rowToDailyLog(row dailyLogRow) (*domain.DailyLog, error) {
	day, err := sharedDomain.ParseDay(row.Day)
	if err != nil {
		return nil, err
	}

	var activities []string
	if err := json.Unmarshal(row.Activities, &activities); err != nil {
		return nil, err
	}

	return domain.RehydrateDailyLog(
		row.ID,
		row.UserID,
		day,
		domain.DailyLogAttrs{
			Mood:            row.Mood,
			EnergyLevel:     row.EnergyLevel,
			Productivity:    row.Productivity,
			Activities:      activities,
			Notes:           row.Notes,
			WakeTimeActual:  row.WakeTimeActual,
			SleepTimeActual: row.SleepTimeActual,
		},
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
