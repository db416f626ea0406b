package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/journal/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteDailyLogRepository implements domain.Repository using SQLite.
type SQLiteDailyLogRepository struct {
	db *sql.DB
}

// NewSQLiteDailyLogRepository creates a new SQLite daily log repository.
func NewSQLiteDailyLogRepository(db *sql.DB) *SQLiteDailyLogRepository {
	return &SQLiteDailyLogRepository{db: db}
}

// Save persists a daily log, overwriting any earlier log for the same day.
func (r *SQLiteDailyLogRepository) Save(ctx context.Context, log *domain.DailyLog) error {
	activities, err := json.Marshal(log.Activities())
	if err != nil {
		return err
	}

	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err = execer.ExecContext(ctx, `
		INSERT INTO daily_logs (
			id, user_id, day, mood, energy_level, productivity_score,
			activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			mood = excluded.mood,
			energy_level = excluded.energy_level,
			productivity_score = excluded.productivity_score,
			activities = excluded.activities,
			notes = excluded.notes,
			wake_time_actual = excluded.wake_time_actual,
			sleep_time_actual = excluded.sleep_time_actual,
			updated_at = excluded.updated_at
	`,
		log.ID().String(),
		log.UserID().String(),
		string(log.Day()),
		ratingValue(log.Mood()),
		ratingValue(log.EnergyLevel()),
		ratingValue(log.Productivity()),
		string(activities),
		log.Notes(),
		log.WakeTimeActual(),
		log.SleepTimeActual(),
		log.CreatedAt().UTC().Format(time.RFC3339Nano),
		log.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByUserAndDay finds the log for a day, or nil.
func (r *SQLiteDailyLogRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT id, user_id, day, mood, energy_level, productivity_score,
		       activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at
		FROM daily_logs
		WHERE user_id = ? AND day = ?
	`, userID.String(), string(day))

	log, err := scanSQLiteDailyLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return log, nil
}

// FindByUserSince finds all logs on or after the given day, newest first.
func (r *SQLiteDailyLogRepository) FindByUserSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) ([]*domain.DailyLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, day, mood, energy_level, productivity_score,
		       activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at
		FROM daily_logs
		WHERE user_id = ? AND day >= ?
		ORDER BY day DESC
	`, userID.String(), string(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteDailyLogs(rows)
}

// ListByUser returns the user's most recent logs, newest first.
func (r *SQLiteDailyLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.DailyLog, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, day, mood, energy_level, productivity_score,
		       activities, notes, wake_time_actual, sleep_time_actual, created_at, updated_at
		FROM daily_logs
		WHERE user_id = ?
		ORDER BY day DESC
		LIMIT ?
	`, userID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSQLiteDailyLogs(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDailyLog(row rowScanner) (*domain.DailyLog, error) {
	var (
		idStr, uidStr, dayStr      string
		mood, energy, productivity sql.NullInt64
		activitiesJSON, notes      string
		wakeActual, sleepActual    string
		createdAt, updatedAt       string
	)
	if err := row.Scan(&idStr, &uidStr, &dayStr, &mood, &energy, &productivity,
		&activitiesJSON, &notes, &wakeActual, &sleepActual, &createdAt, &updatedAt); err != nil {
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

	var activities []string
	if err := json.Unmarshal([]byte(activitiesJSON), &activities); err != nil {
		return nil, err
	}

	return domain.RehydrateDailyLog(
		id, uid, day,
		domain.DailyLogAttrs{
			Mood:            nullableInt(mood),
			EnergyLevel:     nullableInt(energy),
			Productivity:    nullableInt(productivity),
			Activities:      activities,
			Notes:           notes,
			WakeTimeActual:  wakeActual,
			SleepTimeActual: sleepActual,
		},
		created, updated,
	), nil
}

func collectSQLiteDailyLogs(rows *sql.Rows) ([]*domain.DailyLog, error) {
	logs := make([]*domain.DailyLog, 0)
	for rows.Next() {
		log, err := scanSQLiteDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func ratingValue(r domain.Rating) any {
	if r == nil {
		return nil
	}
	return *r
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
