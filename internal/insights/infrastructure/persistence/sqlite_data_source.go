package persistence

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/insights/application"
	"github.com/hiteshchouriya/rik/internal/insights/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteDataSource implements application.DataSource using SQLite.
type SQLiteDataSource struct {
	db *sql.DB
}

// NewSQLiteDataSource creates a new SQLite analytics data source.
func NewSQLiteDataSource(db *sql.DB) *SQLiteDataSource {
	return &SQLiteDataSource{db: db}
}

// WeeklyActivity sums activity on or after the given day.
func (s *SQLiteDataSource) WeeklyActivity(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (domain.WeeklyActivity, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, s.db)

	var a domain.WeeklyActivity
	err := execer.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM habit_logs WHERE user_id = ?1 AND day >= ?2 AND completed = 1),
			(SELECT COUNT(*) FROM habit_logs WHERE user_id = ?1 AND day >= ?2),
			(SELECT COUNT(*) FROM schedule_items WHERE user_id = ?1 AND day >= ?2 AND completed = 1),
			(SELECT COUNT(*) FROM schedule_items WHERE user_id = ?1 AND day >= ?2),
			(SELECT COALESCE(SUM(overall_score), 0) FROM daily_analyses WHERE user_id = ?1 AND day >= ?2),
			(SELECT COUNT(*) FROM daily_analyses WHERE user_id = ?1 AND day >= ?2)
	`, userID.String(), string(since)).Scan(
		&a.HabitsCompleted,
		&a.HabitsLogged,
		&a.ScheduleCompleted,
		&a.SchedulePlanned,
		&a.ScoreSum,
		&a.ScoredDays,
	)
	return a, err
}

// DailyActivity returns per-day counts for the window [from, to], oldest first.
func (s *SQLiteDataSource) DailyActivity(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Day) ([]application.DayActivity, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, s.db)

	byDay := seedWindow(from, to)

	habitRows, err := execer.QueryContext(ctx, `
		SELECT day, SUM(completed), COUNT(*)
		FROM habit_logs
		WHERE user_id = ? AND day >= ? AND day <= ?
		GROUP BY day
	`, userID.String(), string(from), string(to))
	if err != nil {
		return nil, err
	}
	defer habitRows.Close()
	for habitRows.Next() {
		var day string
		var completed, total int
		if err := habitRows.Scan(&day, &completed, &total); err != nil {
			return nil, err
		}
		if d, ok := byDay[day]; ok {
			d.HabitsCompleted = completed
			d.HabitsLogged = total
		}
	}
	if err := habitRows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := execer.QueryContext(ctx, `
		SELECT day, SUM(completed), COUNT(*)
		FROM tasks
		WHERE user_id = ? AND day >= ? AND day <= ?
		GROUP BY day
	`, userID.String(), string(from), string(to))
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var day string
		var completed, total int
		if err := taskRows.Scan(&day, &completed, &total); err != nil {
			return nil, err
		}
		if d, ok := byDay[day]; ok {
			d.TasksCompleted = completed
			d.TasksPlanned = total
		}
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}

	moodRows, err := execer.QueryContext(ctx, `
		SELECT day, mood
		FROM daily_logs
		WHERE user_id = ? AND day >= ? AND day <= ?
	`, userID.String(), string(from), string(to))
	if err != nil {
		return nil, err
	}
	defer moodRows.Close()
	for moodRows.Next() {
		var day string
		var mood sql.NullInt64
		if err := moodRows.Scan(&day, &mood); err != nil {
			return nil, err
		}
		if d, ok := byDay[day]; ok && mood.Valid {
			v := int(mood.Int64)
			d.Mood = &v
		}
	}
	if err := moodRows.Err(); err != nil {
		return nil, err
	}

	return flattenWindow(from, to, byDay), nil
}
