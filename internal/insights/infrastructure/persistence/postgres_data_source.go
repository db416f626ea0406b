package persistence

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/insights/application"
	"github.com/hiteshchouriya/rik/internal/insights/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresDataSource implements application.DataSource using PostgreSQL.
type PostgresDataSource struct {
	pool *pgxpool.Pool
}

// NewPostgresDataSource creates a new PostgreSQL analytics data source.
func NewPostgresDataSource(pool *pgxpool.Pool) *PostgresDataSource {
	return &PostgresDataSource{pool: pool}
}

// WeeklyActivity sums activity on or after the given day.
func (s *PostgresDataSource) WeeklyActivity(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (domain.WeeklyActivity, error) {
	exec := sharedPersistence.Executor(ctx, s.pool)

	var a domain.WeeklyActivity
	err := exec.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM habit_logs WHERE user_id = $1 AND day >= $2 AND completed = TRUE),
			(SELECT COUNT(*) FROM habit_logs WHERE user_id = $1 AND day >= $2),
			(SELECT COUNT(*) FROM schedule_items WHERE user_id = $1 AND day >= $2 AND completed = TRUE),
			(SELECT COUNT(*) FROM schedule_items WHERE user_id = $1 AND day >= $2),
			(SELECT COALESCE(SUM(overall_score), 0) FROM daily_analyses WHERE user_id = $1 AND day >= $2),
			(SELECT COUNT(*) FROM daily_analyses WHERE user_id = $1 AND day >= $2)
	`, userID, string(since)).Scan(
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
func (s *PostgresDataSource) DailyActivity(ctx context.Context, userID uuid.UUID, from, to sharedDomain.Day) ([]application.DayActivity, error) {
	exec := sharedPersistence.Executor(ctx, s.pool)

	byDay := seedWindow(from, to)

	habitRows, err := exec.Query(ctx, `
		SELECT day, COUNT(*) FILTER (WHERE completed), COUNT(*)
		FROM habit_logs
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		GROUP BY day
	`, userID, string(from), string(to))
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

	taskRows, err := exec.Query(ctx, `
		SELECT day, COUNT(*) FILTER (WHERE completed), COUNT(*)
		FROM tasks
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		GROUP BY day
	`, userID, string(from), string(to))
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

	moodRows, err := exec.Query(ctx, `
		SELECT day, mood
		FROM daily_logs
		WHERE user_id = $1 AND day >= $2 AND day <= $3
	`, userID, string(from), string(to))
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

// seedWindow builds a zeroed entry per day of the window.
func seedWindow(from, to sharedDomain.Day) map[string]*application.DayActivity {
	byDay := make(map[string]*application.DayActivity)
	for d := from; !to.Before(d); d = d.AddDays(1) {
		byDay[string(d)] = &application.DayActivity{Day: string(d)}
	}
	return byDay
}

// flattenWindow orders the window's entries oldest first.
func flattenWindow(from, to sharedDomain.Day, byDay map[string]*application.DayActivity) []application.DayActivity {
	out := make([]application.DayActivity, 0, len(byDay))
	for d := from; !to.Before(d); d = d.AddDays(1) {
		out = append(out, *byDay[string(d)])
	}
	return out
}
