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

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// taskRow represents a database row for tasks.
type taskRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   string
	ScheduledTime string
	Day           string
	Completed     bool
	Priority      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const taskColumns = `id, user_id, title, description, scheduled_time, day, completed, priority, created_at, updated_at`

// Save persists a task (create or update).
func (r *PostgresTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (
			id, user_id, title, description, scheduled_time, day, completed, priority, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			scheduled_time = EXCLUDED.scheduled_time,
			day = EXCLUDED.day,
			completed = EXCLUDED.completed,
			priority = EXCLUDED.priority,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		task.ID(),
		task.UserID(),
		task.Title(),
		task.Description(),
		task.ScheduledTime(),
		string(task.Day()),
		task.Completed(),
		string(task.Priority()),
		task.CreatedAt(),
		task.UpdatedAt(),
	)
	return err
}

// FindByID finds a task by its ID, or nil.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row taskRow
	err := exec.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.UserID, &row.Title, &row.Description, &row.ScheduledTime,
		&row.Day, &row.Completed, &row.Priority, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToTask(row)
}

// FindByUserAndDay finds all tasks for a user on a day.
func (r *PostgresTaskRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND day = $2 ORDER BY scheduled_time, created_at`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID, string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var row taskRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.Title, &row.Description, &row.ScheduledTime,
			&row.Day, &row.Completed, &row.Priority, &row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		task, err := rowToTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountCompletedSince counts completed tasks on or after the given day.
func (r *PostgresTaskRepository) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var count int
	err := exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND day >= $2 AND completed = TRUE
	`, userID, string(since)).Scan(&count)
	return count, err
}

// CountSince counts all tasks on or after the given day.
func (r *PostgresTaskRepository) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	var count int
	err := exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND day >= $2
	`, userID, string(since)).Scan(&count)
	return count, err
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	result, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func rowToTask(row taskRow) (*domain.Task, error) {
	day, err := sharedDomain.ParseDay(row.Day)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateTask(
		row.ID,
		row.UserID,
		row.Title,
		row.Description,
		row.ScheduledTime,
		day,
		row.Completed,
		domain.Priority(row.Priority),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
