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

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Save persists a task (create or update).
func (r *SQLiteTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := execer.ExecContext(ctx, `
		INSERT INTO tasks (
			id, user_id, title, description, scheduled_time, day, completed, priority, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			scheduled_time = excluded.scheduled_time,
			day = excluded.day,
			completed = excluded.completed,
			priority = excluded.priority,
			updated_at = excluded.updated_at
	`,
		task.ID().String(),
		task.UserID().String(),
		task.Title(),
		task.Description(),
		task.ScheduledTime(),
		string(task.Day()),
		boolToInt(task.Completed()),
		string(task.Priority()),
		task.CreatedAt().UTC().Format(time.RFC3339Nano),
		task.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID finds a task by its ID, or nil.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, scheduled_time, day, completed, priority, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id.String())

	task, err := scanSQLiteTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// FindByUserAndDay finds all tasks for a user on a day.
func (r *SQLiteTaskRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) ([]*domain.Task, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	rows, err := execer.QueryContext(ctx, `
		SELECT id, user_id, title, description, scheduled_time, day, completed, priority, created_at, updated_at
		FROM tasks
		WHERE user_id = ? AND day = ?
		ORDER BY scheduled_time, created_at
	`, userID.String(), string(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountCompletedSince counts completed tasks on or after the given day.
func (r *SQLiteTaskRepository) CountCompletedSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	var count int
	err := execer.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = ? AND day >= ? AND completed = 1
	`, userID.String(), string(since)).Scan(&count)
	return count, err
}

// CountSince counts all tasks on or after the given day.
func (r *SQLiteTaskRepository) CountSince(ctx context.Context, userID uuid.UUID, since sharedDomain.Day) (int, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)

	var count int
	err := execer.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE user_id = ? AND day >= ?
	`, userID.String(), string(since)).Scan(&count)
	return count, err
}

// Delete removes a task.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	result, err := execer.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanSQLiteTask(row rowScanner) (*domain.Task, error) {
	var (
		idStr, uidStr, title, description, scheduledTime string
		dayStr, priority, createdAt, updatedAt           string
		completed                                        int
	)
	if err := row.Scan(&idStr, &uidStr, &title, &description, &scheduledTime, &dayStr, &completed, &priority, &createdAt, &updatedAt); err != nil {
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

	return domain.RehydrateTask(
		id, uid, title, description, scheduledTime, day,
		completed != 0, domain.Priority(priority), created, updated,
	), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
