package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/identity/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteProfileRepository implements domain.Repository using SQLite.
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new SQLite profile repository.
func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

// Save persists a profile to the database.
func (r *SQLiteProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	build, quit, goals, err := marshalProfileLists(profile)
	if err != nil {
		return err
	}

	sched := profile.DailySchedule()
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err = execer.ExecContext(ctx, `
		INSERT INTO profiles (
			id, name, age, role_current, role_goal, wake_time, sleep_time,
			work_start, work_end, assistant_mode, habits_to_build, habits_to_quit,
			goals, onboarding_completed, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			role_current = excluded.role_current,
			role_goal = excluded.role_goal,
			wake_time = excluded.wake_time,
			sleep_time = excluded.sleep_time,
			work_start = excluded.work_start,
			work_end = excluded.work_end,
			assistant_mode = excluded.assistant_mode,
			habits_to_build = excluded.habits_to_build,
			habits_to_quit = excluded.habits_to_quit,
			goals = excluded.goals,
			onboarding_completed = excluded.onboarding_completed,
			updated_at = excluded.updated_at
	`,
		profile.ID().String(),
		profile.Name(),
		profile.Age(),
		profile.CurrentRole(),
		profile.GoalRole(),
		sched.WakeTime,
		sched.SleepTime,
		sched.WorkStart,
		sched.WorkEnd,
		string(profile.Mode()),
		string(build),
		string(quit),
		string(goals),
		boolToInt(profile.OnboardingCompleted()),
		profile.CreatedAt().UTC().Format(time.RFC3339Nano),
		profile.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves a profile by its ID.
func (r *SQLiteProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE id = ?
	`, id.String())

	var (
		idStr                string
		pr                   profileRow
		onboarding           int
		createdAt, updatedAt string
	)
	err := row.Scan(
		&idStr,
		&pr.Name,
		&pr.Age,
		&pr.RoleCurrent,
		&pr.RoleGoal,
		&pr.WakeTime,
		&pr.SleepTime,
		&pr.WorkStart,
		&pr.WorkEnd,
		&pr.Mode,
		&pr.HabitsToBuild,
		&pr.HabitsToQuit,
		&pr.Goals,
		&onboarding,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if pr.ID, err = uuid.Parse(idStr); err != nil {
		return nil, err
	}
	pr.OnboardingCompleted = onboarding != 0
	if pr.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if pr.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}

	return rowToProfile(pr)
}

// Delete removes a profile from the database.
func (r *SQLiteProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	result, err := execer.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
