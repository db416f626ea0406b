package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/identity/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresProfileRepository implements domain.Repository using PostgreSQL.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// profileRow represents a database row for profiles.
type profileRow struct {
	ID                  uuid.UUID
	Name                string
	Age                 int
	RoleCurrent         string
	RoleGoal            string
	WakeTime            string
	SleepTime           string
	WorkStart           string
	WorkEnd             string
	Mode                string
	HabitsToBuild       []byte
	HabitsToQuit        []byte
	Goals               []byte
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

const profileColumns = `id, name, age, role_current, role_goal, wake_time, sleep_time,
       work_start, work_end, assistant_mode, habits_to_build, habits_to_quit,
       goals, onboarding_completed, created_at, updated_at`

// Save persists a profile to the database.
func (r *PostgresProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	build, quit, goals, err := marshalProfileLists(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, name, age, role_current, role_goal, wake_time, sleep_time,
			work_start, work_end, assistant_mode, habits_to_build, habits_to_quit,
			goals, onboarding_completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			role_current = EXCLUDED.role_current,
			role_goal = EXCLUDED.role_goal,
			wake_time = EXCLUDED.wake_time,
			sleep_time = EXCLUDED.sleep_time,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			assistant_mode = EXCLUDED.assistant_mode,
			habits_to_build = EXCLUDED.habits_to_build,
			habits_to_quit = EXCLUDED.habits_to_quit,
			goals = EXCLUDED.goals,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = EXCLUDED.updated_at
	`

	sched := profile.DailySchedule()
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err = exec.Exec(ctx, query,
		profile.ID(),
		profile.Name(),
		profile.Age(),
		profile.CurrentRole(),
		profile.GoalRole(),
		sched.WakeTime,
		sched.SleepTime,
		sched.WorkStart,
		sched.WorkEnd,
		string(profile.Mode()),
		build,
		quit,
		goals,
		profile.OnboardingCompleted(),
		profile.CreatedAt(),
		profile.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a profile by its ID.
func (r *PostgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row profileRow
	err := exec.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.Name,
		&row.Age,
		&row.RoleCurrent,
		&row.RoleGoal,
		&row.WakeTime,
		&row.SleepTime,
		&row.WorkStart,
		&row.WorkEnd,
		&row.Mode,
		&row.HabitsToBuild,
		&row.HabitsToQuit,
		&row.Goals,
		&row.OnboardingCompleted,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToProfile(row)
}

// Delete removes a profile from the database.
func (r *PostgresProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	result, err := exec.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func marshalProfileLists(p *domain.Profile) (build, quit, goals []byte, err error) {
	if build, err = json.Marshal(p.HabitsToBuild()); err != nil {
		return nil, nil, nil, err
	}
	if quit, err = json.Marshal(p.HabitsToQuit()); err != nil {
		return nil, nil, nil, err
	}
	if goals, err = json.Marshal(p.Goals()); err != nil {
		return nil, nil, nil, err
	}
	return build, quit, goals, nil
}

func rowToProfile(row profileRow) (*domain.Profile, error) {
	var build, quit, goals []string
	if err := json.Unmarshal(row.HabitsToBuild, &build); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.HabitsToQuit, &quit); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Goals, &goals); err != nil {
		return nil, err
	}

	return domain.RehydrateProfile(
		row.ID,
		domain.ProfileAttrs{
			Name:        row.Name,
			Age:         row.Age,
			CurrentRole: row.RoleCurrent,
			GoalRole:    row.RoleGoal,
			Schedule: domain.Schedule{
				WakeTime:  row.WakeTime,
				SleepTime: row.SleepTime,
				WorkStart: row.WorkStart,
				WorkEnd:   row.WorkEnd,
			},
			Mode:          domain.AssistantMode(row.Mode),
			HabitsToBuild: build,
			HabitsToQuit:  quit,
			Goals:         goals,
		},
		row.OnboardingCompleted,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
