package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// PostgresAnalysisRepository implements domain.AnalysisRepository using PostgreSQL.
type PostgresAnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAnalysisRepository creates a new PostgreSQL analysis repository.
func NewPostgresAnalysisRepository(pool *pgxpool.Pool) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{pool: pool}
}

// analysisRow represents a database row for daily analyses.
type analysisRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Day             string
	Summary         string
	Achievements    []byte
	Improvements    []byte
	Recommendations []byte
	OverallScore    int
	PointsEarned    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const analysisColumns = `id, user_id, day, summary, achievements, improvements, recommendations, overall_score, points_earned, created_at, updated_at`

// Save persists an analysis. The (user, day) key is unique, so regenerating
// a day's review overwrites the stored one.
func (r *PostgresAnalysisRepository) Save(ctx context.Context, analysis *domain.DailyAnalysis) error {
	achievements, improvements, recommendations, err := marshalAnalysisLists(analysis)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_analyses (
			id, user_id, day, summary, achievements, improvements, recommendations,
			overall_score, points_earned, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, day) DO UPDATE SET
			summary = EXCLUDED.summary,
			achievements = EXCLUDED.achievements,
			improvements = EXCLUDED.improvements,
			recommendations = EXCLUDED.recommendations,
			overall_score = EXCLUDED.overall_score,
			points_earned = EXCLUDED.points_earned,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err = exec.Exec(ctx, query,
		analysis.ID(),
		analysis.UserID(),
		string(analysis.Day()),
		analysis.Summary(),
		achievements,
		improvements,
		recommendations,
		analysis.OverallScore(),
		analysis.PointsEarned(),
		analysis.CreatedAt(),
		analysis.UpdatedAt(),
	)
	return err
}

// FindByUserAndDay finds the analysis for a day, or nil.
func (r *PostgresAnalysisRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM daily_analyses WHERE user_id = $1 AND day = $2`

	exec := sharedPersistence.Executor(ctx, r.pool)

	var row analysisRow
	err := exec.QueryRow(ctx, query, userID, string(day)).Scan(
		&row.ID, &row.UserID, &row.Day, &row.Summary,
		&row.Achievements, &row.Improvements, &row.Recommendations,
		&row.OverallScore, &row.PointsEarned, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToAnalysis(row)
}

func marshalAnalysisLists(analysis *domain.DailyAnalysis) (achievements, improvements, recommendations []byte, err error) {
	if achievements, err = json.Marshal(analysis.Achievements()); err != nil {
		return nil, nil, nil, err
	}
	if improvements, err = json.Marshal(analysis.Improvements()); err != nil {
		return nil, nil, nil, err
	}
	if recommendations, err = json.Marshal(analysis.Recommendations()); err != nil {
		return nil, nil, nil, err
	}
	return achievements, improvements, recommendations, nil
}

func rowToAnalysis(row analysisRow) (*domain.DailyAnalysis, error) {
	day, err := sharedDomain.ParseDay(row.Day)
	if err != nil {
		return nil, err
	}

	content := domain.AnalysisContent{
		Summary:      row.Summary,
		OverallScore: row.OverallScore,
	}
	if err := json.Unmarshal(row.Achievements, &content.Achievements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Improvements, &content.Improvements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Recommendations, &content.Recommendations); err != nil {
		return nil, err
	}

	return domain.RehydrateDailyAnalysis(
		row.ID,
		row.UserID,
		day,
		content,
		row.PointsEarned,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
