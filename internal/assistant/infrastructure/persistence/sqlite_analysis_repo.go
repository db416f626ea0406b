package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hiteshchouriya/rik/internal/assistant/domain"
	sharedDomain "github.com/hiteshchouriya/rik/internal/shared/domain"
	sharedPersistence "github.com/hiteshchouriya/rik/internal/shared/infrastructure/persistence"
)

// SQLiteAnalysisRepository implements domain.AnalysisRepository using SQLite.
type SQLiteAnalysisRepository struct {
	db *sql.DB
}

// NewSQLiteAnalysisRepository creates a new SQLite analysis repository.
func NewSQLiteAnalysisRepository(db *sql.DB) *SQLiteAnalysisRepository {
	return &SQLiteAnalysisRepository{db: db}
}

// Save persists an analysis, overwriting the stored one for the same day.
func (r *SQLiteAnalysisRepository) Save(ctx context.Context, analysis *domain.DailyAnalysis) error {
	achievements, improvements, recommendations, err := marshalAnalysisLists(analysis)
	if err != nil {
		return err
	}

	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err = execer.ExecContext(ctx, `
		INSERT INTO daily_analyses (
			id, user_id, day, summary, achievements, improvements, recommendations,
			overall_score, points_earned, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			summary = excluded.summary,
			achievements = excluded.achievements,
			improvements = excluded.improvements,
			recommendations = excluded.recommendations,
			overall_score = excluded.overall_score,
			points_earned = excluded.points_earned,
			updated_at = excluded.updated_at
	`,
		analysis.ID().String(),
		analysis.UserID().String(),
		string(analysis.Day()),
		analysis.Summary(),
		string(achievements),
		string(improvements),
		string(recommendations),
		analysis.OverallScore(),
		analysis.PointsEarned(),
		analysis.CreatedAt().UTC().Format(time.RFC3339Nano),
		analysis.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByUserAndDay finds the analysis for a day, or nil.
func (r *SQLiteAnalysisRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day sharedDomain.Day) (*domain.DailyAnalysis, error) {
	execer := sharedPersistence.SQLiteQuerier(ctx, r.db)
	row := execer.QueryRowContext(ctx, `
		SELECT id, user_id, day, summary, achievements, improvements, recommendations,
			overall_score, points_earned, created_at, updated_at
		FROM daily_analyses
		WHERE user_id = ? AND day = ?
	`, userID.String(), string(day))

	var (
		idStr, uidStr, dayStr, summary              string
		achievements, improvements, recommendations string
		overallScore, pointsEarned                  int
		createdAtStr, updatedAtStr                  string
	)
	err := row.Scan(
		&idStr, &uidStr, &dayStr, &summary,
		&achievements, &improvements, &recommendations,
		&overallScore, &pointsEarned, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
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
	parsedDay, err := sharedDomain.ParseDay(dayStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, err
	}

	content := domain.AnalysisContent{
		Summary:      summary,
		OverallScore: overallScore,
	}
	if err := json.Unmarshal([]byte(achievements), &content.Achievements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(improvements), &content.Improvements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recommendations), &content.Recommendations); err != nil {
		return nil, err
	}

	return domain.RehydrateDailyAnalysis(id, uid, parsedDay, content, pointsEarned, createdAt, updatedAt), nil
}
