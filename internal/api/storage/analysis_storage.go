package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
)

const analysisColumns = `
	id, job_id, user_id, analysis_type, analysis_version, ai_model_used,
	match_score, confidence_score, skill_match_score, experience_match_score,
	location_match_score, salary_match_score, key_insights, recommendations,
	red_flags, status, error_message, processing_time_seconds,
	created_at, updated_at
`

func (s *Storage) CreateAnalysis(ctx context.Context, analysis *model.Analysis) error {
	query := `
		INSERT INTO analyses (
			job_id, user_id, analysis_type, analysis_version, ai_model_used,
			match_score, confidence_score, skill_match_score, experience_match_score,
			location_match_score, salary_match_score, key_insights, recommendations,
			red_flags, status, error_message, processing_time_seconds,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19
		)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		analysis.JobID,
		analysis.UserID,
		analysis.AnalysisType,
		analysis.AnalysisVersion,
		analysis.AIModelUsed,
		analysis.MatchScore,
		analysis.ConfidenceScore,
		analysis.SkillMatchScore,
		analysis.ExperienceMatchScore,
		analysis.LocationMatchScore,
		analysis.SalaryMatchScore,
		analysis.KeyInsights,
		analysis.Recommendations,
		analysis.RedFlags,
		analysis.Status,
		analysis.ErrorMessage,
		analysis.ProcessingTimeSecs,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	).Scan(&analysis.ID)

	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

func (s *Storage) GetAnalysisByID(ctx context.Context, id int64) (*model.Analysis, error) {
	var analysis model.Analysis
	query := fmt.Sprintf("SELECT %s FROM analyses WHERE id = $1", strings.TrimSpace(analysisColumns))

	err := s.db.GetContext(ctx, &analysis, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return &analysis, nil
}

// GetLatestAnalysisForJob returns the most recent analysis row for a job,
// or domain.ErrAnalysisNotFound when none exists.
func (s *Storage) GetLatestAnalysisForJob(ctx context.Context, jobID int64) (*model.Analysis, error) {
	var analysis model.Analysis
	query := fmt.Sprintf(
		"SELECT %s FROM analyses WHERE job_id = $1 ORDER BY created_at DESC LIMIT 1",
		strings.TrimSpace(analysisColumns),
	)

	err := s.db.GetContext(ctx, &analysis, query, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis for job: %w", err)
	}

	return &analysis, nil
}

// MarkAnalysisProcessing moves a pending analysis to processing. Returns
// false when the row was not in pending state (already claimed).
func (s *Storage) MarkAnalysisProcessing(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(
		ctx,
		"UPDATE analyses SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4",
		model.AnalysisStatusProcessing, time.Now(), id, model.AnalysisStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark analysis processing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark analysis processing: %w", err)
	}

	return rows > 0, nil
}

// CompleteAnalysis writes the computed scores and insight lists and moves
// the row to completed.
func (s *Storage) CompleteAnalysis(ctx context.Context, analysis *model.Analysis) error {
	query := `
		UPDATE analyses SET
			match_score = $1,
			confidence_score = $2,
			skill_match_score = $3,
			experience_match_score = $4,
			location_match_score = $5,
			salary_match_score = $6,
			key_insights = $7,
			recommendations = $8,
			red_flags = $9,
			ai_model_used = $10,
			processing_time_seconds = $11,
			status = $12,
			error_message = NULL,
			updated_at = $13
		WHERE id = $14
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		analysis.MatchScore,
		analysis.ConfidenceScore,
		analysis.SkillMatchScore,
		analysis.ExperienceMatchScore,
		analysis.LocationMatchScore,
		analysis.SalaryMatchScore,
		analysis.KeyInsights,
		analysis.Recommendations,
		analysis.RedFlags,
		analysis.AIModelUsed,
		analysis.ProcessingTimeSecs,
		model.AnalysisStatusCompleted,
		time.Now(),
		analysis.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}

	return nil
}

func (s *Storage) FailAnalysis(ctx context.Context, id int64, errorMessage string) error {
	_, err := s.db.ExecContext(
		ctx,
		"UPDATE analyses SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4",
		model.AnalysisStatusFailed, errorMessage, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to fail analysis: %w", err)
	}

	return nil
}

// AnalysisStatistics aggregates counts and averages over analyses.
type AnalysisStatistics struct {
	Total                int64
	CountsByStatus       map[string]int64
	AverageMatchScore    *float64
	AverageProcessingSec *float64
	HighMatchCount       int64
}

func (s *Storage) GetAnalysisStatistics(ctx context.Context) (*AnalysisStatistics, error) {
	stats := &AnalysisStatistics{
		CountsByStatus: make(map[string]int64),
	}

	statusRows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}
	if err := s.db.SelectContext(ctx, &statusRows,
		"SELECT status, COUNT(*) AS count FROM analyses GROUP BY status"); err != nil {
		return nil, fmt.Errorf("failed to count analyses by status: %w", err)
	}
	for _, row := range statusRows {
		stats.CountsByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}

	summary := `
		SELECT
			AVG(match_score) FILTER (WHERE status = 'completed') AS avg_match,
			AVG(processing_time_seconds) FILTER (WHERE status = 'completed') AS avg_processing,
			COUNT(*) FILTER (WHERE status = 'completed' AND match_score >= 0.8) AS high_match
		FROM analyses
	`
	row := s.db.QueryRowxContext(ctx, summary)
	if err := row.Scan(&stats.AverageMatchScore, &stats.AverageProcessingSec, &stats.HighMatchCount); err != nil {
		return nil, fmt.Errorf("failed to get analysis statistics: %w", err)
	}

	return stats, nil
}
