package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Analysis status values
const (
	AnalysisStatusPending    = "pending"
	AnalysisStatusProcessing = "processing"
	AnalysisStatusCompleted  = "completed"
	AnalysisStatusFailed     = "failed"
)

// Defaults for new analysis rows.
const (
	DefaultAnalysisType    = "job_match"
	DefaultAnalysisVersion = "1.0"
)

// Analysis represents an AI match analysis row for a (job, user) pair
type Analysis struct {
	ID                   int64          `db:"id"`
	JobID                int64          `db:"job_id"`
	UserID               *string        `db:"user_id"`
	AnalysisType         string         `db:"analysis_type"`
	AnalysisVersion      string         `db:"analysis_version"`
	AIModelUsed          *string        `db:"ai_model_used"`
	MatchScore           *float64       `db:"match_score"`
	ConfidenceScore      float64        `db:"confidence_score"`
	SkillMatchScore      *float64       `db:"skill_match_score"`
	ExperienceMatchScore *float64       `db:"experience_match_score"`
	LocationMatchScore   *float64       `db:"location_match_score"`
	SalaryMatchScore     *float64       `db:"salary_match_score"`
	KeyInsights          types.JSONText `db:"key_insights"`
	Recommendations      types.JSONText `db:"recommendations"`
	RedFlags             types.JSONText `db:"red_flags"`
	Status               string         `db:"status"`
	ErrorMessage         *string        `db:"error_message"`
	ProcessingTimeSecs   *float64       `db:"processing_time_seconds"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// ClampScore constrains a score to the [0, 1] interval. All score
// fields pass through this before hitting the database.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// MatchLevel buckets the match score into a descriptive level.
func (a *Analysis) MatchLevel() string {
	if a.MatchScore == nil {
		return "unknown"
	}

	switch {
	case *a.MatchScore >= 0.9:
		return "excellent"
	case *a.MatchScore >= 0.7:
		return "good"
	case *a.MatchScore >= 0.5:
		return "fair"
	default:
		return "poor"
	}
}

// ConfidenceLevel buckets the confidence score into a descriptive level.
func (a *Analysis) ConfidenceLevel() string {
	switch {
	case a.ConfidenceScore >= 0.8:
		return "high"
	case a.ConfidenceScore >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

// IsHighMatch reports whether the match score is at least 0.8.
func (a *Analysis) IsHighMatch() bool {
	return a.MatchScore != nil && *a.MatchScore >= 0.8
}

// IsGoodMatch reports whether the match score is at least 0.6.
func (a *Analysis) IsGoodMatch() bool {
	return a.MatchScore != nil && *a.MatchScore >= 0.6
}
