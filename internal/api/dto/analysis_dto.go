package dto

type CreateAnalysisRequest struct {
	JobID        int64   `json:"job_id" binding:"required"`
	UserID       *string `json:"user_id"`
	AnalysisType string  `json:"analysis_type"`
}

type AnalyzeJobRequest struct {
	UserID *string `json:"user_id"`
	Force  bool    `json:"force"`
}

type AnalysisDTO struct {
	ID                   int64    `json:"id"`
	JobID                int64    `json:"job_id"`
	UserID               *string  `json:"user_id,omitempty"`
	AnalysisType         string   `json:"analysis_type"`
	AnalysisVersion      string   `json:"analysis_version"`
	AIModelUsed          *string  `json:"ai_model_used,omitempty"`
	MatchScore           *float64 `json:"match_score,omitempty"`
	MatchLevel           string   `json:"match_level"`
	ConfidenceScore      float64  `json:"confidence_score"`
	ConfidenceLevel      string   `json:"confidence_level"`
	SkillMatchScore      *float64 `json:"skill_match_score,omitempty"`
	ExperienceMatchScore *float64 `json:"experience_match_score,omitempty"`
	LocationMatchScore   *float64 `json:"location_match_score,omitempty"`
	SalaryMatchScore     *float64 `json:"salary_match_score,omitempty"`
	KeyInsights          []string `json:"key_insights,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
	RedFlags             []string `json:"red_flags,omitempty"`
	Status               string   `json:"status"`
	ErrorMessage         *string  `json:"error_message,omitempty"`
	ProcessingTimeSecs   *float64 `json:"processing_time_seconds,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

type AnalysisStatisticsResponse struct {
	TotalAnalyses        int64            `json:"total_analyses"`
	CountsByStatus       map[string]int64 `json:"counts_by_status"`
	AverageMatchScore    *float64         `json:"average_match_score,omitempty"`
	AverageProcessingSec *float64         `json:"average_processing_seconds,omitempty"`
	HighMatchCount       int64            `json:"high_match_count"`
	ErrorCounts          map[string]int64 `json:"error_counts"`
}
