package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx/types"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/dto"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/api/storage"
	"github.com/jobhunt-app/jobhunt-be/internal/apperror"
	"github.com/jobhunt-app/jobhunt-be/internal/config"
	"github.com/jobhunt-app/jobhunt-be/internal/metrics"
	"github.com/jobhunt-app/jobhunt-be/shared/postgresql"
	"github.com/jobhunt-app/jobhunt-be/shared/rabbitmq"
	"github.com/jobhunt-app/jobhunt-be/shared/rediscache"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	logger       *slog.Logger
	storage      *storage.Storage
	dbClient     *postgresql.Client
	cache        *rediscache.Cache
	rabbitClient *rabbitmq.Client
	cfg          *config.Config
}

// NewHandler creates the handler set.
func NewHandler(
	logger *slog.Logger,
	dbClient *postgresql.Client,
	cache *rediscache.Cache,
	rabbitClient *rabbitmq.Client,
	cfg *config.Config,
) *Handler {
	return &Handler{
		logger:       logger,
		storage:      storage.NewStorage(dbClient),
		dbClient:     dbClient,
		cache:        cache,
		rabbitClient: rabbitClient,
		cfg:          cfg,
	}
}

// errorBody is the error envelope returned by every endpoint.
type errorBody struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	RecoveryAction string `json:"recovery_action,omitempty"`
	BusinessImpact string `json:"business_impact,omitempty"`
	Details        string `json:"details,omitempty"`
}

// renderError resolves the catalog entry for a code and writes the error
// envelope, recording the error metric along the way.
func (h *Handler) renderError(c *gin.Context, code string, details string) {
	entry := apperror.Resolve(code)
	metrics.ErrorsTotal.WithLabelValues(entry.Code, entry.BusinessImpact).Inc()

	if entry.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(entry.RetryAfter.Seconds())))
	}

	body := errorBody{
		Code:           entry.Code,
		Message:        entry.UserMessage,
		BusinessImpact: entry.BusinessImpact,
		Details:        details,
	}
	if entry.Recoverable() {
		body.RecoveryAction = entry.RecoveryAction
	}

	c.JSON(entry.HTTPStatus, gin.H{"error": body})
}

// renderDomainError maps a storage/domain error to its catalog code.
// Unrecognized errors become internal errors with the detail withheld.
func (h *Handler) renderDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		h.renderError(c, apperror.CodeJobNotFound, "")
	case errors.Is(err, domain.ErrCompanyNotFound):
		h.renderError(c, apperror.CodeCompanyNotFound, "")
	case errors.Is(err, domain.ErrAnalysisNotFound):
		h.renderError(c, apperror.CodeAnalysisNotFound, "")
	case errors.Is(err, domain.ErrDuplicateJob):
		h.renderError(c, apperror.CodeDuplicateJob, "")
	case errors.Is(err, domain.ErrDuplicateCompany):
		h.renderError(c, apperror.CodeDuplicateCompany, "")
	case errors.Is(err, domain.ErrInvalidSalary),
		errors.Is(err, domain.ErrInvalidSortKey),
		errors.Is(err, domain.ErrInvalidSortOrder):
		h.renderError(c, apperror.CodeValidationError, err.Error())
	default:
		h.logger.Error("Request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		if code := apperror.Classify(err); code != "" {
			h.renderError(c, code, "")
			return
		}
		h.renderError(c, apperror.CodeInternalError, "")
	}
}

// jobToDTO maps a job row to its response shape.
func jobToDTO(job *model.Job) dto.JobDTO {
	out := dto.JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		CompanyName:     job.CompanyName,
		Location:        job.Location,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		Currency:        job.Currency,
		SalaryRange:     job.SalaryRangeDisplay(),
		Description:     job.Description,
		Requirements:    job.Requirements,
		JobLevel:        job.JobLevel,
		EmploymentType:  job.EmploymentType,
		RemoteFriendly:  job.RemoteFriendly,
		PostedDate:      formatTimePtr(job.PostedDate),
		ExpiresDate:     formatTimePtr(job.ExpiresDate),
		SourceURL:       job.SourceURL,
		SourcePlatform:  job.SourcePlatform,
		ExtractedSkills: job.ExtractedSkills,
		IsActive:        job.IsActive,
		IsRecent:        job.IsRecent(),
		CreatedAt:       job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       job.UpdatedAt.Format(time.RFC3339),
	}
	if out.ExtractedSkills == nil {
		out.ExtractedSkills = []string{}
	}
	return out
}

func jobsToDTOs(jobs []model.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobToDTO(&jobs[i]))
	}
	return out
}

// companyToDTO maps a company row to its response shape.
func companyToDTO(company *model.Company) dto.CompanyDTO {
	return dto.CompanyDTO{
		ID:              company.ID,
		Name:            company.Name,
		Description:     company.Description,
		Website:         company.Website,
		Industry:        company.Industry,
		Size:            company.Size,
		Type:            company.Type,
		FoundedYear:     company.FoundedYear,
		Location:        company.DisplayLocation(),
		GlassdoorRating: company.GlassdoorRating,
		EmployeeCount:   company.EmployeeCount,
		IsActive:        company.IsActive,
		IsHiring:        company.IsHiring,
		IsStartup:       company.IsStartup(),
		JobCount:        company.JobCount,
		CreatedAt:       company.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       company.UpdatedAt.Format(time.RFC3339),
	}
}

// analysisToDTO maps an analysis row to its response shape.
func analysisToDTO(analysis *model.Analysis) dto.AnalysisDTO {
	return dto.AnalysisDTO{
		ID:                   analysis.ID,
		JobID:                analysis.JobID,
		UserID:               analysis.UserID,
		AnalysisType:         analysis.AnalysisType,
		AnalysisVersion:      analysis.AnalysisVersion,
		AIModelUsed:          analysis.AIModelUsed,
		MatchScore:           analysis.MatchScore,
		MatchLevel:           analysis.MatchLevel(),
		ConfidenceScore:      analysis.ConfidenceScore,
		ConfidenceLevel:      analysis.ConfidenceLevel(),
		SkillMatchScore:      analysis.SkillMatchScore,
		ExperienceMatchScore: analysis.ExperienceMatchScore,
		LocationMatchScore:   analysis.LocationMatchScore,
		SalaryMatchScore:     analysis.SalaryMatchScore,
		KeyInsights:          jsonTextToStrings(analysis.KeyInsights),
		Recommendations:      jsonTextToStrings(analysis.Recommendations),
		RedFlags:             jsonTextToStrings(analysis.RedFlags),
		Status:               analysis.Status,
		ErrorMessage:         analysis.ErrorMessage,
		ProcessingTimeSecs:   analysis.ProcessingTimeSecs,
		CreatedAt:            analysis.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            analysis.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func parseTimePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		// Accept plain dates as well.
		parsed, err = time.Parse("2006-01-02", *value)
		if err != nil {
			return nil, err
		}
	}
	return &parsed, nil
}

func jsonTextToStrings(text types.JSONText) []string {
	if len(text) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(text, &out); err != nil {
		return nil
	}
	return out
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
