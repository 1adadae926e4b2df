package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/dto"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/api/storage"
	"github.com/jobhunt-app/jobhunt-be/internal/apperror"
	"github.com/jobhunt-app/jobhunt-be/internal/metrics"
	"github.com/jobhunt-app/jobhunt-be/internal/scrape"
	"github.com/jobhunt-app/jobhunt-be/shared/rediscache"
)

// ListJobs handles GET /jobs
func (h *Handler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	jobs, total, err := h.storage.ListJobs(c.Request.Context(), req.Skip, req.Limit)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:  jobsToDTOs(jobs),
		Total: total,
		Skip:  req.Skip,
		Limit: req.Limit,
	})
}

// SearchJobs handles GET /jobs/search
func (h *Handler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	// url.Values.Encode sorts keys, so equivalent requests share a key.
	cacheKey := rediscache.JobSearchKey(c.Request.URL.Query().Encode())

	if h.cache != nil {
		var cached dto.ListJobsResponse
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, cached)
			return
		}
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
	}

	filter := storage.JobSearchFilter{
		Query:          req.Query,
		Location:       req.Location,
		Company:        req.Company,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Remote:         req.Remote,
		HasSalary:      req.HasSalary,
		PostedDaysAgo:  req.PostedDaysAgo,
		Skills:         req.Skills,
		Skip:           req.Skip,
		Limit:          req.Limit,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}

	jobs, total, err := h.storage.SearchJobs(c.Request.Context(), filter)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	resp := dto.ListJobsResponse{
		Jobs:  jobsToDTOs(jobs),
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, resp, h.cfg.Cache.SearchTTL); err != nil {
			h.logger.Warn("Failed to cache search results",
				slog.String("error", err.Error()),
			)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetJob handles GET /jobs/:id
func (h *Handler) GetJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid job id")
		return
	}

	cacheKey := rediscache.JobKey(id)
	if h.cache != nil {
		var cached dto.JobDTO
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, cached)
			return
		}
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
	}

	job, err := h.storage.GetJobByID(c.Request.Context(), id)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	resp := jobToDTO(job)
	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, resp, h.cfg.Cache.JobTTL); err != nil {
			h.logger.Warn("Failed to cache job",
				slog.Int64("job_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CreateJob handles POST /jobs
func (h *Handler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		h.renderDomainError(c, domain.ErrInvalidSalary)
		return
	}

	postedDate, err := parseTimePtr(req.PostedDate)
	if err != nil {
		h.renderError(c, apperror.CodeValidationError, "invalid posted_date")
		return
	}
	expiresDate, err := parseTimePtr(req.ExpiresDate)
	if err != nil {
		h.renderError(c, apperror.CodeValidationError, "invalid expires_date")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	platform := req.SourcePlatform
	if platform == "" {
		platform = domain.PlatformManual
	}

	skills := req.Skills
	if len(skills) == 0 {
		var text strings.Builder
		if req.Description != nil {
			text.WriteString(*req.Description)
			text.WriteString(" ")
		}
		if req.Requirements != nil {
			text.WriteString(*req.Requirements)
		}
		skills = scrape.ExtractSkills(text.String())
	}

	now := time.Now()
	job := &model.Job{
		Title:           req.Title,
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Currency:        currency,
		Description:     req.Description,
		Requirements:    req.Requirements,
		JobLevel:        req.JobLevel,
		EmploymentType:  req.EmploymentType,
		RemoteFriendly:  req.RemoteFriendly,
		PostedDate:      postedDate,
		ExpiresDate:     expiresDate,
		SourceURL:       req.SourceURL,
		SourcePlatform:  platform,
		ExtractedSkills: pq.StringArray(skills),
		CreatedAt:       now,
		UpdatedAt:       now,
		IsActive:        true,
	}

	if err := h.storage.CreateJob(c.Request.Context(), job); err != nil {
		h.renderDomainError(c, err)
		return
	}

	if _, err := h.storage.UpsertCompanyByName(c.Request.Context(), job.CompanyName); err != nil {
		h.logger.Warn("Failed to upsert company for new job",
			slog.String("company", job.CompanyName),
			slog.String("error", err.Error()),
		)
	} else if err := h.storage.RefreshCompanyJobCount(c.Request.Context(), job.CompanyName); err != nil {
		h.logger.Warn("Failed to refresh company job count",
			slog.String("company", job.CompanyName),
			slog.String("error", err.Error()),
		)
	}

	h.invalidateJobCaches(c, job.ID)

	resp := gin.H{"job": jobToDTO(job)}

	if req.RunAnalysis {
		analysis, err := h.createPendingAnalysis(c, job.ID, nil)
		if err != nil {
			h.logger.Error("Failed to schedule analysis for new job",
				slog.Int64("job_id", job.ID),
				slog.String("error", err.Error()),
			)
		} else {
			resp["analysis_id"] = analysis.ID
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateJob handles PUT /jobs/:id
func (h *Handler) UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid job id")
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		h.renderDomainError(c, domain.ErrInvalidSalary)
		return
	}

	expiresDate, err := parseTimePtr(req.ExpiresDate)
	if err != nil {
		h.renderError(c, apperror.CodeValidationError, "invalid expires_date")
		return
	}

	update := storage.JobUpdate{
		Title:           req.Title,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Description:     req.Description,
		Requirements:    req.Requirements,
		JobLevel:        req.JobLevel,
		EmploymentType:  req.EmploymentType,
		RemoteFriendly:  req.RemoteFriendly,
		ExpiresDate:     expiresDate,
		ExtractedSkills: req.Skills,
		IsActive:        req.IsActive,
	}

	job, err := h.storage.UpdateJob(c.Request.Context(), id, update)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	h.invalidateJobCaches(c, id)

	c.JSON(http.StatusOK, jobToDTO(job))
}

// DeleteJob handles DELETE /jobs/:id
func (h *Handler) DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid job id")
		return
	}

	if err := h.storage.SoftDeleteJob(c.Request.Context(), id); err != nil {
		h.renderDomainError(c, err)
		return
	}

	h.invalidateJobCaches(c, id)

	c.Status(http.StatusNoContent)
}

// GetJobStatistics handles GET /jobs/statistics/summary
func (h *Handler) GetJobStatistics(c *gin.Context) {
	cacheKey := rediscache.JobStatisticsKey()
	if h.cache != nil {
		var cached dto.JobStatisticsResponse
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			metrics.CacheOperationsTotal.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, cached)
			return
		}
		metrics.CacheOperationsTotal.WithLabelValues("miss").Inc()
	}

	stats, err := h.storage.GetJobStatistics(c.Request.Context())
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	resp := dto.JobStatisticsResponse{
		TotalJobs:        stats.TotalJobs,
		ActiveJobs:       stats.ActiveJobs,
		RecentJobs:       stats.RecentJobs,
		JobsWithSalary:   stats.JobsWithSalary,
		TopCompanies:     nameCountsToEntries(stats.TopCompanies),
		TopLocations:     nameCountsToEntries(stats.TopLocations),
		AverageSalaryMin: stats.AverageSalaryMin,
		AverageSalaryMax: stats.AverageSalaryMax,
	}
	if stats.ActiveJobs > 0 {
		resp.RemoteShare = float64(stats.RemoteJobs) / float64(stats.ActiveJobs)
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), cacheKey, resp, h.cfg.Cache.StatsTTL); err != nil {
			h.logger.Warn("Failed to cache job statistics",
				slog.String("error", err.Error()),
			)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// invalidateJobCaches drops the single-job key plus every cached search
// page and the statistics summary.
func (h *Handler) invalidateJobCaches(c *gin.Context, jobID int64) {
	if h.cache == nil {
		return
	}

	ctx := c.Request.Context()
	if err := h.cache.Delete(ctx, rediscache.JobKey(jobID), rediscache.JobStatisticsKey()); err != nil {
		h.logger.Warn("Failed to invalidate job cache",
			slog.Int64("job_id", jobID),
			slog.String("error", err.Error()),
		)
	}
	if err := h.cache.DeleteByPattern(ctx, rediscache.JobSearchPattern()); err != nil {
		h.logger.Warn("Failed to invalidate search cache",
			slog.String("error", err.Error()),
		)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues("invalidate").Inc()
	}
}

func nameCountsToEntries(counts []storage.NameCount) []dto.NameCountEntry {
	out := make([]dto.NameCountEntry, 0, len(counts))
	for _, nc := range counts {
		out = append(out, dto.NameCountEntry{Name: nc.Name, Count: nc.Count})
	}
	return out
}
