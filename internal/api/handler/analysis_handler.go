package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/dto"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/apperror"
	workerdomain "github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
)

const analysisTaskTimeoutSecs = 300

// GetAnalysis handles GET /analysis/:id
func (h *Handler) GetAnalysis(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid analysis id")
		return
	}

	analysis, err := h.storage.GetAnalysisByID(c.Request.Context(), id)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysisToDTO(analysis))
}

// GetJobAnalysis handles GET /jobs/:id/analysis - the latest analysis for
// a job.
func (h *Handler) GetJobAnalysis(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid job id")
		return
	}

	analysis, err := h.storage.GetLatestAnalysisForJob(c.Request.Context(), jobID)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysisToDTO(analysis))
}

// AnalyzeJob handles POST /analysis/jobs/:id/analyze - schedules a match analysis
// for the job. Returns the existing analysis when one is already present
// and force is not set.
func (h *Handler) AnalyzeJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid job id")
		return
	}

	var req dto.AnalyzeJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.renderError(c, apperror.CodeValidationError, err.Error())
			return
		}
	}

	if _, err := h.storage.GetJobByID(c.Request.Context(), jobID); err != nil {
		h.renderDomainError(c, err)
		return
	}

	if !req.Force {
		existing, err := h.storage.GetLatestAnalysisForJob(c.Request.Context(), jobID)
		if err == nil && existing.Status != model.AnalysisStatusFailed {
			c.JSON(http.StatusOK, analysisToDTO(existing))
			return
		}
		if err != nil && !errors.Is(err, domain.ErrAnalysisNotFound) {
			h.renderDomainError(c, err)
			return
		}
	}

	analysis, err := h.createPendingAnalysis(c, jobID, req.UserID)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, analysisToDTO(analysis))
}

// CreateAnalysis handles POST /analysis - schedules an analysis for an
// arbitrary job.
func (h *Handler) CreateAnalysis(c *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	if _, err := h.storage.GetJobByID(c.Request.Context(), req.JobID); err != nil {
		h.renderDomainError(c, err)
		return
	}

	analysis, err := h.createPendingAnalysis(c, req.JobID, req.UserID)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, analysisToDTO(analysis))
}

// GetAnalysisStatistics handles GET /analysis/statistics
func (h *Handler) GetAnalysisStatistics(c *gin.Context) {
	stats, err := h.storage.GetAnalysisStatistics(c.Request.Context())
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnalysisStatisticsResponse{
		TotalAnalyses:        stats.Total,
		CountsByStatus:       stats.CountsByStatus,
		AverageMatchScore:    stats.AverageMatchScore,
		AverageProcessingSec: stats.AverageProcessingSec,
		HighMatchCount:       stats.HighMatchCount,
		ErrorCounts:          apperror.Counts(),
	})
}

// createPendingAnalysis inserts a pending analysis row and enqueues the
// analyze task for the worker service.
func (h *Handler) createPendingAnalysis(c *gin.Context, jobID int64, userID *string) (*model.Analysis, error) {
	ctx := c.Request.Context()

	now := time.Now()
	analysis := &model.Analysis{
		JobID:           jobID,
		UserID:          userID,
		AnalysisType:    model.DefaultAnalysisType,
		AnalysisVersion: model.DefaultAnalysisVersion,
		Status:          model.AnalysisStatusPending,
		KeyInsights:     []byte("[]"),
		Recommendations: []byte("[]"),
		RedFlags:        []byte("[]"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.storage.CreateAnalysis(ctx, analysis); err != nil {
		return nil, err
	}

	if err := h.enqueueAnalyzeTask(ctx, analysis.ID, jobID, userID); err != nil {
		failErr := h.storage.FailAnalysis(ctx, analysis.ID, "failed to enqueue analysis task")
		if failErr != nil {
			return nil, fmt.Errorf("enqueue analysis task: %w", err)
		}
		return nil, err
	}

	return analysis, nil
}

func (h *Handler) enqueueAnalyzeTask(ctx context.Context, analysisID, jobID int64, userID *string) error {
	payload, err := json.Marshal(workerdomain.AnalyzePayload{
		AnalysisID: analysisID,
		JobID:      jobID,
		UserID:     userID,
	})
	if err != nil {
		return fmt.Errorf("marshal analyze payload: %w", err)
	}

	now := time.Now()
	task := &model.Task{
		TaskID:         uuid.New().String(),
		TaskType:       model.TaskTypeAnalyzeJob,
		Payload:        string(payload),
		Status:         workerdomain.TaskStatusPending,
		MaxRetries:     3,
		TimeoutSeconds: analysisTaskTimeoutSecs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.storage.CreateTask(ctx, task); err != nil {
		return err
	}

	message, err := json.Marshal(map[string]string{"task_id": task.TaskID})
	if err != nil {
		return fmt.Errorf("marshal task message: %w", err)
	}

	return h.rabbitClient.PublishWithRetry(ctx, message, "application/json")
}
