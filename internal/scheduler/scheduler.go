package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/api/storage"
	"github.com/jobhunt-app/jobhunt-be/internal/config"
	"github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
	"github.com/jobhunt-app/jobhunt-be/shared/rabbitmq"
)

const (
	defaultTaskMaxRetries    = 3
	defaultTaskTimeoutSecs   = 600
	defaultCleanupMaxAgeDays = 90
	enqueueTimeout           = 30 * time.Second
)

// Scheduler creates periodic tasks on cron schedules and publishes
// their IDs to the queue for the worker pool to claim.
type Scheduler struct {
	logger       *slog.Logger
	storage      *storage.Storage
	rabbitClient *rabbitmq.Client
	cfg          config.SchedulerConfig
	cron         *cron.Cron
}

// NewScheduler creates a scheduler from its cron configuration.
func NewScheduler(cfg config.SchedulerConfig, st *storage.Storage, rabbitClient *rabbitmq.Client, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger:       logger,
		storage:      st,
		rabbitClient: rabbitClient,
		cfg:          cfg,
		cron:         cron.New(),
	}
}

// Start registers the cron entries and starts the scheduler. Returns an
// error when any cron spec fails to parse.
func (s *Scheduler) Start() error {
	if s.cfg.ScrapeSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.ScrapeSpec, s.runScrapeCycle); err != nil {
			return fmt.Errorf("invalid scrape schedule %q: %w", s.cfg.ScrapeSpec, err)
		}
	}

	if s.cfg.AnalyzeSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.AnalyzeSpec, s.runAnalyzeCycle); err != nil {
			return fmt.Errorf("invalid analyze schedule %q: %w", s.cfg.AnalyzeSpec, err)
		}
	}

	if s.cfg.CleanupSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.CleanupSpec, s.runCleanupCycle); err != nil {
			return fmt.Errorf("invalid cleanup schedule %q: %w", s.cfg.CleanupSpec, err)
		}
	}

	s.cron.Start()
	s.logger.Info("Scheduler started",
		slog.String("scrape_spec", s.cfg.ScrapeSpec),
		slog.String("analyze_spec", s.cfg.AnalyzeSpec),
		slog.String("cleanup_spec", s.cfg.CleanupSpec),
	)

	return nil
}

// Stop stops the cron runner and waits for in-flight entries to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// runScrapeCycle enqueues one scrape task with the configured query.
func (s *Scheduler) runScrapeCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	payload := domain.ScrapePayload{
		Query:    s.cfg.ScrapeQuery,
		Location: s.cfg.ScrapeLocation,
		Limit:    s.cfg.ScrapeLimit,
	}

	taskID, err := s.enqueueTask(ctx, model.TaskTypeScrapeJobs, payload)
	if err != nil {
		s.logger.Error("Failed to enqueue scrape task",
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("Scrape task enqueued",
		slog.String("task_id", taskID),
		slog.String("query", s.cfg.ScrapeQuery),
	)
}

// runAnalyzeCycle creates pending analyses for jobs that have none yet
// and enqueues one analyze task per job.
func (s *Scheduler) runAnalyzeCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	batchMax := s.cfg.AnalyzeBatchMax
	if batchMax <= 0 {
		batchMax = 50
	}

	jobIDs, err := s.storage.ListJobIDsWithoutAnalysis(ctx, batchMax)
	if err != nil {
		s.logger.Error("Failed to list jobs without analysis",
			slog.String("error", err.Error()),
		)
		return
	}
	if len(jobIDs) == 0 {
		s.logger.Debug("No jobs pending analysis")
		return
	}

	enqueued := 0
	for _, jobID := range jobIDs {
		now := time.Now()
		analysis := &model.Analysis{
			JobID:           jobID,
			AnalysisType:    model.DefaultAnalysisType,
			AnalysisVersion: model.DefaultAnalysisVersion,
			Status:          model.AnalysisStatusPending,
			KeyInsights:     []byte("[]"),
			Recommendations: []byte("[]"),
			RedFlags:        []byte("[]"),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.storage.CreateAnalysis(ctx, analysis); err != nil {
			s.logger.Error("Failed to create pending analysis",
				slog.Int64("job_id", jobID),
				slog.String("error", err.Error()),
			)
			continue
		}

		payload := domain.AnalyzePayload{
			AnalysisID: analysis.ID,
			JobID:      jobID,
		}
		if _, err := s.enqueueTask(ctx, model.TaskTypeAnalyzeJob, payload); err != nil {
			s.logger.Error("Failed to enqueue analyze task",
				slog.Int64("job_id", jobID),
				slog.String("error", err.Error()),
			)
			continue
		}
		enqueued++
	}

	s.logger.Info("Analyze cycle completed",
		slog.Int("candidates", len(jobIDs)),
		slog.Int("enqueued", enqueued),
	)
}

// runCleanupCycle enqueues one cleanup task.
func (s *Scheduler) runCleanupCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	maxAge := s.cfg.CleanupMaxAge
	if maxAge <= 0 {
		maxAge = defaultCleanupMaxAgeDays
	}

	taskID, err := s.enqueueTask(ctx, model.TaskTypeCleanupJobs, domain.CleanupPayload{MaxAgeDays: maxAge})
	if err != nil {
		s.logger.Error("Failed to enqueue cleanup task",
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("Cleanup task enqueued",
		slog.String("task_id", taskID),
		slog.Int("max_age_days", maxAge),
	)
}

// enqueueTask persists a PENDING task row, then publishes its ID.
func (s *Scheduler) enqueueTask(ctx context.Context, taskType string, payload any) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	now := time.Now()
	task := &model.Task{
		TaskID:         uuid.New().String(),
		TaskType:       taskType,
		Payload:        string(payloadJSON),
		Status:         domain.TaskStatusPending,
		MaxRetries:     defaultTaskMaxRetries,
		TimeoutSeconds: defaultTaskTimeoutSecs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.CreateTask(ctx, task); err != nil {
		return "", err
	}

	message, err := json.Marshal(map[string]string{"task_id": task.TaskID})
	if err != nil {
		return "", fmt.Errorf("marshal task message: %w", err)
	}

	if err := s.rabbitClient.PublishWithRetry(ctx, message, "application/json"); err != nil {
		return "", fmt.Errorf("publish task message: %w", err)
	}

	return task.TaskID, nil
}
