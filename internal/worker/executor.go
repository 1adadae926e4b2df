package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/jobhunt-app/jobhunt-be/internal/analyzer"
	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/apperror"
	"github.com/jobhunt-app/jobhunt-be/internal/metrics"
	"github.com/jobhunt-app/jobhunt-be/internal/scrape"
	"github.com/jobhunt-app/jobhunt-be/internal/scraper"
	workerdomain "github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
	"github.com/jobhunt-app/jobhunt-be/shared/rediscache"
)

// minRelevanceScore filters out postings that match none of the tracked
// role signals before they reach the database.
const minRelevanceScore = 0.1

// defaultProfile is the candidate baseline jobs are scored against when a
// task carries no user-specific profile.
var defaultProfile = analyzer.Profile{
	Skills: []string{
		"SQL", "Excel", "Tableau", "Strategy", "Financial Analysis",
		"Project Management", "Leadership", "Communication",
	},
	ExperienceLevel:    "mid",
	PreferredLocations: []string{"Remote", "New York", "San Francisco"},
	SalaryMin:          90000,
	SalaryMax:          180000,
}

// executeTask runs the task body for the claimed task's type.
func (w *Worker) executeTask(ctx context.Context, task *workerdomain.Task) (map[string]interface{}, error) {
	switch task.TaskType {
	case workerdomain.TaskTypeScrapeJobs:
		return w.executeScrapeTask(ctx, task)
	case workerdomain.TaskTypeAnalyzeJob:
		return w.executeAnalyzeTask(ctx, task)
	case workerdomain.TaskTypeCleanupJobs:
		return w.executeCleanupTask(ctx, task)
	default:
		return nil, fmt.Errorf("%w: %s", workerdomain.ErrUnknownTaskType, task.TaskType)
	}
}

// executeScrapeTask fetches postings, normalizes them, and inserts the
// unique ones.
func (w *Worker) executeScrapeTask(ctx context.Context, task *workerdomain.Task) (map[string]interface{}, error) {
	var payload workerdomain.ScrapePayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", workerdomain.ErrInvalidPayload, err)
	}

	postings, err := w.fetcher.Fetch(ctx, payload.Query, payload.Location, payload.Limit)
	if err != nil {
		w.recordCatalogError(err)
		// Upstream fetch failures are transient; retry the task.
		return nil, workerdomain.NewRetryableError(fmt.Errorf("fetch postings: %w", err))
	}

	metrics.JobsScrapedTotal.WithLabelValues(w.fetcher.Platform()).Add(float64(len(postings)))

	dedup := scrape.NewDeduplicator()
	inserted := 0
	duplicates := 0
	skippedLowRelevance := 0
	companies := make(map[string]struct{})

	for _, posting := range postings {
		if posting.Title == "" || posting.Company == "" || posting.SourceURL == "" {
			continue
		}

		location := scrape.NormalizeLocation(posting.Location)

		if dedup.IsDuplicate(posting.Title, posting.Company, location) {
			duplicates++
			metrics.JobsDeduplicatedTotal.Inc()
			continue
		}

		job := w.buildJob(posting, location)

		relevance := scrape.RelevanceScore(scrape.RelevanceInput{
			Title:       job.Title,
			CompanyName: job.CompanyName,
			Skills:      job.ExtractedSkills,
			SalaryMin:   job.SalaryMin,
		})
		if relevance < minRelevanceScore {
			skippedLowRelevance++
			continue
		}

		if err := w.apiStorage.CreateJob(ctx, job); err != nil {
			if err == domain.ErrDuplicateJob {
				duplicates++
				metrics.JobsDeduplicatedTotal.Inc()
				continue
			}
			w.recordCatalogError(err)
			return nil, workerdomain.NewRetryableError(fmt.Errorf("insert job: %w", err))
		}
		inserted++
		companies[posting.Company] = struct{}{}
	}

	for name := range companies {
		if _, err := w.apiStorage.UpsertCompanyByName(ctx, name); err != nil {
			w.logger.Warn("Failed to upsert company",
				slog.String("company", name),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := w.apiStorage.RefreshCompanyJobCount(ctx, name); err != nil {
			w.logger.Warn("Failed to refresh company job count",
				slog.String("company", name),
				slog.String("error", err.Error()),
			)
		}
	}

	w.invalidateSearchCache(ctx)

	stats := dedup.Stats()
	return map[string]interface{}{
		"fetched":       len(postings),
		"inserted":      inserted,
		"duplicates":    duplicates,
		"low_relevance": skippedLowRelevance,
		"companies":     len(companies),
		"unique":        stats.UniqueJobs,
	}, nil
}

// buildJob converts a raw posting into a job row: location normalized,
// salary parsed, skills extracted.
func (w *Worker) buildJob(posting scraper.Posting, location string) *model.Job {
	now := time.Now()

	job := &model.Job{
		Title:          posting.Title,
		CompanyName:    posting.Company,
		Currency:       "USD",
		SourceURL:      posting.SourceURL,
		SourcePlatform: w.fetcher.Platform(),
		RemoteFriendly: scrape.IsRemoteLocation(posting.Location),
		CreatedAt:      now,
		UpdatedAt:      now,
		IsActive:       true,
	}

	if location != "" {
		job.Location = &location
	}
	if posting.Description != "" {
		description := posting.Description
		job.Description = &description
	}
	if posting.ContractType != "" {
		contractType := posting.ContractType
		job.EmploymentType = &contractType
	}

	if posting.SalaryMin > 0 {
		min := int64(posting.SalaryMin)
		job.SalaryMin = &min
	}
	if posting.SalaryMax > 0 {
		max := int64(posting.SalaryMax)
		job.SalaryMax = &max
	}
	if job.SalaryMin == nil && job.SalaryMax == nil {
		parsed := scrape.ParseSalary(posting.Description)
		job.SalaryMin, job.SalaryMax = parsed.AnnualBounds()
		if parsed.Currency != "" {
			job.Currency = parsed.Currency
		}
	}

	if skills := scrape.ExtractSkills(posting.Description); len(skills) > 0 {
		job.ExtractedSkills = pq.StringArray(skills)
	}

	if posting.PublishedAt != "" {
		if posted, err := time.Parse(time.RFC3339, posting.PublishedAt); err == nil {
			job.PostedDate = &posted
		}
	}

	return job
}

// executeAnalyzeTask scores a job against the candidate profile and
// records the result on the analysis row.
func (w *Worker) executeAnalyzeTask(ctx context.Context, task *workerdomain.Task) (map[string]interface{}, error) {
	var payload workerdomain.AnalyzePayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", workerdomain.ErrInvalidPayload, err)
	}
	if payload.AnalysisID == 0 || payload.JobID == 0 {
		return nil, fmt.Errorf("%w: analysis_id and job_id are required", workerdomain.ErrInvalidPayload)
	}

	claimed, err := w.apiStorage.MarkAnalysisProcessing(ctx, payload.AnalysisID)
	if err != nil {
		w.recordCatalogError(err)
		return nil, workerdomain.NewRetryableError(fmt.Errorf("mark analysis processing: %w", err))
	}
	if !claimed {
		w.logger.Warn("Analysis not in pending state, skipping",
			slog.Int64("analysis_id", payload.AnalysisID),
		)
		return map[string]interface{}{"skipped": true}, nil
	}

	job, err := w.apiStorage.GetJobByID(ctx, payload.JobID)
	if err != nil {
		_ = w.apiStorage.FailAnalysis(ctx, payload.AnalysisID, err.Error())
		metrics.AnalysesCompletedTotal.WithLabelValues(model.AnalysisStatusFailed).Inc()
		if err == domain.ErrJobNotFound {
			return nil, fmt.Errorf("%w: job %d not found", workerdomain.ErrInvalidPayload, payload.JobID)
		}
		return nil, workerdomain.NewRetryableError(fmt.Errorf("load job: %w", err))
	}

	started := time.Now()
	scored := analyzer.ScoreJob(job, defaultProfile)
	processingSecs := time.Since(started).Seconds()

	overall := model.ClampScore(scored.OverallScore)
	skill := model.ClampScore(scored.SkillScore)
	experience := model.ClampScore(scored.ExperienceScore)
	locationScore := model.ClampScore(scored.LocationScore)
	salary := model.ClampScore(scored.SalaryScore)

	modelUsed := analyzer.ModelVersion
	analysis := &model.Analysis{
		ID:                   payload.AnalysisID,
		JobID:                payload.JobID,
		AIModelUsed:          &modelUsed,
		MatchScore:           &overall,
		ConfidenceScore:      model.ClampScore(scored.ConfidenceScore),
		SkillMatchScore:      &skill,
		ExperienceMatchScore: &experience,
		LocationMatchScore:   &locationScore,
		SalaryMatchScore:     &salary,
		KeyInsights:          mustJSON(scored.KeyInsights),
		Recommendations:      mustJSON(scored.Recommendations),
		RedFlags:             mustJSON(scored.RedFlags),
		ProcessingTimeSecs:   &processingSecs,
	}

	if err := w.apiStorage.CompleteAnalysis(ctx, analysis); err != nil {
		w.recordCatalogError(err)
		return nil, workerdomain.NewRetryableError(fmt.Errorf("complete analysis: %w", err))
	}
	metrics.AnalysesCompletedTotal.WithLabelValues(model.AnalysisStatusCompleted).Inc()

	if w.cache != nil {
		_ = w.cache.Delete(ctx, rediscache.JobKey(payload.JobID))
	}

	return map[string]interface{}{
		"analysis_id": payload.AnalysisID,
		"job_id":      payload.JobID,
		"match_score": overall,
		"match_level": analysis.MatchLevel(),
	}, nil
}

// executeCleanupTask deactivates expired jobs and purges long-inactive
// rows.
func (w *Worker) executeCleanupTask(ctx context.Context, task *workerdomain.Task) (map[string]interface{}, error) {
	var payload workerdomain.CleanupPayload
	if task.Payload != "" {
		if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", workerdomain.ErrInvalidPayload, err)
		}
	}

	maxAgeDays := payload.MaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = 90
	}

	deactivated, err := w.apiStorage.DeactivateExpiredJobs(ctx)
	if err != nil {
		w.recordCatalogError(err)
		return nil, workerdomain.NewRetryableError(fmt.Errorf("deactivate expired jobs: %w", err))
	}

	purged, err := w.apiStorage.PurgeInactiveJobs(ctx, time.Duration(maxAgeDays)*24*time.Hour)
	if err != nil {
		w.recordCatalogError(err)
		return nil, workerdomain.NewRetryableError(fmt.Errorf("purge inactive jobs: %w", err))
	}

	w.invalidateSearchCache(ctx)

	return map[string]interface{}{
		"deactivated": deactivated,
		"purged":      purged,
	}, nil
}

// recordCatalogError resolves the failure category and bumps the error
// metrics for anything the classifier recognizes.
func (w *Worker) recordCatalogError(err error) {
	code := apperror.Classify(err)
	if code == "" {
		return
	}
	entry := apperror.Resolve(code)
	metrics.ErrorsTotal.WithLabelValues(entry.Code, entry.BusinessImpact).Inc()
}

func (w *Worker) invalidateSearchCache(ctx context.Context) {
	if w.cache == nil {
		return
	}
	if err := w.cache.DeleteByPattern(ctx, rediscache.JobSearchPattern()); err != nil {
		w.logger.Warn("Failed to invalidate search cache",
			slog.String("error", err.Error()),
		)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues("invalidate").Inc()
	}
	if err := w.cache.Delete(ctx, rediscache.JobStatisticsKey()); err != nil {
		w.logger.Warn("Failed to invalidate statistics cache",
			slog.String("error", err.Error()),
		)
	}
}

func mustJSON(values []string) types.JSONText {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return types.JSONText("[]")
	}
	return types.JSONText(data)
}
