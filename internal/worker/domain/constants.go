package domain

// Task status constants
const (
	TaskStatusPending   = "PENDING"
	TaskStatusRunning   = "RUNNING"
	TaskStatusCompleted = "COMPLETED"
	TaskStatusFailed    = "FAILED"
	TaskStatusCanceled  = "CANCELED"
)

// Task types executed by the worker
const (
	TaskTypeScrapeJobs  = "scrape_jobs"
	TaskTypeAnalyzeJob  = "analyze_job"
	TaskTypeCleanupJobs = "cleanup_jobs"
)
