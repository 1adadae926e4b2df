package model

import (
	"time"
)

// Task types executed by the worker service.
const (
	TaskTypeScrapeJobs  = "scrape_jobs"
	TaskTypeAnalyzeJob  = "analyze_job"
	TaskTypeCleanupJobs = "cleanup_jobs"
)

// Task represents a background task record backing the message queue.
type Task struct {
	TaskID          string     `db:"task_id"`
	TaskType        string     `db:"task_type"`
	Payload         string     `db:"payload"`
	Status          string     `db:"status"`
	WorkerID        *string    `db:"worker_id"`
	RetryCount      int        `db:"retry_count"`
	MaxRetries      int        `db:"max_retries"`
	TimeoutSeconds  int        `db:"timeout_seconds"`
	Result          *string    `db:"result"`
	ErrorMessage    *string    `db:"error_message"`
	StartedAt       *time.Time `db:"started_at"`
	CompletedAt     *time.Time `db:"completed_at"`
	LastHeartbeatAt *time.Time `db:"last_heartbeat_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
