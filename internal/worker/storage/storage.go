package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
)

// Storage handles task-ledger database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// GetTaskByID retrieves a task from the database by its ID
func (s *Storage) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT task_id, task_type, payload, status, worker_id, retry_count, max_retries, timeout_seconds
		FROM tasks
		WHERE task_id = $1
	`

	var task domain.Task
	var workerID sql.NullString

	err := s.db.QueryRowContext(ctx, query, taskID).Scan(
		&task.TaskID,
		&task.TaskType,
		&task.Payload,
		&task.Status,
		&workerID,
		&task.RetryCount,
		&task.MaxRetries,
		&task.TimeoutSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if workerID.Valid {
		task.WorkerID = workerID.String
	}

	return &task, nil
}

// ClaimTask attempts to claim a task using optimistic locking.
// Returns full task details on success, error if the task is already
// claimed or doesn't exist.
func (s *Storage) ClaimTask(ctx context.Context, taskID, workerID string) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1,
		    worker_id = $2,
		    started_at = NOW(),
		    last_heartbeat_at = NOW(),
		    updated_at = NOW()
		WHERE task_id = $3
		  AND status = $4
		RETURNING task_id, task_type, payload, retry_count, max_retries, timeout_seconds
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, domain.TaskStatusRunning, workerID, taskID, domain.TaskStatusPending).Scan(
		&task.TaskID,
		&task.TaskType,
		&task.Payload,
		&task.RetryCount,
		&task.MaxRetries,
		&task.TimeoutSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.logger.Warn("Failed to claim task - already claimed or not found",
				slog.String("task_id", taskID),
				slog.String("worker_id", workerID),
			)
			return nil, domain.ErrTaskAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	task.Status = domain.TaskStatusRunning
	task.WorkerID = workerID

	s.logger.Info("Task claimed successfully",
		slog.String("task_id", taskID),
		slog.String("worker_id", workerID),
		slog.String("task_type", task.TaskType),
	)

	return &task, nil
}

// UpdateTaskStatus updates the task status and optionally sets result/error
func (s *Storage) UpdateTaskStatus(ctx context.Context, taskID, status string, result map[string]interface{}, errorMsg string) error {
	query := `
		UPDATE tasks
		SET status = $1::text,
			result = $2,
			error_message = $3,
			completed_at = CASE
				WHEN $1::text IN ($4::text, $5::text) THEN NOW()
				ELSE NULL
			END,
			updated_at = NOW()
		WHERE task_id = $6
	`

	var resultJSON []byte
	var err error
	if result != nil {
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, query, status, resultJSON, errorMsg, domain.TaskStatusCompleted, domain.TaskStatusFailed, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Info("Task status updated",
		slog.String("task_id", taskID),
		slog.String("status", status),
	)

	return nil
}

// IncrementTaskRetry bumps retry_count and returns the task to PENDING so
// a redelivered message can claim it again.
func (s *Storage) IncrementTaskRetry(ctx context.Context, taskID string) error {
	query := `
		UPDATE tasks
		SET status = $1,
		    retry_count = retry_count + 1,
		    worker_id = NULL,
		    updated_at = NOW()
		WHERE task_id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, domain.TaskStatusPending, taskID); err != nil {
		return fmt.Errorf("failed to increment task retry: %w", err)
	}

	return nil
}

// UpdateTaskHeartbeat updates the last_heartbeat_at timestamp for a running task
func (s *Storage) UpdateTaskHeartbeat(ctx context.Context, taskID string) error {
	query := `
		UPDATE tasks
		SET last_heartbeat_at = NOW(),
		    updated_at = NOW()
		WHERE task_id = $1 AND status = $2
	`

	result, err := s.db.ExecContext(ctx, query, taskID, domain.TaskStatusRunning)
	if err != nil {
		return fmt.Errorf("failed to update task heartbeat: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Task heartbeat update - no rows affected (task may not be running)",
			slog.String("task_id", taskID),
		)
	}

	return nil
}
