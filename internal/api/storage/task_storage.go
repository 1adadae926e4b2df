package storage

import (
	"context"
	"fmt"

	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
)

// CreateTask inserts a task record in PENDING state. The task ID is then
// published to the queue for the worker service to claim.
func (s *Storage) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (
			task_id, task_type, payload, status, retry_count, max_retries,
			timeout_seconds, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		task.TaskID,
		task.TaskType,
		task.Payload,
		task.Status,
		task.RetryCount,
		task.MaxRetries,
		task.TimeoutSeconds,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}
