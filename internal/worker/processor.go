package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobhunt-app/jobhunt-be/internal/metrics"
	"github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
)

// processTask processes a single task with timeout, heartbeat, and status updates
func (w *Worker) processTask(ctx context.Context, msg *domain.TaskMessage) error {
	w.logger.Info("Processing task",
		slog.String("task_id", msg.TaskID),
		slog.String("worker_id", w.workerID),
	)

	// Claim via optimistic locking (PENDING -> RUNNING).
	task, err := w.storage.ClaimTask(ctx, msg.TaskID, w.workerID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskAlreadyClaimed) {
			w.logger.Warn("Task already claimed, skipping",
				slog.String("task_id", msg.TaskID),
			)
			return fmt.Errorf("task already claimed: %w", err)
		}
		return fmt.Errorf("failed to claim task: %w", err)
	}

	taskTimeout := w.taskTimeout
	if task.TimeoutSeconds > 0 {
		taskTimeout = time.Duration(task.TimeoutSeconds) * time.Second
	}

	taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	heartbeatDone := make(chan struct{})
	go w.sendTaskHeartbeat(taskCtx, task.TaskID, heartbeatDone)
	defer close(heartbeatDone)

	started := time.Now()
	result, err := w.executeTask(taskCtx, task)
	metrics.TaskDuration.WithLabelValues(task.TaskType).Observe(time.Since(started).Seconds())

	if err != nil {
		w.logger.Error("Task execution failed",
			slog.String("task_id", task.TaskID),
			slog.String("task_type", task.TaskType),
			slog.String("error", err.Error()),
		)
		metrics.TasksProcessedTotal.WithLabelValues(task.TaskType, "failure").Inc()

		// Non-retryable payload problems fail the task outright.
		if errors.Is(err, domain.ErrInvalidPayload) || errors.Is(err, domain.ErrUnknownTaskType) {
			if updateErr := w.storage.UpdateTaskStatus(ctx, task.TaskID, domain.TaskStatusFailed, nil, err.Error()); updateErr != nil {
				w.logger.Error("Failed to update task status to FAILED",
					slog.String("task_id", task.TaskID),
					slog.String("error", updateErr.Error()),
				)
			}
			return err
		}

		if task.RetryCount < task.MaxRetries {
			w.logger.Info("Task will be retried",
				slog.String("task_id", task.TaskID),
				slog.Int("retry_count", task.RetryCount),
				slog.Int("max_retries", task.MaxRetries),
			)
			// Return to PENDING so the redelivered message can claim it.
			if retryErr := w.storage.IncrementTaskRetry(ctx, task.TaskID); retryErr != nil {
				w.logger.Error("Failed to reset task for retry",
					slog.String("task_id", task.TaskID),
					slog.String("error", retryErr.Error()),
				)
			}
			return domain.NewRetryableError(fmt.Errorf("task execution failed: %w", err))
		}

		w.logger.Warn("Task exceeded max retries",
			slog.String("task_id", task.TaskID),
			slog.Int("retry_count", task.RetryCount),
			slog.Int("max_retries", task.MaxRetries),
		)
		if updateErr := w.storage.UpdateTaskStatus(ctx, task.TaskID, domain.TaskStatusFailed, nil, err.Error()); updateErr != nil {
			w.logger.Error("Failed to update task status to FAILED",
				slog.String("task_id", task.TaskID),
				slog.String("error", updateErr.Error()),
			)
		}
		return fmt.Errorf("%w: %v", domain.ErrMaxRetriesExceeded, err)
	}

	w.logger.Info("Task completed successfully",
		slog.String("task_id", task.TaskID),
		slog.String("task_type", task.TaskType),
	)
	metrics.TasksProcessedTotal.WithLabelValues(task.TaskType, "success").Inc()

	if updateErr := w.storage.UpdateTaskStatus(ctx, task.TaskID, domain.TaskStatusCompleted, result, ""); updateErr != nil {
		w.logger.Error("Failed to update task status to COMPLETED",
			slog.String("task_id", task.TaskID),
			slog.String("error", updateErr.Error()),
		)
		// Task completed but status update failed - still ACK.
	}

	return nil
}

// sendTaskHeartbeat periodically updates the task's heartbeat timestamp
func (w *Worker) sendTaskHeartbeat(ctx context.Context, taskID string, done <-chan struct{}) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case <-ctx.Done():
			return

		case <-ticker.C:
			if err := w.storage.UpdateTaskHeartbeat(ctx, taskID); err != nil {
				w.logger.Warn("Failed to update task heartbeat",
					slog.String("task_id", taskID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
