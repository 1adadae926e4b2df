package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	apistorage "github.com/jobhunt-app/jobhunt-be/internal/api/storage"
	"github.com/jobhunt-app/jobhunt-be/internal/scraper"
	"github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/worker/storage"
	"github.com/jobhunt-app/jobhunt-be/shared/postgresql"
	"github.com/jobhunt-app/jobhunt-be/shared/rabbitmq"
	"github.com/jobhunt-app/jobhunt-be/shared/rediscache"
)

// Config holds worker configuration
type Config struct {
	Logger            *slog.Logger
	DBClient          *postgresql.Client
	RabbitClient      *rabbitmq.Client
	Cache             *rediscache.Cache
	Fetcher           *scraper.Fetcher
	QueueName         string
	Concurrency       int
	TaskTimeout       time.Duration
	HeartbeatInterval time.Duration
}

// Worker consumes task messages and executes them against the task ledger
type Worker struct {
	logger            *slog.Logger
	rabbitClient      *rabbitmq.Client
	cache             *rediscache.Cache
	fetcher           *scraper.Fetcher
	storage           *storage.Storage
	apiStorage        *apistorage.Storage
	queueName         string
	workerID          string
	concurrency       int
	prefetchCount     int
	taskTimeout       time.Duration
	heartbeatInterval time.Duration

	tasksChan chan *domain.TaskMessage
	wg        sync.WaitGroup
	stopChan  chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}

	return &Worker{
		logger:            cfg.Logger,
		rabbitClient:      cfg.RabbitClient,
		cache:             cfg.Cache,
		fetcher:           cfg.Fetcher,
		storage:           storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		apiStorage:        apistorage.NewStorage(cfg.DBClient),
		queueName:         cfg.QueueName,
		workerID:          "worker-" + uuid.New().String()[:8],
		concurrency:       cfg.Concurrency,
		prefetchCount:     cfg.Concurrency * 2,
		taskTimeout:       cfg.TaskTimeout,
		heartbeatInterval: heartbeat,
		tasksChan:         make(chan *domain.TaskMessage),
		stopChan:          make(chan struct{}),
	}
}

// Start begins consuming and processing tasks. Blocks until ctx is
// canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("task_timeout", w.taskTimeout),
	)

	deliveries, err := w.setupConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.startMessageDispatcher(ctx, deliveries)
	}()

	<-ctx.Done()
	w.logger.Info("Worker context canceled, stopping...")

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...", slog.String("worker_id", w.workerID))
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped", slog.String("worker_id", w.workerID))
}
