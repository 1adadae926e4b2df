package worker

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jobhunt-app/jobhunt-be/internal/worker/domain"
	"github.com/jobhunt-app/jobhunt-be/shared/logger"
)

// Stop must drain the pool and the dispatcher on its own, without the
// consuming context being canceled first.
func TestStopHaltsDispatcherAndPoolWithoutContextCancel(t *testing.T) {
	w := &Worker{
		logger:      logger.NewDefault().Logger,
		workerID:    "worker-test",
		concurrency: 2,
		tasksChan:   make(chan *domain.TaskMessage),
		stopChan:    make(chan struct{}),
	}

	ctx := context.Background()
	deliveries := make(chan amqp.Delivery)

	w.spawnWorkerPool(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.startMessageDispatcher(ctx, deliveries)
	}()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not drain worker goroutines")
	}
}
