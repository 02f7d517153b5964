package poster

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"lookhub/internal/broker"
	"lookhub/internal/logger"
)

// Worker consumes the fan-out and delivery queues with a fixed pool of goroutines.
type Worker struct {
	queue        *Queue
	dispatcher   *Dispatcher
	deliverer    *Deliverer
	concurrency  int
	pollTimeout  time.Duration
	promoteEvery time.Duration
}

func NewWorker(queue *Queue, dispatcher *Dispatcher, deliverer *Deliverer, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Worker{
		queue:        queue,
		dispatcher:   dispatcher,
		deliverer:    deliverer,
		concurrency:  concurrency,
		pollTimeout:  2 * time.Second,
		promoteEvery: time.Second,
	}
}

// Run blocks until ctx is cancelled and all consumers have stopped.
func (w *Worker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.promoteLoop(ctx)
	}()

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.consume(ctx, id)
		}(i)
	}

	logger.Info("Poster worker started", "concurrency", w.concurrency)
	wg.Wait()
	logger.Info("Poster worker stopped")
}

func (w *Worker) consume(ctx context.Context, id int) {
	for {
		if ctx.Err() != nil {
			return
		}

		queue, payload, err := w.queue.Next(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, broker.ErrEmpty) || ctx.Err() != nil {
				continue
			}
			logger.WorkerLog("poster", "pop", err, "consumer", id)
			sleep(ctx, time.Second)
			continue
		}

		w.handle(ctx, queue, payload)
	}
}

// handle routes one message by the queue it came from.
func (w *Worker) handle(ctx context.Context, queue string, payload []byte) {
	switch queue {
	case FanoutQueue:
		if err := w.dispatcher.DispatchRaw(ctx, payload); err != nil {
			logger.WorkerLog("poster", "dispatch", err)
		}
	case DeliveryQueue:
		var job DeliveryJob
		if err := json.Unmarshal(payload, &job); err != nil {
			logger.WorkerLog("poster", "decode_delivery", err)
			return
		}
		if err := w.deliverer.Handle(ctx, job); err != nil {
			logger.WorkerLog("poster", "deliver", err, "task_id", job.TaskID, "service", job.Service)
		}
	}
}

func (w *Worker) promoteLoop(ctx context.Context) {
	ticker := time.NewTicker(w.promoteEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := w.queue.PromoteDue(ctx); err != nil {
				logger.WorkerLog("poster", "promote_retries", err)
			} else if n > 0 {
				logger.Debug("Promoted delayed deliveries", "count", n)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
