package poster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	FanoutQueue   = "lookhub:send_looks"
	DeliveryQueue = "lookhub:socialmediaposter"
	DelayedQueue  = DeliveryQueue + ":delayed"
	ResultsSet    = "social_media_results_set"
)

// Broker is the subset of the Redis broker the poster needs.
type Broker interface {
	Push(ctx context.Context, queue string, payload []byte) error
	Pop(ctx context.Context, timeout time.Duration, queues ...string) (string, []byte, error)
	PushDelayed(ctx context.Context, key string, payload []byte, due time.Time) error
	PromoteDue(ctx context.Context, delayedKey, queue string, now time.Time, limit int64) (int, error)
	AddToSet(ctx context.Context, key string, payload []byte) error
	PopFromSet(ctx context.Context, key string, count int64) ([][]byte, error)
}

// Queue is the typed view of the poster's Redis keys.
type Queue struct {
	broker Broker
	now    func() time.Time
}

func NewQueue(b Broker) *Queue {
	return &Queue{broker: b, now: time.Now}
}

// SubmitLook enqueues a fan-out job for look.
func (q *Queue) SubmitLook(ctx context.Context, look *LookSnapshot) error {
	payload, err := json.Marshal(FanoutJob{TaskID: look.TaskID, Look: look})
	if err != nil {
		return err
	}
	return q.broker.Push(ctx, FanoutQueue, payload)
}

// SubmitDelivery enqueues job now, or into the delayed set when delay > 0.
func (q *Queue) SubmitDelivery(ctx context.Context, job DeliveryJob, delay time.Duration) error {
	if job.Attempt < 1 {
		job.Attempt = 1
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if delay <= 0 {
		return q.broker.Push(ctx, DeliveryQueue, payload)
	}
	return q.broker.PushDelayed(ctx, DelayedQueue, payload, q.now().Add(delay))
}

// ScheduleRetry implements RetryScheduler.
func (q *Queue) ScheduleRetry(ctx context.Context, job DeliveryJob, delay time.Duration) error {
	return q.SubmitDelivery(ctx, job, delay)
}

// PublishResult implements ResultSink.
func (q *Queue) PublishResult(ctx context.Context, r Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return q.broker.AddToSet(ctx, ResultsSet, payload)
}

// PopResults drains up to count raw result entries.
func (q *Queue) PopResults(ctx context.Context, count int64) ([][]byte, error) {
	return q.broker.PopFromSet(ctx, ResultsSet, count)
}

// PromoteDue moves due retries back to the delivery queue.
func (q *Queue) PromoteDue(ctx context.Context) (int, error) {
	return q.broker.PromoteDue(ctx, DelayedQueue, DeliveryQueue, q.now(), 100)
}

// Next waits up to timeout for a fan-out or delivery message.
func (q *Queue) Next(ctx context.Context, timeout time.Duration) (string, []byte, error) {
	queue, payload, err := q.broker.Pop(ctx, timeout, FanoutQueue, DeliveryQueue)
	if err != nil {
		return "", nil, err
	}
	if queue != FanoutQueue && queue != DeliveryQueue {
		return "", nil, fmt.Errorf("message from unexpected queue %s", queue)
	}
	return queue, payload, nil
}
