package poster

import (
	"context"
	"fmt"
	"time"

	"lookhub/internal/logger"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Second
)

// RetryScheduler re-enqueues a delivery job after delay.
type RetryScheduler interface {
	ScheduleRetry(ctx context.Context, job DeliveryJob, delay time.Duration) error
}

// ResultSink receives the outcome of every finished delivery.
type ResultSink interface {
	PublishResult(ctx context.Context, r Result) error
}

// FailureNotifier is told about terminal failures, e.g. to email an operator.
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, r Result)
}

// Deliverer runs one delivery attempt and decides between success, retry and terminal failure.
type Deliverer struct {
	registry    Registry
	retries     RetryScheduler
	results     ResultSink
	notifier    FailureNotifier
	maxAttempts int
	retryDelay  time.Duration
}

type DelivererOption func(*Deliverer)

func WithMaxAttempts(n int) DelivererOption {
	return func(d *Deliverer) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

func WithRetryDelay(delay time.Duration) DelivererOption {
	return func(d *Deliverer) {
		if delay >= 0 {
			d.retryDelay = delay
		}
	}
}

func WithFailureNotifier(n FailureNotifier) DelivererOption {
	return func(d *Deliverer) { d.notifier = n }
}

func NewDeliverer(registry Registry, retries RetryScheduler, results ResultSink, opts ...DelivererOption) *Deliverer {
	d := &Deliverer{
		registry:    registry,
		retries:     retries,
		results:     results,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one attempt of job. The returned error is only about the queue itself:
// platform failures end up as results or retries.
func (d *Deliverer) Handle(ctx context.Context, job DeliveryJob) error {
	if job.Attempt < 1 {
		job.Attempt = 1
	}
	ctx = logger.WithTask(ctx, job.TaskID, job.Service.String())

	look, err := DecodeSnapshot(job.Look)
	if err != nil {
		logger.CtxError(ctx, "Validation error in look snapshot", "error", err)
		return d.fail(ctx, job, job.lookID(), err)
	}
	lookID := look.ID

	publisher, err := d.registry.Lookup(job.Service)
	if err != nil {
		return d.fail(ctx, job, &lookID, err)
	}

	err = publisher.Publish(ctx, look)
	if err == nil {
		logger.CtxInfo(ctx, "Posted look", "look_id", lookID, "attempt", job.Attempt)
		return d.results.PublishResult(ctx, Result{
			Status:  StatusSuccess,
			TaskID:  job.TaskID,
			LookID:  &lookID,
			Service: job.Service,
		})
	}

	if isTerminal(err) {
		logger.CtxError(ctx, "Look cannot be posted", "look_id", lookID, "error", err)
		return d.fail(ctx, job, &lookID, err)
	}

	if job.Attempt < d.maxAttempts {
		logger.CtxWarn(ctx, fmt.Sprintf("Retry %d/%d", job.Attempt, d.maxAttempts-1),
			"look_id", lookID, "error", err)
		next := job
		next.Attempt = job.Attempt + 1
		if serr := d.retries.ScheduleRetry(ctx, next, d.retryDelay); serr != nil {
			logger.CtxError(ctx, "Failed to schedule retry", "look_id", lookID, "error", serr)
			return d.fail(ctx, job, &lookID, fmt.Errorf("%v (retry not scheduled: %v)", err, serr))
		}
		return nil
	}

	logger.CtxError(ctx, "Failed to post look, retries exhausted",
		"look_id", lookID, "attempts", job.Attempt, "error", err)
	return d.fail(ctx, job, &lookID, err)
}

func (d *Deliverer) fail(ctx context.Context, job DeliveryJob, lookID *int, cause error) error {
	r := Result{
		Status:  StatusError,
		TaskID:  job.TaskID,
		LookID:  lookID,
		Service: job.Service,
		Error:   cause.Error(),
	}
	if d.notifier != nil {
		d.notifier.NotifyFailure(ctx, r)
	}
	return d.results.PublishResult(ctx, r)
}
