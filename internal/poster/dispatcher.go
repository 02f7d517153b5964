package poster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lookhub/internal/logger"
)

// DeliverySubmitter enqueues delivery jobs.
type DeliverySubmitter interface {
	SubmitDelivery(ctx context.Context, job DeliveryJob, delay time.Duration) error
}

// Dispatcher fans one look out into one delivery job per platform.
type Dispatcher struct {
	queue     DeliverySubmitter
	platforms []Platform
}

func NewDispatcher(queue DeliverySubmitter, platforms []Platform) *Dispatcher {
	return &Dispatcher{queue: queue, platforms: platforms}
}

// Dispatch submits the deliveries. A failed submit for one platform does not stop the others.
func (d *Dispatcher) Dispatch(ctx context.Context, job FanoutJob) error {
	if job.Look == nil {
		return fmt.Errorf("%w: fan-out job %s has no look", ErrValidation, job.TaskID)
	}
	taskID := job.TaskID
	if taskID == "" {
		taskID = job.Look.TaskID
	}
	job.Look.TaskID = taskID

	look, err := json.Marshal(job.Look)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range d.platforms {
		delivery := DeliveryJob{TaskID: taskID, Service: p, Attempt: 1, Look: look}
		if err := d.queue.SubmitDelivery(ctx, delivery, 0); err != nil {
			logger.WorkerLog("dispatcher", "submit_delivery", err, "task_id", taskID, "service", p)
			errs = append(errs, err)
		}
	}

	logger.CtxInfo(logger.WithTask(ctx, taskID, ""), "Dispatched look to all services",
		"look_id", job.Look.ID, "services", len(d.platforms))
	return errors.Join(errs...)
}

// DispatchRaw decodes a fan-out payload and dispatches it.
func (d *Dispatcher) DispatchRaw(ctx context.Context, payload []byte) error {
	var job FanoutJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return d.Dispatch(ctx, job)
}
