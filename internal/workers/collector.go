package workers

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"lookhub/internal/logger"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
)

const DefaultCollectorBatch = 100

// ResultStore is the poster result set.
type ResultStore interface {
	PopResults(ctx context.Context, count int64) ([][]byte, error)
	PublishResult(ctx context.Context, r poster.Result) error
}

// CollectStats summarises one collector pass.
type CollectStats struct {
	Popped    int
	Marked    int
	Duplicate int
	Failed    int
	Malformed int
	Requeued  int
}

// Collector drains delivery results and marks successfully posted looks as pushed.
type Collector struct {
	db      *gorm.DB
	looks   repositories.LookRepository
	results ResultStore
	batch   int
}

func NewCollector(db *gorm.DB, looks repositories.LookRepository, results ResultStore, batch int) *Collector {
	if batch <= 0 {
		batch = DefaultCollectorBatch
	}
	return &Collector{db: db, looks: looks, results: results, batch: batch}
}

func (c *Collector) Run(ctx context.Context) (CollectStats, error) {
	var stats CollectStats

	entries, err := c.results.PopResults(ctx, int64(c.batch))
	if err != nil {
		logger.WorkerLog("collector", "pop_results", err)
		return stats, err
	}
	stats.Popped = len(entries)

	for _, raw := range entries {
		result, err := parseResult(raw)
		if err != nil {
			stats.Malformed++
			logger.Warn("Dropping malformed result", "error", err, "entry", string(raw))
			continue
		}

		if result.Status == poster.StatusError {
			stats.Failed++
			logger.Warn("Delivery failed",
				"task_id", result.TaskID,
				"service", result.Service,
				"look_id", result.LookID,
				"error", result.Error,
			)
			continue
		}
		if result.LookID == nil {
			stats.Malformed++
			logger.Warn("Success result without look_id", "task_id", result.TaskID)
			continue
		}

		changed, err := c.looks.MarkPushed(c.db.WithContext(ctx), *result.LookID)
		if err != nil {
			logger.WorkerLog("collector", "mark_pushed", err, "look_id", *result.LookID)
			// keep the success for the next pass
			if err := c.results.PublishResult(ctx, *result); err != nil {
				logger.WorkerLog("collector", "requeue_result", err, "look_id", *result.LookID)
			} else {
				stats.Requeued++
			}
			continue
		}
		if changed {
			stats.Marked++
			logger.Info("Look marked as pushed", "look_id", *result.LookID, "service", result.Service, "task_id", result.TaskID)
		} else {
			stats.Duplicate++
		}
	}

	logger.WorkerLog("collector", "run", nil,
		"popped", stats.Popped,
		"marked", stats.Marked,
		"duplicate", stats.Duplicate,
		"failed", stats.Failed,
		"malformed", stats.Malformed,
	)
	return stats, nil
}

var errUnknownStatus = errors.New("unknown result status")

func parseResult(raw []byte) (*poster.Result, error) {
	var r poster.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	switch r.Status {
	case poster.StatusSuccess, poster.StatusError:
	default:
		return nil, errUnknownStatus
	}
	if r.TaskID == "" {
		return nil, errors.New("result without task_id")
	}
	return &r, nil
}
