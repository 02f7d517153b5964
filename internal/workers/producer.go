package workers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lookhub/internal/logger"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
)

const DefaultProducerBatch = 50

// LookSubmitter puts a fan-out job on the poster queue.
type LookSubmitter interface {
	SubmitLook(ctx context.Context, look *poster.LookSnapshot) error
}

// Producer enqueues every checked, not yet pushed look. It never modifies looks:
// pushed is set only by the Collector once a platform reports success.
type Producer struct {
	db      *gorm.DB
	looks   repositories.LookRepository
	queue   LookSubmitter
	apiHost string
	batch   int
	newID   func() string
}

func NewProducer(db *gorm.DB, looks repositories.LookRepository, queue LookSubmitter, apiHost string, batch int) *Producer {
	if batch <= 0 {
		batch = DefaultProducerBatch
	}
	return &Producer{
		db:      db,
		looks:   looks,
		queue:   queue,
		apiHost: apiHost,
		batch:   batch,
		newID:   uuid.NewString,
	}
}

// Run submits one batch and returns how many looks were queued.
func (p *Producer) Run(ctx context.Context) (int, error) {
	looks, err := p.looks.FindPublishable(p.db.WithContext(ctx), p.batch)
	if err != nil {
		logger.WorkerLog("producer", "find_publishable", err)
		return 0, err
	}

	submitted := 0
	for i := range looks {
		look := &looks[i]
		taskID := p.newID()
		if err := p.queue.SubmitLook(ctx, poster.NewLookSnapshot(look, p.apiHost, taskID)); err != nil {
			logger.WorkerLog("producer", "submit", err, "look_id", look.ID, "task_id", taskID)
			continue
		}
		submitted++
	}

	logger.WorkerLog("producer", "run", nil, "found", len(looks), "submitted", submitted)
	return submitted, nil
}
