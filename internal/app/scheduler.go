package app

import (
	"context"
	"fmt"

	"lookhub/internal/broker"
	"lookhub/internal/config"
	"lookhub/internal/poster"
	"lookhub/internal/repositories"
	"lookhub/internal/workers"

	"gorm.io/gorm"
)

// NewScheduler wires the collector and producer onto one cron entry.
func NewScheduler(cfg *config.Config, db *gorm.DB, b *broker.Broker) (*workers.Scheduler, error) {
	queue := poster.NewQueue(b)
	lookRepo := repositories.NewLookRepository()

	collector := workers.NewCollector(db, lookRepo, queue, cfg.Scheduler.CollectorBatch)
	producer := workers.NewProducer(db, lookRepo, queue, cfg.Server.APIHost, cfg.Scheduler.ProducerBatch)

	scheduler, err := workers.NewScheduler(cfg.Scheduler.Schedule, collector, producer)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Scheduler.Schedule, err)
	}
	return scheduler, nil
}

// RunScheduler runs the producer/collector schedule until ctx is cancelled.
func RunScheduler(ctx context.Context, cfg *config.Config, runNow bool) error {
	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	b := newBroker(cfg)
	defer b.Close()
	if err := b.Ping(ctx); err != nil {
		return fmt.Errorf("broker unavailable: %w", err)
	}

	scheduler, err := NewScheduler(cfg, db, b)
	if err != nil {
		return err
	}
	if runNow {
		scheduler.RunOnce(ctx)
	}
	scheduler.Start(ctx)
	return nil
}
