package workers

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"lookhub/internal/logger"
)

const DefaultSchedule = "*/10 * * * *"

// Scheduler runs the collector and then the producer on one cron entry, so results of the
// previous pass are applied before looks are selected again.
type Scheduler struct {
	cron      *cron.Cron
	collector *Collector
	producer  *Producer

	// ctx is the context of Start, used by cron-triggered passes
	ctx context.Context
	mu  sync.Mutex
}

func NewScheduler(schedule string, collector *Collector, producer *Producer) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	s := &Scheduler{
		cron:      cron.New(),
		collector: collector,
		producer:  producer,
		ctx:       context.Background(),
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(s.ctx) }); err != nil {
		return nil, err
	}
	return s, nil
}

// RunOnce performs one collect-then-produce pass. Overlapping calls are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.mu.TryLock() {
		logger.Warn("Previous scheduler pass still running, skipping")
		return
	}
	defer s.mu.Unlock()

	if _, err := s.collector.Run(ctx); err != nil {
		logger.WorkerLog("scheduler", "collect", err)
	}
	if _, err := s.producer.Run(ctx); err != nil {
		logger.WorkerLog("scheduler", "produce", err)
	}
}

// Start runs the cron loop until ctx is cancelled and waits for a running pass to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	logger.Info("Scheduler started", "entries", len(s.cron.Entries()))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}
