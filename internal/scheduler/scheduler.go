package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ladenbot/laden/internal/config"
	"github.com/ladenbot/laden/internal/service/lookup"
)

// Scheduler keeps the dataset cache warm so the first lookup after a cold
// start or TTL expiry does not pay the fetch latency.
type Scheduler struct {
	cron   *cron.Cron
	cache  *lookup.Cache
	cfg    config.CacheConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.CacheConfig, cache *lookup.Cache, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the warm job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.WarmSchedule))

	if _, err := s.cron.AddFunc(s.cfg.WarmSchedule, s.warmCache); err != nil {
		s.logger.Error("failed to schedule cache warm", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) warmCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("scheduled cache warm failed", zap.Error(err))
		return
	}
	s.logger.Debug("scheduled cache warm completed")
}
