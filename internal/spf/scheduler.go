package spf

import (
	"context"
	"time"

	"github.com/smallbiznis/mazout/internal/observability/metrics"
	"go.uber.org/zap"
)

const syncLockKey = "mazout:spf:sync"

// Scheduler triggers one sync run per interval. When a Locker is
// configured only one replica runs; the others count a skipped run.
type Scheduler struct {
	log     *zap.Logger
	service *Service
	locker  *Locker
	cfg     Config
}

func NewScheduler(log *zap.Logger, service *Service, locker *Locker, cfg Config) *Scheduler {
	return &Scheduler{
		log:     log.Named("spf.scheduler"),
		service: service,
		locker:  locker,
		cfg:     cfg,
	}
}

// RunOnce runs a single guarded sync.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if s.locker == nil {
		return s.service.Sync(ctx)
	}

	token, ok, err := s.locker.TryLock(ctx, syncLockKey, s.cfg.RunInterval)
	if err != nil {
		s.log.Warn("sync lock acquisition failed", zap.Error(err))
		return err
	}
	if !ok {
		metrics.Fuel().IncSyncRun(metrics.SyncResultSkipped)
		s.log.Info("sync already running elsewhere, skipping")
		return nil
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), syncLockKey, token); err != nil {
			s.log.Warn("sync lock release failed", zap.Error(err))
		}
	}()

	return s.service.Sync(ctx)
}

// RunForever loops until the context is cancelled, syncing once
// immediately and then once per interval.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("tariff sync run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
