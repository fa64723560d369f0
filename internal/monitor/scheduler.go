// Package monitor runs the background uptime scheduler and summarizes
// probe history.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourhub/models"
	"tourhub/ports"
)

// Scheduler probes every enabled monitor on its own interval until
// the context is cancelled.
type Scheduler struct {
	repo   ports.MonitorRepository
	prober *Prober
	logger *zap.Logger
	retain int
}

// NewScheduler creates a scheduler.
func NewScheduler(repo ports.MonitorRepository, prober *Prober, logger *zap.Logger, retain int) *Scheduler {
	return &Scheduler{repo: repo, prober: prober, logger: logger, retain: retain}
}

// Run loads the enabled monitors and probes each on its interval.
// It blocks until ctx is cancelled and returns nil on clean shutdown.
// Monitors added after startup are picked up on the next Run.
func (s *Scheduler) Run(ctx context.Context) error {
	monitors, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, m := range monitors {
		monitor := m
		g.Go(func() error {
			s.loop(ctx, monitor)
			return nil
		})
	}

	err = g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Scheduler) loop(ctx context.Context, monitor *models.Monitor) {
	ticker := time.NewTicker(monitor.Interval())
	defer ticker.Stop()

	// First probe fires immediately so fresh monitors report without
	// waiting a full interval.
	s.probeOnce(ctx, monitor)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probeOnce(ctx, monitor)
		}
	}
}

func (s *Scheduler) probeOnce(ctx context.Context, monitor *models.Monitor) {
	check := s.prober.Probe(ctx, monitor)
	if ctx.Err() != nil {
		return
	}
	if err := s.repo.RecordCheck(ctx, check, s.retain); err != nil {
		s.logger.Warn("record monitor check failed",
			zap.String("monitor", monitor.Name),
			zap.Error(err))
		return
	}
	s.logger.Debug("monitor probed",
		zap.String("monitor", monitor.Name),
		zap.Int("status", check.StatusCode),
		zap.Bool("up", check.Up),
		zap.Float64("latency_ms", check.LatencyMS))
}
