package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const probeTimeout = 30 * time.Second

// Prober checks that an upstream is reachable.
type Prober interface {
	Probe(ctx context.Context, coord weather.Coordinate) error
	ProviderName() string
}

// Scheduler periodically probes the upstream provider and records the outcome
// in the health store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	health    *store.HealthStore
	coord     weather.Coordinate
	interval  time.Duration
	logger    *zap.SugaredLogger
}

// New creates a new Scheduler. An interval <= 0 leaves probing disabled.
func New(prober Prober, health *store.HealthStore, coord weather.Coordinate, interval time.Duration, logger *zap.SugaredLogger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		prober:    prober,
		health:    health,
		coord:     coord,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Infow("scheduler: health probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Infow("scheduler: health probe started", "interval", s.interval.String())
	return nil
}

// RunOnce probes the upstream and records the result.
func (s *Scheduler) RunOnce(ctx context.Context) store.ProbeResult {
	start := time.Now()
	err := s.prober.Probe(ctx, s.coord)

	result := store.ProbeResult{
		Provider: s.prober.ProviderName(),
		OK:       err == nil,
		Latency:  time.Since(start),
	}
	if err != nil {
		result.Error = err.Error()
		s.logger.Warnw("scheduler: health probe failed", "provider", result.Provider, "error", err)
	}
	s.health.Record(result)
	return result
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
