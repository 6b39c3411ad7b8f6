package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cargo-portal/config"
	"cargo-portal/internal/backend"
	"cargo-portal/internal/model"
	"cargo-portal/internal/notification"
	"cargo-portal/internal/store"
)

// maxConcurrentLookups caps the parallel tracking requests per cycle.
const maxConcurrentLookups = 4

// Backend is the part of the backend client the tracker needs.
type Backend interface {
	TrackShipment(ctx context.Context, trackingNumber string) (*model.Shipment, error)
}

// Service polls the backend for every tracking number somebody subscribed
// to and hands status changes to the notification worker pool.
type Service struct {
	cfg        *config.Config
	store      store.Store
	backend    Backend
	workerPool *notification.WorkerPool
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates and initializes a new tracker service.
func NewService(cfg *config.Config, s store.Store, b Backend, workerPool *notification.WorkerPool, logger *zap.Logger) *Service {
	return &Service{
		cfg:        cfg,
		store:      s,
		backend:    b,
		workerPool: workerPool,
		logger:     logger.Named("tracker"),
		now:        time.Now,
	}
}

// Run starts the polling loop and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Tracker.Enabled {
		s.logger.Info("tracker is disabled, not starting")
		return
	}
	s.logger.Info("starting tracker service", zap.Duration("interval", s.cfg.Tracker.Interval))

	// Start the worker pool
	s.workerPool.Start(ctx)

	s.PollOnce(ctx)

	timer := time.NewTimer(s.cfg.Tracker.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("tracker service shutting down")
			return
		case <-timer.C:
			s.PollOnce(ctx)
			timer.Reset(s.cfg.Tracker.Interval)
		}
	}
}

// PollOnce performs a single tracking round and returns the number of
// notification jobs dispatched.
func (s *Service) PollOnce(ctx context.Context) int {
	if n, err := s.store.PruneUnwatched(ctx); err != nil {
		s.logger.Warn("failed to prune unwatched shipments", zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("pruned unwatched shipments", zap.Int64("count", n))
	}

	numbers, err := s.store.WatchedTrackingNumbers(ctx)
	if err != nil {
		s.logger.Error("failed to list watched tracking numbers", zap.Error(err))
		return 0
	}
	if len(numbers) == 0 {
		s.logger.Debug("tracking cycle finished: nothing watched")
		return 0
	}

	// Step 1: Look up the current status of every watched shipment
	observations := s.observe(ctx, numbers)

	// If every lookup failed, keep the stored statuses as they are.
	if len(observations) == 0 {
		s.logger.Warn("tracking cycle aborted: no shipment could be fetched", zap.Int("watched", len(numbers)))
		return 0
	}

	// Step 2: Delegate the diff to the store layer
	changes, err := s.store.UpdateTracking(ctx, observations)
	if err != nil {
		s.logger.Error("failed to record tracking observations", zap.Error(err))
		return 0
	}

	// Dispatch notification jobs to the worker pool
	dispatched := 0
	for _, ch := range changes {
		s.logger.Info("shipment status changed",
			zap.String("tracking_number", ch.TrackingNumber),
			zap.String("from", ch.From),
			zap.String("to", ch.To),
		)
		if !s.workerPool.Dispatch(ctx, notification.Job{TrackingNumber: ch.TrackingNumber, Status: ch.To}) {
			break
		}
		dispatched++
	}

	s.logger.Debug("tracking cycle finished", zap.Int("watched", len(numbers)), zap.Int("changed", len(changes)))
	return dispatched
}

func (s *Service) observe(ctx context.Context, numbers []string) []store.Observation {
	var (
		mu           sync.Mutex
		observations = make([]store.Observation, 0, len(numbers))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for _, tn := range numbers {
		g.Go(func() error {
			shipment, err := s.backend.TrackShipment(gctx, tn)
			if err != nil {
				if errors.Is(err, backend.ErrNotFound) {
					s.logger.Debug("watched shipment not found", zap.String("tracking_number", tn))
				} else {
					s.logger.Warn("failed to track shipment", zap.String("tracking_number", tn), zap.Error(err))
				}
				return nil
			}
			if shipment.Status == "" {
				return nil
			}

			mu.Lock()
			observations = append(observations, store.Observation{
				TrackingNumber: tn,
				Status:         shipment.Status,
				ObservedAt:     s.now().UTC(),
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return observations
}
