package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adityadutt29/EmeLoc/pkg/logger"
)

// DefaultTrackingInterval is the period between fires when none is configured.
const DefaultTrackingInterval = 5 * time.Second

// TickFunc is the action a scheduler drives: a location capture on the
// reporting side, or a map-refresh read on the viewing side. Errors are
// reported and the action is retried naturally on the next tick.
type TickFunc func(ctx context.Context, entityID string) error

// ErrSchedulerActive is returned by Start on an already-active scheduler.
var ErrSchedulerActive = errors.New("tracking scheduler already active")

// TrackingScheduler invokes a tracking action on a fixed period, starting
// immediately on activation and continuing until Stop. Fires are serialized:
// a tick whose action is still running is dropped by the ticker rather than
// queued, so at most one action per scheduler is in flight. Overlapping
// writes from independent schedulers remain benign since every capture
// produces its own uniquely-timestamped row.
type TrackingScheduler struct {
	interval  time.Duration
	immediate bool
	logger    logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTrackingScheduler creates an idle scheduler. A non-positive interval
// falls back to DefaultTrackingInterval.
func NewTrackingScheduler(interval time.Duration, immediate bool, logger logger.Logger) *TrackingScheduler {
	if interval <= 0 {
		interval = DefaultTrackingInterval
	}
	return &TrackingScheduler{
		interval:  interval,
		immediate: immediate,
		logger:    logger,
	}
}

// Start activates the scheduler for the given entity. The action fires
// right away when the scheduler was built with immediate, then on every
// interval boundary until Stop.
func (s *TrackingScheduler) Start(entityID string, fn TickFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSchedulerActive
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.run(ctx, entityID, fn, done)
	return nil
}

func (s *TrackingScheduler) run(ctx context.Context, entityID string, fn TickFunc, done chan struct{}) {
	defer close(done)

	if s.immediate {
		s.fire(ctx, entityID, fn)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, entityID, fn)
		}
	}
}

func (s *TrackingScheduler) fire(ctx context.Context, entityID string, fn TickFunc) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(ctx, entityID); err != nil {
		s.logger.Error("Scheduled tracking action failed",
			"entityId", entityID, "error", err)
	}
}

// Stop deactivates the scheduler. It blocks until any in-flight action has
// returned, guaranteeing no fire begins after Stop returns. Stopping an
// idle scheduler is a no-op.
func (s *TrackingScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Active reports whether the scheduler is currently running
func (s *TrackingScheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
