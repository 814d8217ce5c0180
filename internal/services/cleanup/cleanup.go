// Package cleanup periodically drops per-user workspaces that have gone
// unused, so the in-memory state does not grow with every user ever seen.
package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/rs/zerolog"
)

// Sweeper drops entries idle for longer than maxIdle
type Sweeper interface {
	Sweep(now time.Time, maxIdle time.Duration) int
}

// Service runs a Sweeper on a fixed interval
type Service struct {
	sweeper         Sweeper
	maxIdle         time.Duration
	cleanupInterval time.Duration
	logger          zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewService creates a new cleanup service
func NewService(sweeper Sweeper, maxIdle, cleanupInterval time.Duration) *Service {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	return &Service{
		sweeper:         sweeper,
		maxIdle:         maxIdle,
		cleanupInterval: cleanupInterval,
		logger:          logging.Component("cleanup"),
		done:            make(chan struct{}),
	}
}

// Start begins sweeping in the background until ctx is done or Stop is called
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				s.RunOnce(now)
			case <-ctx.Done():
				s.logger.Info().Msg("Cleanup service stopped")
				return
			}
		}
	}()

	s.logger.Info().
		Dur("interval", s.cleanupInterval).
		Dur("max_idle", s.maxIdle).
		Msg("Cleanup service started")
}

// RunOnce performs a single sweep
func (s *Service) RunOnce(now time.Time) int {
	removed := s.sweeper.Sweep(now, s.maxIdle)
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("Swept idle workspaces")
	}
	return removed
}

// Stop stops the cleanup service and waits for the sweep loop to exit
func (s *Service) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			close(s.done)
			return
		}
		s.cancel()
	})
	<-s.done
}
