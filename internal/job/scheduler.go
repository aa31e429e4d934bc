// Package job runs housekeeping tasks that sit outside the request path.
package job

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// SessionRetention is how long expired or revoked sessions are kept before
// the cleanup job deletes them.
const SessionRetention = 7 * 24 * time.Hour

type Scheduler struct {
	s   gocron.Scheduler
	log *zap.Logger
}

func NewScheduler(loc *time.Location, log *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{s: s, log: log.With(zap.String("component", "scheduler"))}, nil
}

// AddSessionCleanup registers CleanSessions to run every interval. A
// non-positive interval disables the job.
func (s *Scheduler) AddSessionCleanup(interval time.Duration, sessions repository.SessionRepository, clock domain.Clock) error {
	if interval <= 0 {
		s.log.Info("Session cleanup disabled")
		return nil
	}

	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_, _ = CleanSessions(ctx, sessions, clock(), s.log)
		}),
		gocron.WithName("session-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register session cleanup: %w", err)
	}

	s.log.Info("Session cleanup scheduled", zap.Duration("interval", interval))
	return nil
}

func (s *Scheduler) Start() {
	s.s.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.s.Shutdown()
}

// CleanSessions deletes sessions that expired or were revoked more than
// SessionRetention before now.
func CleanSessions(ctx context.Context, sessions repository.SessionRepository, now time.Time, log *zap.Logger) (int64, error) {
	removed, err := sessions.CleanExpiredSessions(ctx, now.Add(-SessionRetention))
	if err != nil {
		log.Error("Session cleanup failed", zap.Error(err))
		return 0, err
	}

	log.Info("Session cleanup finished", zap.Int64("removed", removed))
	return removed, nil
}
