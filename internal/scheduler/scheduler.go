package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// Scheduler runs one task at a fixed interval. A run that is still going
// when the next is due delays it rather than overlapping.
type Scheduler struct {
	s        gocron.Scheduler
	interval time.Duration
}

func NewScheduler(interval time.Duration, location *time.Location, clock clockwork.Clock) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %s", interval)
	}
	if location == nil {
		location = time.UTC
	}

	opts := []gocron.SchedulerOption{gocron.WithLocation(location)}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		interval: interval,
	}, nil
}

// Run starts task immediately, repeats it every interval and blocks until
// ctx is cancelled. It waits for a running task to return before returning.
func (s *Scheduler) Run(ctx context.Context, name string, task func(context.Context)) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { task(ctx) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", name, err)
	}

	s.s.Start()
	<-ctx.Done()

	if err := s.s.Shutdown(); err != nil {
		slog.Error("Error stopping scheduler", "error", err)
	}
	slog.Info("Scheduler stopped", "job", name)
	return nil
}
