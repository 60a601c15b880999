package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
	"github.com/omarshaarawi/fantasyfeed/internal/repository/memory"
	"github.com/omarshaarawi/fantasyfeed/internal/scheduler"
	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

// Notifier receives a message when a pass fails to commit.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Options struct {
	Leagues         config.Leagues
	Interval        time.Duration
	BackfillEnabled bool
	Location        *time.Location
	Clock           clockwork.Clock
	Notifier        Notifier
}

// Orchestrator runs the backfill once, then the live pass on a fixed interval.
// Passes run one at a time and each builds and commits its own batch.
type Orchestrator struct {
	synchronizer *Synchronizer
	store        store.Store
	weeks        *WeekResolver
	repo         *memory.Repository
	opts         Options
}

func NewOrchestrator(synchronizer *Synchronizer, st store.Store, weeks *WeekResolver, repo *memory.Repository, opts Options) *Orchestrator {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Orchestrator{
		synchronizer: synchronizer,
		store:        st,
		weeks:        weeks,
		repo:         repo,
		opts:         opts,
	}
}

// Run blocks until ctx is cancelled and then returns nil.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.opts.BackfillEnabled {
		o.Backfill(ctx)
	} else {
		slog.Info("Backfill disabled")
	}

	if ctx.Err() != nil {
		return nil
	}

	sched, err := scheduler.NewScheduler(o.opts.Interval, o.opts.Location, o.opts.Clock)
	if err != nil {
		return err
	}

	slog.Info("Starting live sync", "interval", o.opts.Interval)
	return sched.Run(ctx, "live-sync", func(ctx context.Context) {
		o.LivePass(ctx)
		if ctx.Err() == nil {
			slog.Info("Waiting for next update", "interval", o.opts.Interval)
		}
	})
}

// Backfill syncs weeks 1 through the current week for every league into
// one batch and commits it once.
func (o *Orchestrator) Backfill(ctx context.Context) models.SyncStatus {
	return o.pass(ctx, models.PhaseBackfill, func(current int) []int {
		weeks := make([]int, 0, current)
		for week := 1; week <= current; week++ {
			weeks = append(weeks, week)
		}
		return weeks
	})
}

// LivePass syncs only the current week for every league.
func (o *Orchestrator) LivePass(ctx context.Context) models.SyncStatus {
	return o.pass(ctx, models.PhaseLive, func(current int) []int {
		return []int{current}
	})
}

func (o *Orchestrator) pass(ctx context.Context, phase models.SyncPhase, weeksFor func(current int) []int) (status models.SyncStatus) {
	status = models.SyncStatus{
		RunID:     uuid.NewString(),
		Phase:     phase,
		StartedAt: o.opts.Clock.Now(),
	}
	log := slog.Default().With("run", status.RunID, "phase", phase)

	ctx, span := tracer.Start(ctx, "syncer."+string(phase), trace.WithAttributes(
		attribute.String("run.id", status.RunID),
	))
	defer span.End()

	defer func() {
		status.FinishedAt = o.opts.Clock.Now()
		o.repo.SaveStatus(status)
	}()

	current, err := o.weeks.CurrentWeek(ctx)
	if err != nil {
		log.Error("Failed to resolve current week", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "current week")
		status.Error = err.Error()
		return status
	}
	status.Weeks = weeksFor(current)
	log.Info("Running sync", "first_week", status.Weeks[0], "last_week", status.Weeks[len(status.Weeks)-1], "leagues", len(o.opts.Leagues))

	batch := o.store.NewBatch()
	failed := make(map[string]bool)
	for _, week := range status.Weeks {
		for _, league := range o.opts.Leagues {
			if ctx.Err() != nil {
				log.Warn("Sync interrupted, batch abandoned", "staged", batch.Len())
				status.Error = ctx.Err().Error()
				return status
			}

			count, err := o.synchronizer.syncLeague(ctx, log, league, week, batch)
			status.Matchups += count
			if err != nil && !errors.Is(err, ErrLeagueNotConfigured) && !failed[league.Name] {
				failed[league.Name] = true
				status.FailedLeagues = append(status.FailedLeagues, league.Name)
			}
		}
	}
	span.SetAttributes(attribute.Int("matchups", status.Matchups))

	if ctx.Err() != nil {
		log.Warn("Sync interrupted, batch abandoned", "staged", batch.Len())
		status.Error = ctx.Err().Error()
		return status
	}

	if batch.Len() == 0 {
		log.Info("Nothing to commit")
		return status
	}

	if err := batch.Commit(ctx); err != nil {
		log.Error("Failed to commit sync", "writes", batch.Len(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		status.CommitError = err.Error()
		o.alert(ctx, fmt.Sprintf("⚠️ %s sync failed to commit %d matchups for week %d: %v",
			phase, status.Matchups, current, err))
		return status
	}

	log.Info("Sync complete", "matchups", status.Matchups, "week", current)
	return status
}

func (o *Orchestrator) alert(ctx context.Context, text string) {
	if o.opts.Notifier == nil {
		return
	}
	if err := o.opts.Notifier.Notify(ctx, text); err != nil {
		slog.Error("Failed to send alert", "error", err)
	}
}
