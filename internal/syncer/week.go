package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
	"github.com/omarshaarawi/fantasyfeed/internal/repository/memory"
)

const (
	// MaxWeek is the last scoring period of the season.
	MaxWeek = 18

	metadataTTL = time.Hour
)

var ErrNoLeagueConfigured = errors.New("no league with an id is configured")

type MetadataSource interface {
	GetLeagueMetadata(ctx context.Context, leagueID int64) (*models.LeagueMetadata, error)
}

// WeekResolver returns the configured current week, or when none is set
// asks the first configured league for its current matchup period.
type WeekResolver struct {
	fixed   int
	leagues config.Leagues
	source  MetadataSource
	repo    *memory.Repository
	clock   clockwork.Clock
}

func NewWeekResolver(fixed int, leagues config.Leagues, source MetadataSource, repo *memory.Repository, clock clockwork.Clock) *WeekResolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WeekResolver{
		fixed:   fixed,
		leagues: leagues,
		source:  source,
		repo:    repo,
		clock:   clock,
	}
}

func (r *WeekResolver) CurrentWeek(ctx context.Context) (int, error) {
	if r.fixed > 0 {
		return r.fixed, nil
	}

	metadata, err := r.metadata(ctx)
	if err != nil {
		return 0, err
	}

	week := metadata.CurrentWeek
	if metadata.LastWeek > 0 && week > metadata.LastWeek {
		week = metadata.LastWeek
	}
	return min(max(week, 1), MaxWeek), nil
}

func (r *WeekResolver) metadata(ctx context.Context) (*models.LeagueMetadata, error) {
	league, ok := r.reference()
	if !ok {
		return nil, ErrNoLeagueConfigured
	}

	cached := r.repo.GetMetadata(league.ID)
	if cached != nil && r.clock.Since(cached.LastUpdated) <= metadataTTL {
		return cached, nil
	}

	fresh, err := r.source.GetLeagueMetadata(ctx, league.ID)
	if err != nil {
		if cached != nil {
			slog.Warn("Using stale league metadata", "league", league.Name, "error", err)
			return cached, nil
		}
		return nil, errors.Wrapf(err, "resolving current week from %s", league.Name)
	}

	fresh.LastUpdated = r.clock.Now()
	r.repo.SaveMetadata(league.ID, fresh)
	slog.Info("Current week", "league", league.Name, "week", fresh.CurrentWeek)
	return fresh, nil
}

func (r *WeekResolver) reference() (config.League, bool) {
	for _, league := range r.leagues {
		if league.Configured() {
			return league, true
		}
	}
	return config.League{}, false
}
