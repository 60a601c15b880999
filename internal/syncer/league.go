// Package syncer stages dashboard documents for every configured league and
// commits them to the document store.
package syncer

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
	"github.com/omarshaarawi/fantasyfeed/internal/models"
	"github.com/omarshaarawi/fantasyfeed/internal/store"
	"github.com/omarshaarawi/fantasyfeed/internal/transform"
)

var tracer = otel.Tracer("github.com/omarshaarawi/fantasyfeed/internal/syncer")

var ErrLeagueNotConfigured = errors.New("league id not configured")

// Source is the fantasy data source. Connect must succeed before BoxScores
// is called for a league.
type Source interface {
	Connect(ctx context.Context, leagueID int64) error
	BoxScores(ctx context.Context, leagueID int64, week int) ([]models.BoxScore, error)
}

type Synchronizer struct {
	source      Source
	transformer *transform.Transformer
	collection  string
}

// NewSynchronizer stages documents into collection, a full collection path.
func NewSynchronizer(source Source, transformer *transform.Transformer, collection string) *Synchronizer {
	return &Synchronizer{
		source:      source,
		transformer: transformer,
		collection:  collection,
	}
}

// SyncLeague stages one upsert per matchup of the league's week and returns
// how many were staged. Failures are logged and count as zero.
func (s *Synchronizer) SyncLeague(ctx context.Context, league config.League, week int, batch store.Batch) int {
	count, _ := s.syncLeague(ctx, slog.Default(), league, week, batch)
	return count
}

func (s *Synchronizer) syncLeague(ctx context.Context, log *slog.Logger, league config.League, week int, batch store.Batch) (int, error) {
	log = log.With("league", league.Name, "league_id", league.ID, "week", week)

	if !league.Configured() {
		log.Warn("Skipping league, id not set")
		return 0, ErrLeagueNotConfigured
	}

	ctx, span := tracer.Start(ctx, "syncer.league", trace.WithAttributes(
		attribute.String("league.name", league.Name),
		attribute.Int64("league.id", league.ID),
		attribute.Int("week", week),
	))
	defer span.End()

	log.Info("Connecting to league")
	if err := s.source.Connect(ctx, league.ID); err != nil {
		log.Error("Failed to connect to league", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "connect")
		return 0, errors.Wrapf(err, "connecting to %s", league.Name)
	}

	boxScores, err := s.source.BoxScores(ctx, league.ID, week)
	if err != nil {
		log.Error("Failed to fetch box scores", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "box scores")
		return 0, errors.Wrapf(err, "fetching %s week %d", league.Name, week)
	}

	count := 0
	for _, box := range boxScores {
		doc, ok := s.transformer.Transform(box, league.Name, week)
		if !ok {
			continue
		}
		batch.Set(s.collection, doc.ID, doc)
		count++
	}

	span.SetAttributes(attribute.Int("matchups", count))
	log.Info("Synced matchups", "matchups", count)
	return count, nil
}
