package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"

	"github.com/omarshaarawi/fantasyfeed/internal/api/espn"
	"github.com/omarshaarawi/fantasyfeed/internal/api/fantasy"
	"github.com/omarshaarawi/fantasyfeed/internal/bot"
	"github.com/omarshaarawi/fantasyfeed/internal/config"
	"github.com/omarshaarawi/fantasyfeed/internal/format"
	"github.com/omarshaarawi/fantasyfeed/internal/health"
	"github.com/omarshaarawi/fantasyfeed/internal/maintenance"
	"github.com/omarshaarawi/fantasyfeed/internal/observability"
	"github.com/omarshaarawi/fantasyfeed/internal/repository/memory"
	"github.com/omarshaarawi/fantasyfeed/internal/store"
	firestorestore "github.com/omarshaarawi/fantasyfeed/internal/store/firestore"
	memstore "github.com/omarshaarawi/fantasyfeed/internal/store/memory"
	"github.com/omarshaarawi/fantasyfeed/internal/store/sqldoc"
	"github.com/omarshaarawi/fantasyfeed/internal/syncer"
	"github.com/omarshaarawi/fantasyfeed/internal/transform"
)

var version = "dev"

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := &cli.App{
		Name:      "fantasyfeed",
		Usage:     "Sync ESPN fantasy matchups into the live dashboard",
		UsageText: "fantasyfeed [clear-chat|clear-matches]",
		Version:   version,
		Action: func(cCtx *cli.Context) error {
			m, err := parseMode(cCtx.Args().First())
			if err != nil {
				return err
			}
			return execute(cCtx.Context, m)
		},
	}
	return app.Run(args)
}

func execute(parent context.Context, m mode) error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if err := cfg.RequireAppID(); err != nil {
		fmt.Fprintln(os.Stderr, placeholderGuidance)
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.InitUptrace(cfg.Uptrace)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("Error flushing traces", "error", err)
		}
	}()

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Error closing store", "error", err)
		}
	}()

	collections := store.NewCollections(cfg.Sync.AppID, cfg.Sync.ChatCollection, cfg.Sync.MatchesCollection)

	switch m {
	case modeClearChat:
		_, err := maintenance.NewPurger(st, collections, cfg.Sync.PurgePageSize).ClearChat(ctx)
		return err
	case modeClearMatches:
		_, err := maintenance.NewPurger(st, collections, cfg.Sync.PurgePageSize).ClearMatches(ctx)
		return err
	default:
		return runSync(ctx, cfg, st, collections)
	}
}

func runSync(ctx context.Context, cfg *config.Config, st store.Store, collections store.Collections) error {
	clock := clockwork.NewRealClock()
	location := cfg.Location()

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI, clock)

	repo := memory.NewRepository()
	transformer := transform.NewTransformer(transform.Options{
		ProjectionFactor: cfg.Sync.ProjectionFactor,
		ProjectBench:     cfg.Sync.ProjectBench,
		Formatter:        format.NewFormatter(location),
		Clock:            clock,
	})
	synchronizer := syncer.NewSynchronizer(fantasyAPI, transformer, collections.Matches)
	weeks := syncer.NewWeekResolver(cfg.Sync.CurrentWeek, cfg.Leagues, fantasyAPI, repo, clock)

	opts := syncer.Options{
		Leagues:         cfg.Leagues,
		Interval:        cfg.Sync.Interval,
		BackfillEnabled: cfg.Sync.BackfillEnabled,
		Location:        location,
		Clock:           clock,
	}

	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, bot.NewHandler(repo, location))
		if err != nil {
			return errors.Wrap(err, "starting telegram bot")
		}
		opts.Notifier = telegramBot

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	if cfg.Health.Addr != "" {
		go func() {
			if err := health.NewServer(repo).ListenAndServe(ctx, cfg.Health.Addr); err != nil {
				slog.Error("Error starting HTTP server", "error", err)
			}
		}()
	}

	slog.Info("Live fantasy sync started",
		"version", version,
		"store", cfg.Store.Driver,
		"collection", collections.Matches,
		"leagues", len(cfg.Leagues),
		"interval", cfg.Sync.Interval,
	)
	slog.Info("Run 'fantasyfeed clear-chat' to wipe the chat history or 'fantasyfeed clear-matches' to wipe all match data")

	orchestrator := syncer.NewOrchestrator(synchronizer, st, weeks, repo, opts)
	if err := orchestrator.Run(ctx); err != nil {
		return err
	}

	slog.Info("Shutting down gracefully...")
	return nil
}

func openStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Driver {
	case "firestore":
		return firestorestore.New(ctx, cfg.ProjectID, cfg.CredentialsFile)
	case sqldoc.DriverPostgres, sqldoc.DriverSQLite:
		return sqldoc.Open(ctx, cfg.Driver, cfg.DSN)
	case "memory":
		slog.Warn("Using in-memory store, documents are not persisted")
		return memstore.NewStore(), nil
	default:
		return nil, errors.Newf("unsupported store driver %q", cfg.Driver)
	}
}
