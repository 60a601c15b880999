package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// PlaceholderAppID is the app id shipped in samples. Nothing may be written
// while it is still configured.
const PlaceholderAppID = "default-app-id"

var ErrPlaceholderAppID = errors.New("APP_ID is still set to the placeholder value")

type Config struct {
	ESPNAPI     ESPNAPI
	Store       Store
	Sync        Sync
	TelegramBot TelegramBot
	Health      Health
	Uptrace     Uptrace
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Leagues     Leagues `envconfig:"LEAGUES" validate:"dive"`
	LeaguesFile string  `envconfig:"LEAGUES_FILE"`
}

type ESPNAPI struct {
	Year     int    `envconfig:"YEAR" required:"true" validate:"min=2018"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
	Timezone string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

type Store struct {
	Driver          string `envconfig:"STORE_DRIVER" default:"firestore" validate:"oneof=firestore postgres sqlite memory"`
	ProjectID       string `envconfig:"FIRESTORE_PROJECT_ID"`
	CredentialsFile string `envconfig:"FIREBASE_KEY_PATH" default:"serviceAccountKey.json"`
	DSN             string `envconfig:"DATABASE_URL" validate:"required_if=Driver postgres"`
}

type Sync struct {
	AppID             string        `envconfig:"APP_ID" default:"default-app-id" validate:"required"`
	CurrentWeek       int           `envconfig:"CURRENT_WEEK" validate:"min=0,max=18"`
	Interval          time.Duration `envconfig:"SYNC_INTERVAL" default:"30s" validate:"gt=0"`
	BackfillEnabled   bool          `envconfig:"BACKFILL_ENABLED" default:"true"`
	ProjectionFactor  float64       `envconfig:"PROJECTION_FACTOR" default:"0.60" validate:"gte=0,lte=1"`
	ProjectBench      bool          `envconfig:"PROJECT_BENCH" default:"true"`
	ChatCollection    string        `envconfig:"CHAT_COLLECTION" default:"leagueChat" validate:"required"`
	MatchesCollection string        `envconfig:"MATCHES_COLLECTION"`
	PurgePageSize     int           `envconfig:"PURGE_PAGE_SIZE" default:"500" validate:"min=1,max=500"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID" validate:"required_with=Token"`
}

type Health struct {
	Addr string `envconfig:"HEALTH_ADDR" default:":8080"`
}

type Uptrace struct {
	DSN            string `envconfig:"UPTRACE_DSN"`
	ServiceName    string `envconfig:"SERVICE_NAME" default:"fantasyfeed"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"dev"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}

	if c.LeaguesFile != "" {
		leagues, err := LoadLeaguesFile(c.LeaguesFile)
		if err != nil {
			return nil, err
		}
		c.Leagues = leagues
	}

	if c.Sync.MatchesCollection == "" {
		c.Sync.MatchesCollection = fmt.Sprintf("fantasyMatches%d", c.ESPNAPI.Year)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if len(c.Leagues) == 0 {
		return errors.New("invalid configuration: no leagues configured (set LEAGUES or LEAGUES_FILE)")
	}
	if _, err := time.LoadLocation(c.ESPNAPI.Timezone); err != nil {
		return errors.Wrapf(err, "invalid configuration: TIMEZONE %q", c.ESPNAPI.Timezone)
	}
	return nil
}

// RequireAppID rejects the placeholder app id.
func (c *Config) RequireAppID() error {
	if strings.TrimSpace(c.Sync.AppID) == "" || c.Sync.AppID == PlaceholderAppID {
		return ErrPlaceholderAppID
	}
	return nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ESPNAPI.Timezone)
	if err != nil {
		slog.Error("Failed to load location", "timezone", c.ESPNAPI.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
