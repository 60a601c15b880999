package observability

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
)

// InitUptrace exports spans to Uptrace when a DSN is configured. Without one
// the global no-op tracer provider stays in place.
func InitUptrace(cfg config.Uptrace) func(context.Context) error {
	if strings.TrimSpace(cfg.DSN) == "" {
		slog.Info("Uptrace disabled", "reason", "UPTRACE_DSN empty")
		return func(context.Context) error { return nil }
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.DSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
	)
	slog.Info("Uptrace enabled", "service_name", cfg.ServiceName, "service_version", cfg.ServiceVersion)

	return uptrace.Shutdown
}
