package observability

import (
	"github.com/riskibarqy/bowling-league/internal/config"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// startTracing installs the global tracer provider used by the HTTP layer and
// the decoration pipeline. A nil stop means tracing stays a no-op.
func startTracing(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Info("tracing disabled", "uptrace_enabled", cfg.UptraceEnabled, "dsn_configured", cfg.UptraceDSN != "")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(leagueResourceAttributes(cfg)...),
		uptrace.WithMetricsEnabled(false),
		uptrace.WithLoggingEnabled(false),
	)
	logger.Info("tracing enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)

	return uptrace.Shutdown, nil
}

func leagueResourceAttributes(cfg config.Config) []attribute.KeyValue {
	source := "embedded"
	switch {
	case cfg.LeagueDataBaseURL != "":
		source = "remote"
	case cfg.LeagueDataDir != "":
		source = "directory"
	}
	return []attribute.KeyValue{
		attribute.String("league.data_source", source),
		attribute.Bool("league.cache_enabled", cfg.CacheEnabled),
		attribute.Int("league.decorate_workers", cfg.DecorateWorkers),
		attribute.Int("league.default_games_per_series", cfg.DefaultGamesPerSeries),
	}
}
