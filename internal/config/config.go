package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	LogLevel                   logging.Level
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	LeagueDataDir              string
	LeagueDataBaseURL          string
	LeagueDataTimeout          time.Duration
	LeagueDataMaxRetries       int
	LeagueDataRetryBackoff     time.Duration
	LeagueDataFetchConcurrency int
	LeagueDataCircuit          resilience.CircuitBreakerConfig
	DecorateWorkers            int
	DefaultGamesPerSeries      int
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProd
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "bowling-league-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: getEnvAsCSV("CORS_ALLOWED_ORIGINS", "*"),
		LeagueDataDir:      strings.TrimSpace(getEnv("LEAGUE_DATA_DIR", "")),
		LeagueDataBaseURL:  strings.TrimRight(strings.TrimSpace(getEnv("LEAGUE_DATA_BASE_URL", "")), "/"),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeAuthToken: strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
	}
	if cfg.LogLevel, err = logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", !cfg.IsProduction()); err != nil {
		return Config{}, err
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 60*time.Second); err != nil {
		return Config{}, err
	}

	if err := loadLeagueData(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DecorateWorkers, err = getEnvAsInt("DECORATE_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse DECORATE_WORKERS: %w", err)
	}
	if cfg.DecorateWorkers < 1 {
		return Config{}, fmt.Errorf("DECORATE_WORKERS must be >= 1")
	}
	if cfg.DefaultGamesPerSeries, err = getEnvAsInt("DEFAULT_GAMES_PER_SERIES", 3); err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_GAMES_PER_SERIES: %w", err)
	}
	if cfg.DefaultGamesPerSeries < 1 {
		return Config{}, fmt.Errorf("DEFAULT_GAMES_PER_SERIES must be >= 1")
	}

	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadLeagueData(cfg *Config) error {
	var err error
	if cfg.LeagueDataTimeout, err = getEnvAsDuration("LEAGUE_DATA_TIMEOUT", 20*time.Second); err != nil {
		return err
	}
	if cfg.LeagueDataMaxRetries, err = getEnvAsInt("LEAGUE_DATA_MAX_RETRIES", 1); err != nil {
		return fmt.Errorf("parse LEAGUE_DATA_MAX_RETRIES: %w", err)
	}
	if cfg.LeagueDataMaxRetries < 0 {
		return fmt.Errorf("LEAGUE_DATA_MAX_RETRIES must be >= 0")
	}
	if cfg.LeagueDataRetryBackoff, err = getEnvAsDuration("LEAGUE_DATA_RETRY_BACKOFF", time.Second); err != nil {
		return err
	}
	if cfg.LeagueDataFetchConcurrency, err = getEnvAsInt("LEAGUE_DATA_FETCH_CONCURRENCY", 4); err != nil {
		return fmt.Errorf("parse LEAGUE_DATA_FETCH_CONCURRENCY: %w", err)
	}
	if cfg.LeagueDataFetchConcurrency < 1 {
		return fmt.Errorf("LEAGUE_DATA_FETCH_CONCURRENCY must be >= 1")
	}

	circuit := resilience.DefaultCircuitBreakerConfig()
	if circuit.Enabled, err = getEnvAsBool("LEAGUE_DATA_CIRCUIT_ENABLED", true); err != nil {
		return err
	}
	if circuit.FailureThreshold, err = getEnvAsInt("LEAGUE_DATA_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse LEAGUE_DATA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuit.FailureThreshold < 1 {
		return fmt.Errorf("LEAGUE_DATA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if circuit.OpenTimeout, err = getEnvAsDuration("LEAGUE_DATA_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return err
	}
	if circuit.HalfOpenMaxReq, err = getEnvAsInt("LEAGUE_DATA_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return fmt.Errorf("parse LEAGUE_DATA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuit.HalfOpenMaxReq < 1 {
		return fmt.Errorf("LEAGUE_DATA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.LeagueDataCircuit = circuit
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses a Go duration and rejects non-positive values.
func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func getEnvAsCSV(key, fallback string) []string {
	parts := strings.Split(getEnv(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
