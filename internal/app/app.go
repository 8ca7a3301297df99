package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/bowling-league/external/leaguedata"
	"github.com/riskibarqy/bowling-league/internal/config"
	"github.com/riskibarqy/bowling-league/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/bowling-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bowling-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/bowling-league/internal/platform/cache"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/riskibarqy/bowling-league/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	leagueSvc, err := NewLeagueService(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Startup keeps going when some documents fail to score; GetLeague
	// reports the same failure per request.
	if err := leagueSvc.WarmAll(ctx); err != nil {
		logger.WarnContext(ctx, "league cache warm-up incomplete", "error", err)
	}

	handler := httpapi.NewHandler(leagueSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewLeagueService loads the league documents from LEAGUE_DATA_DIR into the
// snapshot store and wires the optional remote source and view cache.
func NewLeagueService(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.LeagueService, error) {
	docs, err := jsonfile.NewLoader(cfg.LeagueDataDir, logger).LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load league documents: %w", err)
	}
	repo, err := memory.NewLeagueRepository(docs)
	if err != nil {
		return nil, fmt.Errorf("seed league repository: %w", err)
	}

	svcCfg := usecase.LeagueServiceConfig{
		Repository:  repo,
		Decorator:   usecase.NewDecorationService(logger, cfg.DefaultGamesPerSeries),
		WarmWorkers: cfg.DecorateWorkers,
		Logger:      logger,
	}
	if cfg.CacheEnabled {
		svcCfg.Cache = cache.NewStore[usecase.LeagueView](cfg.CacheTTL)
	}
	if cfg.LeagueDataBaseURL != "" {
		client, err := NewLeagueDataClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		svcCfg.Fetcher = client
	}

	return usecase.NewLeagueService(svcCfg), nil
}

func NewLeagueDataClient(cfg config.Config, logger *logging.Logger) (*leaguedata.Client, error) {
	client, err := leaguedata.NewClient(leaguedata.ClientConfig{
		BaseURL:          cfg.LeagueDataBaseURL,
		Timeout:          cfg.LeagueDataTimeout,
		MaxRetries:       cfg.LeagueDataMaxRetries,
		RetryBackoff:     cfg.LeagueDataRetryBackoff,
		FetchConcurrency: cfg.LeagueDataFetchConcurrency,
		Logger:           logger,
		CircuitBreaker:   cfg.LeagueDataCircuit,
	})
	if err != nil {
		return nil, fmt.Errorf("build league data client: %w", err)
	}
	return client, nil
}
