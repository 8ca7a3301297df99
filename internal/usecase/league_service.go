package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/platform/cache"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

const leagueCachePrefix = "league:"

// LeagueFetcher loads a raw league document from a remote source.
type LeagueFetcher interface {
	FetchLeague(ctx context.Context, leagueID string) (league.League, error)
}

// LeagueView is a decorated league. Views may be served from cache, so
// callers must treat them as read-only.
type LeagueView struct {
	League      league.League `json:"league"`
	Issues      []string      `json:"issues,omitempty"`
	DecoratedAt time.Time     `json:"decoratedAt"`

	err error
}

// Err returns the combined scoring error behind Issues, or nil.
func (v LeagueView) Err() error {
	return v.err
}

type LeagueSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Season    string `json:"season"`
	Center    string `json:"center"`
	Completed bool   `json:"completed"`
	Teams     int    `json:"teams"`
}

type TeamView struct {
	LeagueID  string          `json:"leagueId"`
	RankTrend league.RankTrend `json:"rankTrend"`
	Team      league.Team     `json:"team"`
}

type PlayerView struct {
	LeagueID string        `json:"leagueId"`
	TeamID   string        `json:"teamId"`
	Player   league.Player `json:"player"`
}

// HonorRollEntry is an accolade with its holder's display name resolved.
type HonorRollEntry struct {
	league.Accolade
	Name string `json:"name"`
}

type LeagueServiceConfig struct {
	Repository  league.Repository
	Fetcher     LeagueFetcher
	Decorator   *DecorationService
	Cache       *cache.Store[LeagueView]
	WarmWorkers int
	Logger      *logging.Logger
}

type LeagueService struct {
	repo      league.Repository
	fetcher   LeagueFetcher
	decorator *DecorationService
	cache     *cache.Store[LeagueView]
	workers   int
	logger    *logging.Logger
	now       func() time.Time
}

// NewLeagueService wires the league queries. A nil Cache disables caching
// and a nil Fetcher disables Import.
func NewLeagueService(cfg LeagueServiceConfig) *LeagueService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	decorator := cfg.Decorator
	if decorator == nil {
		decorator = NewDecorationService(logger, league.DefaultGamesPerSeries)
	}
	workers := cfg.WarmWorkers
	if workers < 1 {
		workers = 1
	}

	return &LeagueService{
		repo:      cfg.Repository,
		fetcher:   cfg.Fetcher,
		decorator: decorator,
		cache:     cfg.Cache,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]LeagueSummary, error) {
	ctx, span := startSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]LeagueSummary, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, summarize(l))
	}
	return out, nil
}

// GetLeague returns the decorated league, decorating the stored snapshot on
// a cache miss.
func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (LeagueView, error) {
	ctx, span := startSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueView{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("league.id", leagueID))

	if s.cache == nil {
		return s.loadView(ctx, leagueID)
	}
	return s.cache.GetOrLoad(ctx, leagueCachePrefix+leagueID, func(ctx context.Context) (LeagueView, error) {
		return s.loadView(ctx, leagueID)
	})
}

func (s *LeagueService) GetTeam(ctx context.Context, leagueID, teamID string) (TeamView, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamView{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	view, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return TeamView{}, err
	}
	team, ok := view.League.Team(teamID)
	if !ok {
		return TeamView{}, fmt.Errorf("%w: league=%s team=%s", ErrNotFound, view.League.ID, teamID)
	}

	return TeamView{
		LeagueID:  view.League.ID,
		RankTrend: team.RankTrend(),
		Team:      *team,
	}, nil
}

func (s *LeagueService) GetPlayer(ctx context.Context, leagueID, playerID string) (PlayerView, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerView{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	view, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return PlayerView{}, err
	}
	for i := range view.League.Teams {
		team := &view.League.Teams[i]
		if p, ok := team.Player(playerID); ok {
			return PlayerView{LeagueID: view.League.ID, TeamID: team.ID, Player: *p}, nil
		}
	}

	return PlayerView{}, fmt.Errorf("%w: league=%s player=%s", ErrNotFound, view.League.ID, playerID)
}

// GetHonorRoll returns the league marks with the holder names resolved.
// Team marks resolve against tracked teams first and then other teams.
func (s *LeagueService) GetHonorRoll(ctx context.Context, leagueID string) ([]HonorRollEntry, error) {
	view, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	l := &view.League
	out := make([]HonorRollEntry, 0, len(l.Accolades))
	for _, a := range l.Accolades {
		out = append(out, HonorRollEntry{Accolade: a, Name: holderName(l, a)})
	}
	return out, nil
}

// Import fetches the league document from the remote source, stores it and
// drops any cached view of it.
func (s *LeagueService) Import(ctx context.Context, leagueID string) (LeagueSummary, error) {
	ctx, span := startSpan(ctx, "usecase.LeagueService.Import", attribute.String("league.id", leagueID))
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return LeagueSummary{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if s.fetcher == nil {
		return LeagueSummary{}, fmt.Errorf("%w: remote league source is not configured", ErrUnavailable)
	}

	doc, err := s.fetcher.FetchLeague(ctx, leagueID)
	if err != nil {
		failSpan(span, err, "fetch failed")
		return LeagueSummary{}, fmt.Errorf("fetch league=%s: %w", leagueID, err)
	}
	if doc.ID == "" {
		doc.ID = leagueID
	}
	if doc.ID != leagueID {
		return LeagueSummary{}, fmt.Errorf("%w: fetched league id %q does not match %q", ErrInvalidInput, doc.ID, leagueID)
	}
	if err := doc.Validate(); err != nil {
		return LeagueSummary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, doc); err != nil {
		return LeagueSummary{}, fmt.Errorf("store league=%s: %w", leagueID, err)
	}
	s.Invalidate(ctx, leagueID)

	s.logger.InfoContext(ctx, "league imported", "league_id", leagueID, "teams", len(doc.Teams))
	return summarize(doc), nil
}

// DecorateDocument decorates a caller supplied league without storing it.
func (s *LeagueService) DecorateDocument(ctx context.Context, doc league.League) (LeagueView, error) {
	ctx, span := startSpan(ctx, "usecase.LeagueService.DecorateDocument")
	defer span.End()

	if err := doc.Validate(); err != nil {
		return LeagueView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.decorate(ctx, doc), nil
}

// WarmAll drops every cached view and decorates each stored league in
// parallel so the next reads are served from cache. Failures are returned
// together.
func (s *LeagueService) WarmAll(ctx context.Context) error {
	ctx, span := startSpan(ctx, "usecase.LeagueService.WarmAll")
	defer span.End()

	leagues, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list leagues: %w", err)
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, leagueCachePrefix)
	}
	if len(leagues) == 0 {
		return nil
	}

	pool, err := ants.NewPool(min(s.workers, len(leagues)))
	if err != nil {
		return fmt.Errorf("create warm pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		warmErr error
		workers sync.WaitGroup
	)
	record := func(leagueID string, err error) {
		mu.Lock()
		warmErr = multierr.Append(warmErr, fmt.Errorf("warm league=%s: %w", leagueID, err))
		mu.Unlock()
	}

	for _, l := range leagues {
		leagueID := l.ID
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()
			view, err := s.GetLeague(ctx, leagueID)
			if err != nil {
				record(leagueID, err)
				return
			}
			if len(view.Issues) > 0 {
				s.logger.WarnContext(ctx, "league warmed with issues", "league_id", leagueID, "issues", view.Issues)
			}
		})
		if submitErr != nil {
			workers.Done()
			record(leagueID, submitErr)
		}
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "league cache warmed",
		"leagues", len(leagues),
		"failed", len(multierr.Errors(warmErr)),
	)
	failSpan(span, warmErr, "warm failures")
	return warmErr
}

func (s *LeagueService) Invalidate(ctx context.Context, leagueID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leagueCachePrefix+leagueID)
}

func (s *LeagueService) loadView(ctx context.Context, leagueID string) (LeagueView, error) {
	l, exists, err := s.repo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueView{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return LeagueView{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return s.decorate(ctx, l), nil
}

func (s *LeagueService) decorate(ctx context.Context, l league.League) LeagueView {
	err := s.decorator.Decorate(ctx, &l)
	return LeagueView{
		League:      l,
		Issues:      Issues(err),
		DecoratedAt: s.now().UTC(),
		err:         err,
	}
}

func summarize(l league.League) LeagueSummary {
	return LeagueSummary{
		ID:        l.ID,
		Name:      l.Name,
		Season:    l.Season,
		Center:    l.Center,
		Completed: l.Completed,
		Teams:     len(l.Teams),
	}
}

func holderName(l *league.League, a league.Accolade) string {
	if a.ID == league.UnknownID {
		return league.UnknownID
	}
	switch a.Type {
	case league.AccoladeTeamScratchGame, league.AccoladeTeamScratchSeries:
		if team, ok := l.Team(a.ID); ok {
			return team.Name
		}
		if other, ok := l.OtherTeam(a.ID); ok {
			return other.Name
		}
		return league.UnknownID
	default:
		return l.PlayerName(a.ID)
	}
}
