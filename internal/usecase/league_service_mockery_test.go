package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	leaguemock "github.com/riskibarqy/bowling-league/internal/mocks/domain/league"
	usecasemock "github.com/riskibarqy/bowling-league/internal/mocks/usecase"
	"github.com/riskibarqy/bowling-league/internal/platform/cache"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLeagueService(repo league.Repository, fetcher LeagueFetcher) *LeagueService {
	cfg := LeagueServiceConfig{
		Repository:  repo,
		Decorator:   NewDecorationService(logging.NewNop(), 3),
		Cache:       cache.NewStore[LeagueView](time.Minute),
		WarmWorkers: 2,
		Logger:      logging.NewNop(),
	}
	if fetcher != nil {
		cfg.Fetcher = fetcher
	}
	return NewLeagueService(cfg)
}

func freshLeague(id string) func(context.Context, string) (league.League, bool, error) {
	return func(context.Context, string) (league.League, bool, error) {
		return newTestLeague(id), true, nil
	}
}

func TestLeagueService_ListLeagues_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("List", ctx).Return([]league.League{newTestLeague("l1")}, nil).Once()

	got, err := newTestLeagueService(repo, nil).ListLeagues(ctx)
	require.NoError(t, err)

	want := []LeagueSummary{{
		ID:     "l1",
		Name:   "Tuesday Night Trios",
		Season: "2025-2026",
		Center: "Sunset Lanes",
		Teams:  1,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summaries (-want +got):\n%s", diff)
	}
}

func TestLeagueService_GetLeague_CachesDecoratedView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "l1").Return(freshLeague("l1")).Once()

	service := newTestLeagueService(repo, nil)

	first, err := service.GetLeague(ctx, " l1 ")
	require.NoError(t, err)
	second, err := service.GetLeague(ctx, "l1")
	require.NoError(t, err)

	assert.Empty(t, first.Issues)
	assert.Len(t, first.League.Accolades, 7)
	assert.Equal(t, first.DecoratedAt, second.DecoratedAt)
	assert.Len(t, second.League.Accolades, 7, "cached view must not be decorated twice")
}

func TestLeagueService_GetLeague_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "missing").Return(league.League{}, false, nil).Twice()

	service := newTestLeagueService(repo, nil)
	for i := 0; i < 2; i++ {
		_, err := service.GetLeague(ctx, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
}

func TestLeagueService_GetLeague_RequiresID(t *testing.T) {
	t.Parallel()

	_, err := newTestLeagueService(leaguemock.NewRepository(t), nil).GetLeague(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_GetTeamAndPlayer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "l1").Return(freshLeague("l1")).Once()
	service := newTestLeagueService(repo, nil)

	team, err := service.GetTeam(ctx, "l1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Pin Pals", team.Team.Name)
	assert.Equal(t, league.RankTrendUp, team.RankTrend)
	assert.Equal(t, 600, team.Team.Stats.ScratchPins)

	player, err := service.GetPlayer(ctx, "l1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "t1", player.TeamID)
	assert.Equal(t, 606, player.Player.AverageBoosterSeries)

	_, err = service.GetTeam(ctx, "l1", "t9")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.GetPlayer(ctx, "l1", "z9")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = service.GetPlayer(ctx, "l1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeagueService_GetHonorRoll_ResolvesNames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, "l1").Return(freshLeague("l1")).Once()

	entries, err := newTestLeagueService(repo, nil).GetHonorRoll(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, entries, 7)

	names := make(map[league.AccoladeType]string, len(entries))
	for _, e := range entries {
		names[e.Type] = e.Name
	}
	want := map[league.AccoladeType]string{
		league.AccoladeIndividualScratchGame:     "Alex",
		league.AccoladeIndividualScratchSeries:   "Alex",
		league.AccoladeTeamScratchGame:           "Pin Pals",
		league.AccoladeTeamScratchSeries:         "Pin Pals",
		league.AccoladeIndividualGameOverAverage: "Alex",
		league.AccoladeIndividualSeriesOverAvg:   "Alex",
		league.AccoladeIndividualHighAverage:     "Alex",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected holder names (-want +got):\n%s", diff)
	}
}

func TestLeagueService_Import_StoresAndInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	fetcher := usecasemock.NewLeagueFetcher(t)

	var loads atomic.Int32
	repo.On("GetByID", mock.Anything, "l1").Return(func(context.Context, string) (league.League, bool, error) {
		loads.Add(1)
		return newTestLeague("l1"), true, nil
	}).Twice()
	fetcher.On("FetchLeague", mock.Anything, "l1").Return(newTestLeague("l1"), nil).Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(l league.League) bool { return l.ID == "l1" })).Return(nil).Once()

	service := newTestLeagueService(repo, fetcher)

	_, err := service.GetLeague(ctx, "l1")
	require.NoError(t, err)

	summary, err := service.Import(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", summary.ID)

	_, err = service.GetLeague(ctx, "l1")
	require.NoError(t, err)
	if got := loads.Load(); got != 2 {
		t.Fatalf("import must invalidate the cached view: loads=%d", got)
	}
}

func TestLeagueService_Import_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no fetcher", func(t *testing.T) {
		t.Parallel()
		_, err := newTestLeagueService(leaguemock.NewRepository(t), nil).Import(ctx, "l1")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("id mismatch", func(t *testing.T) {
		t.Parallel()
		fetcher := usecasemock.NewLeagueFetcher(t)
		fetcher.On("FetchLeague", mock.Anything, "l1").Return(newTestLeague("l2"), nil).Once()

		_, err := newTestLeagueService(leaguemock.NewRepository(t), fetcher).Import(ctx, "l1")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()
		fetcher := usecasemock.NewLeagueFetcher(t)
		fetcher.On("FetchLeague", mock.Anything, "l1").Return(league.League{}, ErrNotFound).Once()

		_, err := newTestLeagueService(leaguemock.NewRepository(t), fetcher).Import(ctx, "l1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLeagueService_DecorateDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTestLeagueService(leaguemock.NewRepository(t), nil)

	view, err := service.DecorateDocument(ctx, newTestLeague("adhoc"))
	require.NoError(t, err)
	assert.Equal(t, 654, view.League.Teams[0].Matchups[0].Scores.Series.HandicapScore)

	doc := newTestLeague("adhoc")
	doc.Name = ""
	_, err = service.DecorateDocument(ctx, doc)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeagueService_WarmAll_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := leaguemock.NewRepository(t)
	repo.On("List", mock.Anything).Return([]league.League{newTestLeague("l1"), newTestLeague("l2"), {ID: "gone"}}, nil).Once()
	repo.On("GetByID", mock.Anything, "l1").Return(freshLeague("l1")).Once()
	repo.On("GetByID", mock.Anything, "l2").Return(freshLeague("l2")).Once()
	repo.On("GetByID", mock.Anything, "gone").Return(league.League{}, false, nil).Once()

	service := newTestLeagueService(repo, nil)

	err := service.WarmAll(ctx)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected warm failure for missing league, got %v", err)
	}

	for _, id := range []string{"l1", "l2"} {
		view, err := service.GetLeague(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, view.League.ID)
	}
}
