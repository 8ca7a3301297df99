package honorroll

import (
	"testing"

	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerSeries(id string, avg int, scores ...int) league.PlayerSeriesScore {
	ps := league.PlayerSeriesScore{PlayerID: id, EnteringAverage: avg}
	for _, s := range scores {
		g := league.PlayerGameScore{GameScore: league.GameScore{Scratch: s, EffectiveScratch: s}}
		ps.Games = append(ps.Games, g)
		ps.Series.Accumulate(g.GameScore)
	}
	return ps
}

func matchup(date league.Date, players ...league.PlayerSeriesScore) league.Matchup {
	m := league.Matchup{BowlDate: date}
	m.Scores.PlayerScores = players
	for _, ps := range players {
		m.Scores.GrowGames(len(ps.Games))
		for i, g := range ps.Games {
			m.Scores.Games[i].Scratch += g.Scratch
		}
	}
	for _, g := range m.Scores.Games {
		m.Scores.Series.Accumulate(g)
	}
	return m
}

func byType(t *testing.T, accolades []league.Accolade, kind league.AccoladeType) league.Accolade {
	t.Helper()
	for _, a := range accolades {
		if a.Type == kind {
			return a
		}
	}
	t.Fatalf("accolade %s missing", kind)
	return league.Accolade{}
}

func TestGather(t *testing.T) {
	t.Parallel()

	week1 := league.NewDate(2025, 1, 7)
	week2 := league.NewDate(2025, 1, 14)

	blind := playerSeries("b1", 170, 0, 160, 150)
	blind.Games[0].Blind = true
	setting := playerSeries("b2", 100, 250, 250, 250)
	setting.HandicapSettingDay = true

	l := league.League{Teams: []league.Team{
		{
			ID: "t1",
			Roster: []league.Player{
				{ID: "a1", Stats: league.PlayerStatistics{GameStats: league.StatSummary{Average: 185.5}}},
			},
			Matchups: []league.Matchup{
				matchup(week1, playerSeries("a1", 180, 230, 190, 200), blind),
				matchup(week2, playerSeries("a1", 182, 180, 180, 180)),
			},
		},
		{
			ID: "t2",
			Roster: []league.Player{
				{ID: "c1", Stats: league.PlayerStatistics{GameStats: league.StatSummary{Average: 185.5}}},
			},
			Matchups: []league.Matchup{
				matchup(week2, playerSeries("c1", 150, 230, 210, 100), setting),
			},
		},
	}}

	got := Gather(&l)
	require.Len(t, got, 7)
	assert.Equal(t, []league.AccoladeType{
		league.AccoladeIndividualScratchGame,
		league.AccoladeIndividualScratchSeries,
		league.AccoladeTeamScratchGame,
		league.AccoladeTeamScratchSeries,
		league.AccoladeIndividualGameOverAverage,
		league.AccoladeIndividualSeriesOverAvg,
		league.AccoladeIndividualHighAverage,
	}, []league.AccoladeType{got[0].Type, got[1].Type, got[2].Type, got[3].Type, got[4].Type, got[5].Type, got[6].Type})

	indGame := byType(t, got, league.AccoladeIndividualScratchGame)
	assert.Equal(t, "b2", indGame.ID)
	assert.Equal(t, 250.0, indGame.Value)

	indSeries := byType(t, got, league.AccoladeIndividualScratchSeries)
	assert.Equal(t, "b2", indSeries.ID)
	assert.Equal(t, 750.0, indSeries.Value)

	teamGame := byType(t, got, league.AccoladeTeamScratchGame)
	assert.Equal(t, "t2", teamGame.ID)
	assert.Equal(t, 480.0, teamGame.Value)
	assert.Equal(t, week2, teamGame.Date)

	gameOver := byType(t, got, league.AccoladeIndividualGameOverAverage)
	assert.Equal(t, "c1", gameOver.ID)
	assert.Equal(t, 80.0, gameOver.Value)
	assert.Equal(t, "230 - 150 = 80", gameOver.Description)

	seriesOver := byType(t, got, league.AccoladeIndividualSeriesOverAvg)
	assert.Equal(t, "c1", seriesOver.ID)
	assert.Equal(t, 90.0, seriesOver.Value)
	assert.Equal(t, "540 - 450 = 90", seriesOver.Description)

	highAvg := byType(t, got, league.AccoladeIndividualHighAverage)
	assert.Equal(t, "a1", highAvg.ID, "ties keep the earliest holder")
	assert.Equal(t, 185.5, highAvg.Value)
}

func TestGather_TiesKeepEarliestHolder(t *testing.T) {
	t.Parallel()

	first := league.NewDate(2025, 2, 4)
	l := league.League{Teams: []league.Team{
		{ID: "t1", Matchups: []league.Matchup{matchup(first, playerSeries("p1", 0, 279))}},
		{ID: "t2", Matchups: []league.Matchup{matchup(league.NewDate(2025, 2, 11), playerSeries("p2", 0, 279))}},
	}}

	indGame := Gather(&l)[0]

	assert.Equal(t, "p1", indGame.ID)
	assert.Equal(t, first, indGame.Date)
	assert.Equal(t, 279.0, indGame.Value)
}

func TestGather_ZeroEnteringAverageStillCompetes(t *testing.T) {
	t.Parallel()

	date := league.NewDate(2025, 3, 4)
	l := league.League{Teams: []league.Team{
		{ID: "t1", Matchups: []league.Matchup{matchup(date, playerSeries("n1", 0, 150, 150, 150), playerSeries("r1", 140, 180, 180, 180))}},
	}}

	got := Gather(&l)

	gameOver := byType(t, got, league.AccoladeIndividualGameOverAverage)
	if gameOver.ID != "n1" {
		t.Fatalf("unexpected game over average holder: got=%s want=%s", gameOver.ID, "n1")
	}
	assert.Equal(t, "150 - 0 = 150", gameOver.Description)

	seriesOver := byType(t, got, league.AccoladeIndividualSeriesOverAvg)
	assert.Equal(t, "n1", seriesOver.ID)
	assert.Equal(t, 450.0, seriesOver.Value)
}

func TestGather_EmptyLeague(t *testing.T) {
	t.Parallel()

	got := Gather(&league.League{})

	require.Len(t, got, 7)
	for _, a := range got {
		assert.Equal(t, league.UnknownID, a.ID)
		assert.Zero(t, a.Value)
	}
}
