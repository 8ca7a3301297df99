package playerstats

import (
	"testing"

	"github.com/riskibarqy/bowling-league/internal/domain/frame"
	"github.com/riskibarqy/bowling-league/internal/domain/handicap"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scratch(scores ...int) []league.PlayerGameScore {
	out := make([]league.PlayerGameScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, league.PlayerGameScore{GameScore: league.GameScore{Scratch: s}})
	}
	return out
}

func scoredGame(t *testing.T, notation [][]string) league.PlayerGameScore {
	t.Helper()
	frames, total, err := frame.Reconstruct(notation, 0)
	require.NoError(t, err)
	return league.PlayerGameScore{GameScore: league.GameScore{Scratch: total}, Frames: frames}
}

func frames(first []string, tenth []string) [][]string {
	out := make([][]string, 0, frame.Count)
	for i := 0; i < frame.Count-1; i++ {
		out = append(out, first)
	}
	return append(out, tenth)
}

func TestCalculate_GameAndSeriesStats(t *testing.T) {
	t.Parallel()

	blindFirst := scratch(0, 180, 160)
	blindFirst[0].Blind = true
	series := [][]league.PlayerGameScore{
		scratch(150, 170, 190),
		scratch(200, 210, 220),
		blindFirst,
	}

	stats := Calculate(series, 3)

	assert.Equal(t, 8, stats.GameStats.Count)
	assert.Equal(t, 185.0, stats.GameStats.Average)
	assert.Equal(t, 150, stats.GameStats.Min)
	assert.Equal(t, 220, stats.GameStats.Max)
	assert.InDelta(t, 22.9129, stats.GameStats.StdDev, 1e-4)
	assert.Equal(t, 1480, stats.Pinfall)

	assert.Equal(t, 2, stats.SeriesStats.Count)
	assert.Equal(t, 570.0, stats.SeriesStats.Average)
	assert.Equal(t, 510, stats.SeriesStats.Min)
	assert.Equal(t, 630, stats.SeriesStats.Max)
	assert.InDelta(t, 60.0, stats.SeriesStats.StdDev, 1e-9)

	require.Len(t, stats.GameAverages, 3)
	assert.Equal(t, 175.0, stats.GameAverages[0])
	assert.InDelta(t, 186.6667, stats.GameAverages[1], 1e-4)
	assert.Equal(t, 190.0, stats.GameAverages[2])

	assert.Equal(t, 3, stats.Games200)
	assert.Equal(t, 0, stats.Games300)
	assert.Equal(t, 1, stats.Series600)
	assert.Equal(t, 0, stats.Series800)
	assert.True(t, stats.IncompleteFrameData)
}

func TestCalculate_ShortSeriesCountsGamesOnly(t *testing.T) {
	t.Parallel()

	stats := Calculate([][]league.PlayerGameScore{scratch(200, 200)}, 3)

	assert.Equal(t, 2, stats.GameStats.Count)
	assert.Equal(t, 0, stats.SeriesStats.Count)
	assert.Equal(t, []float64{200, 200, 0}, stats.GameAverages)
}

func TestCalculate_PerfectGame(t *testing.T) {
	t.Parallel()

	game := scoredGame(t, frames([]string{"X"}, []string{"X", "X", "X"}))
	stats := Calculate([][]league.PlayerGameScore{{game}}, 3)

	assert.False(t, stats.IncompleteFrameData)
	assert.Equal(t, 1, stats.Games300)
	assert.Equal(t, 1, stats.CleanGames)
	assert.Equal(t, 10.0, stats.FirstBallAverage)
	assert.Equal(t, league.NewRatio(12, 12), stats.Strikes)
	assert.Equal(t, league.NewRatio(0, 0), stats.Spares)
	assert.Equal(t, league.NewRatio(0, 10), stats.Opens)
	assert.Equal(t, []league.Streak{{Length: 12, Count: 1}}, stats.StrikesInARow)
	assert.Equal(t, 300.0, stats.AllSinglePinsPickedUpAverage)
}

func TestCalculate_NinePinSpares(t *testing.T) {
	t.Parallel()

	game := scoredGame(t, frames([]string{"9", "/"}, []string{"9", "/", "9"}))
	require.Equal(t, 190, game.Scratch)

	stats := Calculate([][]league.PlayerGameScore{{game}}, 3)

	assert.Equal(t, 9.0, stats.FirstBallAverage)
	assert.Equal(t, league.NewRatio(0, 11), stats.Strikes)
	assert.Equal(t, league.NewRatio(10, 10), stats.Spares)
	assert.Equal(t, league.NewRatio(10, 10), stats.SinglePinSpares)
	assert.Equal(t, league.NewRatio(0, 10), stats.Opens)
	assert.Empty(t, stats.StrikesInARow)
	assert.Equal(t, 190.0, stats.AllSinglePinsPickedUpAverage)
}

func TestCalculate_AllSinglePinsPickedUp(t *testing.T) {
	t.Parallel()

	game := scoredGame(t, frames([]string{"9", "-"}, []string{"9", "-"}))
	require.Equal(t, 90, game.Scratch)

	stats := Calculate([][]league.PlayerGameScore{{game}}, 3)

	assert.Equal(t, league.NewRatio(0, 10), stats.Spares)
	assert.Equal(t, league.NewRatio(0, 10), stats.SinglePinSpares)
	assert.Equal(t, league.NewRatio(10, 10), stats.Opens)
	assert.Equal(t, 0, stats.CleanGames)
	assert.Equal(t, 181.0, stats.AllSinglePinsPickedUpAverage)
}

func TestCalculate_Splits(t *testing.T) {
	t.Parallel()

	notation := [][]string{
		{"7S", "/"}, {"8S", "1"},
		{"9", "-"}, {"9", "-"}, {"9", "-"}, {"9", "-"}, {"9", "-"}, {"9", "-"}, {"9", "-"},
		{"9", "-"},
	}
	game := scoredGame(t, notation)

	stats := Calculate([][]league.PlayerGameScore{{game}}, 3)

	assert.Equal(t, league.NewRatio(1, 2), stats.Splits)
	assert.Equal(t, league.NewRatio(1, 10), stats.Spares)
	assert.Equal(t, league.NewRatio(0, 8), stats.SinglePinSpares)
}

func TestCalculate_StrikesInARow(t *testing.T) {
	t.Parallel()

	notation := [][]string{
		{"X"}, {"X"}, {"X"}, {"7", "2"},
		{"X"}, {"X"}, {"X"}, {"X"}, {"8", "1"},
		{"9", "-"},
	}
	game := scoredGame(t, notation)

	stats := Calculate([][]league.PlayerGameScore{{game}}, 3)

	assert.Equal(t, []league.Streak{{Length: 3, Count: 1}, {Length: 4, Count: 1}}, stats.StrikesInARow)
	assert.Equal(t, league.NewRatio(7, 10), stats.Strikes)
}

func TestCalculate_Idempotent(t *testing.T) {
	t.Parallel()

	series := [][]league.PlayerGameScore{
		{scoredGame(t, frames([]string{"X"}, []string{"X", "X", "X"})), scoredGame(t, frames([]string{"9", "-"}, []string{"9", "-"}))},
		scratch(180, 190, 200),
	}

	first := Calculate(series, 3)
	second := Calculate(series, 3)

	assert.Equal(t, first, second)
}

func TestCalculate_Empty(t *testing.T) {
	t.Parallel()

	stats := Calculate(nil, 0)

	assert.Equal(t, league.StatSummary{}, stats.GameStats)
	assert.Equal(t, league.StatSummary{}, stats.SeriesStats)
	assert.Equal(t, []float64{0, 0, 0}, stats.GameAverages)
	assert.False(t, stats.IncompleteFrameData)
}

func TestSeason(t *testing.T) {
	t.Parallel()

	team := league.Team{
		ID: "t1",
		Roster: []league.Player{
			league.NewPlayer("p1", "Pat", league.PlayerStatusRegular),
			league.NewPlayer("p2", "Sam", league.PlayerStatusSubstitute),
		},
		Matchups: []league.Matchup{{
			Week:     1,
			BowlDate: league.NewDate(2025, 1, 7),
			Scores: league.TeamScore{PlayerScores: []league.PlayerSeriesScore{{
				PlayerID:        "p1",
				EnteringAverage: 160,
				Games:           scratch(150, 170, 190),
				Series:          league.SeriesScore{GameScore: league.GameScore{Scratch: 510}, Games: 3},
			}}},
		}},
	}

	Season(&team, handicap.PercentOfAverageToTarget{Target: 200, Pct: 90}, 3)

	p1 := team.Roster[0]
	assert.Equal(t, 170.0, p1.Stats.GameStats.Average)
	assert.Equal(t, 27, p1.Handicap)
	assert.Equal(t, 516, p1.AverageBoosterSeries)
	require.NotNil(t, p1.BestGameOverAverage)
	assert.Equal(t, 30.0, p1.BestGameOverAverage.Value)
	assert.Equal(t, "190 - 160 = 30", p1.BestGameOverAverage.Description)
	assert.Equal(t, league.NewDate(2025, 1, 7), p1.BestGameOverAverage.Date)
	require.NotNil(t, p1.BestSeriesOverAverage)
	assert.Equal(t, "510 - 480 = 30", p1.BestSeriesOverAverage.Description)

	p2 := team.Roster[1]
	assert.Equal(t, 0, p2.Stats.GameStats.Count)
	assert.Equal(t, 0, p2.Handicap)
	assert.Nil(t, p2.BestGameOverAverage)
	assert.Nil(t, p2.BestSeriesOverAverage)
}
