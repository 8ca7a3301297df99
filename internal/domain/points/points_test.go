package points

import (
	"testing"

	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamScore(series int, games ...int) *league.TeamScore {
	out := &league.TeamScore{}
	for _, g := range games {
		out.Games = append(out.Games, league.GameScore{HandicapScore: g})
	}
	out.Series.HandicapScore = series
	return out
}

func TestPpgPps_AllTies(t *testing.T) {
	t.Parallel()

	calc := NewPpgPps(league.DefaultPpgPpsConfig())
	team := teamScore(2400, 800, 800, 800)
	opponent := teamScore(2400, 800, 800, 800)

	calc.Assign(team, opponent)

	for i := range team.Games {
		assert.Equal(t, 0.5, team.Games[i].PointsWon, "team game %d", i)
		assert.Equal(t, 0.5, opponent.Games[i].PointsWon, "opponent game %d", i)
	}
	assert.Equal(t, 0.5, team.Series.PointsWon)
	assert.Equal(t, 0.5, opponent.Series.PointsWon)

	gamesCount := float64(len(team.Games))
	assert.Equal(t, gamesCount*0.5*2, Total(*team)-team.Series.PointsWon+Total(*opponent)-opponent.Series.PointsWon)
	assert.Equal(t, Total(*team), Total(*opponent))
}

func TestPpgPps_WinsAndLosses(t *testing.T) {
	t.Parallel()

	calc := PpgPps{PerGame: 2, PerGameOnTie: 1, PerSeries: 3, PerSeriesOnTie: 1.5}
	team := teamScore(2450, 850, 790, 810)
	opponent := teamScore(2420, 820, 800, 800)

	calc.Assign(team, opponent)

	assert.Equal(t, []float64{2, 0, 2}, []float64{team.Games[0].PointsWon, team.Games[1].PointsWon, team.Games[2].PointsWon})
	assert.Equal(t, []float64{0, 2, 0}, []float64{opponent.Games[0].PointsWon, opponent.Games[1].PointsWon, opponent.Games[2].PointsWon})
	assert.Equal(t, 3.0, team.Series.PointsWon)
	assert.Equal(t, 0.0, opponent.Series.PointsWon)
	assert.Equal(t, 7.0, Total(*team))
	assert.Equal(t, 2.0, Total(*opponent))
}

func TestPpgPps_ReassignResetsLoser(t *testing.T) {
	t.Parallel()

	calc := NewPpgPps(league.DefaultPpgPpsConfig())
	team := teamScore(600, 600)
	opponent := teamScore(500, 500)
	opponent.Games[0].PointsWon = 1
	opponent.Series.PointsWon = 1

	calc.Assign(team, opponent)

	assert.Equal(t, 0.0, Total(*opponent))
	assert.Equal(t, 2.0, Total(*team))
}

func TestPpgPps_OpponentMissingGames(t *testing.T) {
	t.Parallel()

	calc := NewPpgPps(league.DefaultPpgPpsConfig())
	team := teamScore(1500, 750, 750)
	opponent := teamScore(700, 700)

	calc.Assign(team, opponent)

	require.Len(t, opponent.Games, 2)
	assert.Equal(t, 1.0, team.Games[1].PointsWon)
	assert.Equal(t, 0.0, opponent.Games[1].PointsWon)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	cfg := league.DefaultPpgPpsConfig()
	calc, ok := Select(league.PointScoringConfig{Rule: league.PointScoringRulePpgPps, PpgPps: &cfg})
	require.True(t, ok)
	assert.Equal(t, NewPpgPps(cfg), calc)

	calc, ok = Select(league.PointScoringConfig{Rule: league.PointScoringRulePpgPps})
	require.False(t, ok)
	assert.Equal(t, PpgPps{}, calc)

	calc, ok = Select(league.PointScoringConfig{Rule: "PER_PIN"})
	require.False(t, ok)
	assert.Equal(t, PpgPps{}, calc)
}
