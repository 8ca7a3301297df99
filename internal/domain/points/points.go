package points

import "github.com/riskibarqy/bowling-league/internal/domain/league"

// Calculator awards points to both sides of a matchup in place.
type Calculator interface {
	Assign(team, opponent *league.TeamScore)
}

// PpgPps awards points per game and per series on handicap score.
type PpgPps struct {
	PerGame        float64
	PerGameOnTie   float64
	PerSeries      float64
	PerSeriesOnTie float64
}

func NewPpgPps(cfg league.PpgPpsConfig) PpgPps {
	return PpgPps{
		PerGame:        cfg.PointsPerGame,
		PerGameOnTie:   cfg.PointsPerGameOnTie,
		PerSeries:      cfg.PointsPerSeries,
		PerSeriesOnTie: cfg.PointsPerSeriesOnTie,
	}
}

// Assign compares every game and the series. When one side recorded fewer
// games, the games it is missing count as zero. Callers skip Assign when a
// side has no games at all.
func (c PpgPps) Assign(team, opponent *league.TeamScore) {
	n := max(len(team.Games), len(opponent.Games))
	team.GrowGames(n)
	opponent.GrowGames(n)

	for i := 0; i < n; i++ {
		team.Games[i].PointsWon, opponent.Games[i].PointsWon = award(
			team.Games[i].HandicapScore,
			opponent.Games[i].HandicapScore,
			c.PerGame,
			c.PerGameOnTie,
		)
	}
	team.Series.PointsWon, opponent.Series.PointsWon = award(
		team.Series.HandicapScore,
		opponent.Series.HandicapScore,
		c.PerSeries,
		c.PerSeriesOnTie,
	)
}

func award(a, b int, win, tie float64) (float64, float64) {
	switch {
	case a == b:
		return tie, tie
	case a > b:
		return win, 0
	default:
		return 0, win
	}
}

// Total sums the points won across a side's games and series.
func Total(score league.TeamScore) float64 {
	total := score.Series.PointsWon
	for _, g := range score.Games {
		total += g.PointsWon
	}
	return total
}

// Select picks the calculator configured for the league. It reports false
// when the configuration is unknown or missing and an all zero PpgPps was
// used instead.
func Select(cfg league.PointScoringConfig) (Calculator, bool) {
	if cfg.Rule == league.PointScoringRulePpgPps && cfg.PpgPps != nil {
		return NewPpgPps(*cfg.PpgPps), true
	}
	return PpgPps{}, false
}
