package teamstats

import "github.com/riskibarqy/bowling-league/internal/domain/league"

// RegularsCounted is how many regular players make up the team average.
const RegularsCounted = 4

// Rollup sums a team's points and records its scratch pins and its high and
// low effective scratch games and series. Matchups without games are not
// bowled yet and are skipped.
func Rollup(team *league.Team) {
	var (
		points   league.PointsWonLost
		stats    league.TeamStats
		lowGame  = league.NoLow
		lowSerie = league.NoLow
	)

	for _, m := range team.Matchups {
		points.Add(m.PointsWonLost)

		scores := m.Scores
		if len(scores.Games) == 0 {
			continue
		}
		series := scores.Series.EffectiveScratch
		stats.ScratchPins += series
		stats.HighSeries = max(stats.HighSeries, series)
		lowSerie = min(lowSerie, series)
		for _, g := range scores.Games {
			stats.HighGame = max(stats.HighGame, g.EffectiveScratch)
			lowGame = min(lowGame, g.EffectiveScratch)
		}
	}

	if lowGame != league.NoLow {
		stats.LowGame = lowGame
	}
	if lowSerie != league.NoLow {
		stats.LowSeries = lowSerie
	}
	team.PointsWonLost = points
	team.Stats = stats
}

// AddRegularAverages adds the truncated average and handicap of the first
// regular players with games to the team stats. Player statistics must
// already be computed.
func AddRegularAverages(team *league.Team) {
	counted := 0
	for _, p := range team.Roster {
		if counted == RegularsCounted {
			return
		}
		if !p.Regular() || p.Stats.GameStats.Count == 0 {
			continue
		}
		team.Stats.Average += int(p.Stats.GameStats.Average)
		team.Stats.Handicap += p.Handicap
		counted++
	}
}
