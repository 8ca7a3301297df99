package playerstats

import (
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Calculate derives a player's season statistics from the player's games,
// one slice per matchup. Blind and vacant games are ignored; a matchup
// with a blind or vacant game, or with fewer than gamesPerSeries games,
// does not count as a series.
func Calculate(series [][]league.PlayerGameScore, gamesPerSeries int) league.PlayerStatistics {
	if gamesPerSeries <= 0 {
		gamesPerSeries = league.DefaultGamesPerSeries
	}

	var (
		stats      league.PlayerStatistics
		allGames   []float64
		allSeries  []float64
		byPosition = make([][]float64, gamesPerSeries)
		tally      = newFrameTally()
	)

	for _, games := range series {
		total := 0
		complete := len(games) >= gamesPerSeries
		for i, g := range games {
			if !g.Counted() {
				complete = false
				continue
			}
			score := float64(g.Scratch)
			allGames = append(allGames, score)
			if i < gamesPerSeries {
				byPosition[i] = append(byPosition[i], score)
			}
			total += g.Scratch

			if g.Scratch >= 200 {
				stats.Games200++
				if g.Scratch == 300 {
					stats.Games300++
				}
			}
			if len(g.Frames) == 0 {
				stats.IncompleteFrameData = true
				continue
			}
			tally.add(g.Frames)
		}

		if !complete {
			continue
		}
		allSeries = append(allSeries, float64(total))
		if total >= 600 {
			stats.Series600++
			if total > 800 {
				stats.Series800++
			}
		}
	}

	stats.GameStats = summarize(allGames)
	stats.SeriesStats = summarize(allSeries)
	if len(allGames) > 0 {
		stats.Pinfall = int(floats.Sum(allGames))
	}

	stats.GameAverages = make([]float64, gamesPerSeries)
	for i, scores := range byPosition {
		if len(scores) > 0 {
			stats.GameAverages[i] = stat.Mean(scores, nil)
		}
	}

	tally.apply(&stats)
	if len(tally.singlePinGames) > 0 {
		stats.AllSinglePinsPickedUpAverage = stat.Mean(tally.singlePinGames, nil)
	}
	return stats
}

// summarize reports population statistics; an empty sample is all zero.
func summarize(values []float64) league.StatSummary {
	if len(values) == 0 {
		return league.StatSummary{}
	}
	mean, sd := stat.PopMeanStdDev(values, nil)
	return league.StatSummary{
		Count:   len(values),
		Average: mean,
		Min:     int(floats.Min(values)),
		Max:     int(floats.Max(values)),
		StdDev:  sd,
	}
}
