package playerstats

import (
	"fmt"
	"math"

	"github.com/riskibarqy/bowling-league/internal/domain/handicap"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

// Season computes statistics for every rostered player of a team along with
// the season handicap, booster series and best marks over average.
func Season(team *league.Team, hdcp handicap.Calculator, gamesPerSeries int) {
	if hdcp == nil {
		hdcp = handicap.Zero{}
	}
	if gamesPerSeries <= 0 {
		gamesPerSeries = league.DefaultGamesPerSeries
	}

	for i := range team.Roster {
		p := &team.Roster[i]
		p.Stats = Calculate(playerSeries(team.Matchups, p.ID), gamesPerSeries)

		p.Handicap = 0
		p.AverageBoosterSeries = 0
		if p.Stats.GameStats.Average > 0 {
			p.Handicap = hdcp.Handicap(p.Stats.GameStats.Average)
			p.AverageBoosterSeries = BoosterSeries(p.Stats, gamesPerSeries)
		}
		p.BestGameOverAverage, p.BestSeriesOverAverage = bestOverAverage(p.ID, team.Matchups)
	}
}

func playerSeries(matchups []league.Matchup, playerID string) [][]league.PlayerGameScore {
	var out [][]league.PlayerGameScore
	for _, m := range matchups {
		for _, ps := range m.Scores.PlayerScores {
			if ps.PlayerID == playerID {
				out = append(out, ps.Games)
				break
			}
		}
	}
	return out
}

// BoosterSeries is the series total that lifts the truncated average by one
// pin.
func BoosterSeries(stats league.PlayerStatistics, gamesPerSeries int) int {
	target := math.Floor(stats.GameStats.Average) + 1
	games := float64(stats.GameStats.Count + gamesPerSeries)
	return int(math.Ceil(target*games - float64(stats.Pinfall)))
}

func bestOverAverage(playerID string, matchups []league.Matchup) (*league.Accolade, *league.Accolade) {
	game := league.Accolade{Type: league.AccoladeIndividualGameOverAverage, ID: playerID}
	series := league.Accolade{Type: league.AccoladeIndividualSeriesOverAvg, ID: playerID}

	for _, m := range matchups {
		for _, ps := range m.Scores.PlayerScores {
			if ps.PlayerID != playerID || ps.EnteringAverage <= 0 {
				continue
			}
			avg := ps.EnteringAverage
			for _, g := range ps.Games {
				if !g.Counted() {
					continue
				}
				if diff := g.Scratch - avg; float64(diff) > game.Value {
					game.Value = float64(diff)
					game.Date = m.Date()
					game.Description = fmt.Sprintf("%d - %d = %d", g.Scratch, avg, diff)
				}
			}
			if ps.HasBlind() {
				continue
			}
			expected := avg * ps.Series.Games
			if diff := ps.Series.Scratch - expected; float64(diff) > series.Value {
				series.Value = float64(diff)
				series.Date = m.Date()
				series.Description = fmt.Sprintf("%d - %d = %d", ps.Series.Scratch, expected, diff)
			}
		}
	}

	var bestGame, bestSeries *league.Accolade
	if game.Value > 0 {
		bestGame = &game
	}
	if series.Value > 0 {
		bestSeries = &series
	}
	return bestGame, bestSeries
}
