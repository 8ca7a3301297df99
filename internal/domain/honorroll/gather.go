package honorroll

import (
	"fmt"

	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

// mark tracks the holder of one honor roll category. A later value only
// replaces the holder when it is strictly greater.
type mark struct {
	league.Accolade
}

func newMark(kind league.AccoladeType) *mark {
	return &mark{Accolade: league.NewAccolade(kind)}
}

func (m *mark) offer(id string, when league.Date, value float64, description string) {
	if value <= m.Value {
		return
	}
	if id == "" {
		id = league.UnknownID
	}
	m.ID = id
	m.Date = when
	m.Value = value
	m.Description = description
}

// Gather scans every team, matchup and player series once and returns the
// league records. Every category is returned even when nobody set a mark.
// Player statistics must already be computed.
func Gather(l *league.League) []league.Accolade {
	var (
		indGame       = newMark(league.AccoladeIndividualScratchGame)
		indSeries     = newMark(league.AccoladeIndividualScratchSeries)
		teamGame      = newMark(league.AccoladeTeamScratchGame)
		teamSeries    = newMark(league.AccoladeTeamScratchSeries)
		gameOverAvg   = newMark(league.AccoladeIndividualGameOverAverage)
		seriesOverAvg = newMark(league.AccoladeIndividualSeriesOverAvg)
		highAverage   = newMark(league.AccoladeIndividualHighAverage)
	)

	for _, team := range l.Teams {
		for _, m := range team.Matchups {
			when := m.Date()
			for _, g := range m.Scores.Games {
				teamGame.offer(team.ID, when, float64(g.Scratch), "")
			}
			teamSeries.offer(team.ID, when, float64(m.Scores.Series.Scratch), "")

			for _, ps := range m.Scores.PlayerScores {
				avg := ps.EnteringAverage
				overAverage := !ps.HandicapSettingDay
				for _, g := range ps.Games {
					indGame.offer(ps.PlayerID, when, float64(g.Scratch), "")
					if overAverage && g.Counted() {
						diff := g.Scratch - avg
						gameOverAvg.offer(ps.PlayerID, when, float64(diff), describe(g.Scratch, avg, diff))
					}
				}
				indSeries.offer(ps.PlayerID, when, float64(ps.Series.Scratch), "")
				if overAverage && !ps.HasBlind() {
					expected := avg * ps.Series.Games
					diff := ps.Series.Scratch - expected
					seriesOverAvg.offer(ps.PlayerID, when, float64(diff), describe(ps.Series.Scratch, expected, diff))
				}
			}
		}

		for _, p := range team.Roster {
			highAverage.offer(p.ID, league.Date{}, p.Stats.GameStats.Average, "")
		}
	}

	return []league.Accolade{
		indGame.Accolade,
		indSeries.Accolade,
		teamGame.Accolade,
		teamSeries.Accolade,
		gameOverAvg.Accolade,
		seriesOverAvg.Accolade,
		highAverage.Accolade,
	}
}

func describe(score, average, diff int) string {
	return fmt.Sprintf("%d - %d = %d", score, average, diff)
}
