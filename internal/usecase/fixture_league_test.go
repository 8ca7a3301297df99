package usecase

import (
	"time"

	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

func scratchGames(scores ...int) []league.PlayerGameScore {
	out := make([]league.PlayerGameScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, league.PlayerGameScore{GameScore: league.GameScore{Scratch: s}})
	}
	return out
}

func opponentGames(scores ...int) []league.GameScore {
	out := make([]league.GameScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, league.GameScore{Scratch: s})
	}
	return out
}

// newTestLeague returns a fresh snapshot on every call since decoration
// mutates the document in place.
func newTestLeague(id string) league.League {
	ppgPps := league.DefaultPpgPpsConfig()
	return league.League{
		ID:     id,
		Name:   "Tuesday Night Trios",
		Season: "2025-2026",
		Center: "Sunset Lanes",
		BowlingDays: league.BowlingDays{
			GamesPerWeek: 3,
		},
		ScoringRules: league.ScoringRules{
			Handicap: league.HandicapConfig{
				Type:           league.HandicapTypePercentOfAverageTarget,
				PctAvgToTarget: &league.PctAvgToTargetConfig{PctToTarget: 90, Target: 200},
			},
			PointScoring: league.PointScoringConfig{
				Rule:   league.PointScoringRulePpgPps,
				PpgPps: &ppgPps,
			},
		},
		Teams: []league.Team{{
			ID:          "t1",
			Name:        "Pin Pals",
			CurrentRank: "2",
			Roster: []league.Player{
				{ID: "a1", Name: "Alex", Status: league.PlayerStatusRegular},
			},
			Matchups: []league.Matchup{{
				Week:          1,
				ScheduledDate: league.NewDate(2025, time.September, 9),
				EnteringRank:  "4",
				Scores: league.TeamScore{PlayerScores: []league.PlayerSeriesScore{{
					PlayerID:        "a1",
					EnteringAverage: 180,
					Games:           scratchGames(180, 200, 220),
				}}},
				Opponent: league.Opponent{
					TeamID: "o1",
					Scores: league.TeamScore{Games: opponentGames(150, 150, 150)},
				},
			}},
		}},
		OtherTeams: []league.OtherTeam{{ID: "o1", Name: "Gutter Gang"}},
	}
}
