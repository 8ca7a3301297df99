package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/bowling-league/internal/domain/frame"
	"github.com/riskibarqy/bowling-league/internal/domain/handicap"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/domain/points"
	"go.uber.org/multierr"
)

var (
	ErrNotImplemented = errors.New("opponent scoring policy not implemented")
	ErrVacantOpponent = fmt.Errorf("%w: vacant opponent", ErrNotImplemented)
	ErrAbsentOpponent = fmt.Errorf("%w: absent opponent", ErrNotImplemented)
)

// GameError names the player game whose frame notation could not be scored.
type GameError struct {
	Week     int
	PlayerID string
	Game     int
	Err      error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("week=%d player=%s game=%d: %v", e.Week, e.PlayerID, e.Game, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// Scorer populates a matchup's score tree with the league's calculators.
type Scorer struct {
	handicap     handicap.Calculator
	points       points.Calculator
	blindPenalty int
}

func NewScorer(rules league.ScoringRules, hdcp handicap.Calculator, pts points.Calculator) *Scorer {
	if hdcp == nil {
		hdcp = handicap.Zero{}
	}
	if pts == nil {
		pts = points.PpgPps{}
	}
	return &Scorer{
		handicap:     hdcp,
		points:       pts,
		blindPenalty: rules.BlindPenalty.DefaultPenalty,
	}
}

// ScoreMatchup fills in frames, handicaps, totals and points for one
// matchup. Games with malformed notation and vacant or absent opponents are
// reported in the returned error; the rest of the matchup is still scored.
// Points are only awarded once both sides have recorded games.
func (s *Scorer) ScoreMatchup(m *league.Matchup, roster []league.Player) error {
	var errs error

	players := make(map[string]league.Player, len(roster))
	for _, p := range roster {
		players[p.ID] = p
	}

	team := &m.Scores
	for i := range team.PlayerScores {
		ps := &team.PlayerScores[i]
		p, ok := players[ps.PlayerID]
		if !ok {
			p = league.NewPlayer(league.UnknownID, league.UnknownID, league.PlayerStatusSubstitute)
		}
		errs = multierr.Append(errs, s.reconstructFrames(m.Week, ps, p))
		s.scorePlayerSeries(ps, p.Carry())
	}

	if len(team.PlayerScores) > 0 {
		sumPlayerSeries(team)
	} else {
		applyTeamHandicap(team, teamHandicap(*team))
	}
	applyTeamHandicap(&m.Opponent.Scores, m.Opponent.TeamHandicap)

	switch {
	case m.Opponent.Vacant:
		errs = multierr.Append(errs, fmt.Errorf("week=%d opponent=%s: %w", m.Week, m.Opponent.TeamID, ErrVacantOpponent))
	case m.Opponent.Absent:
		errs = multierr.Append(errs, fmt.Errorf("week=%d opponent=%s: %w", m.Week, m.Opponent.TeamID, ErrAbsentOpponent))
	case len(team.Games) == 0 || len(m.Opponent.Scores.Games) == 0:
		// No score recorded for one side yet; nothing to award.
	default:
		s.points.Assign(team, &m.Opponent.Scores)
	}

	m.PointsWonLost = league.PointsWonLost{
		Won:  points.Total(*team),
		Lost: points.Total(m.Opponent.Scores),
	}

	annotateGames(team)
	return errs
}

func (s *Scorer) reconstructFrames(week int, ps *league.PlayerSeriesScore, p league.Player) error {
	var errs error
	for gi := range ps.Games {
		g := &ps.Games[gi]
		if len(g.InFrames) == 0 || len(g.Frames) > 0 {
			continue
		}

		frames, total, err := frame.Reconstruct(g.InFrames, p.ParkingLotThreshold)
		if err != nil {
			errs = multierr.Append(errs, &GameError{Week: week, PlayerID: ps.PlayerID, Game: gi + 1, Err: err})
			continue
		}
		g.Frames = frames
		if g.Scratch == 0 {
			g.Scratch = total
		}
	}
	return errs
}

func (s *Scorer) scorePlayerSeries(ps *league.PlayerSeriesScore, carry league.CarryOverStats) {
	hdcp := ps.EnteringHandicap
	switch {
	case hdcp != 0:
	case ps.HandicapSettingDay:
		hdcp = s.handicap.Handicap(s.handicap.Average(ps.Games, carry))
	case carry.EnteringHandicap != 0:
		hdcp = carry.EnteringHandicap
	default:
		hdcp = s.handicap.Handicap(float64(ps.EnteringAverage))
	}
	ps.EnteringHandicap = hdcp

	ps.Series = league.SeriesScore{}
	for gi := range ps.Games {
		g := &ps.Games[gi]
		g.Handicap = hdcp
		switch {
		case g.Blind:
			g.EffectiveScratch = ps.EnteringAverage - s.blindPenalty
		case g.Vacant:
			g.EffectiveScratch = 0
		default:
			g.EffectiveScratch = g.Scratch
		}
		g.HandicapScore = g.EffectiveScratch + g.Handicap
		ps.Series.Accumulate(g.GameScore)
	}
	if ps.Series.Games > 0 {
		ps.Series.Average = float64(ps.Series.Scratch) / float64(ps.Series.Games)
	}
}

func sumPlayerSeries(team *league.TeamScore) {
	team.Games = nil
	team.Series = league.SeriesScore{}
	for _, ps := range team.PlayerScores {
		team.GrowGames(len(ps.Games))
		for gi, g := range ps.Games {
			tg := &team.Games[gi]
			tg.Scratch += g.Scratch
			tg.EffectiveScratch += g.EffectiveScratch
			tg.Handicap += g.Handicap
			tg.HandicapScore += g.HandicapScore
		}
	}
	for _, g := range team.Games {
		team.Series.Accumulate(g)
	}
}

// applyTeamHandicap scores a side that is only known at team granularity.
func applyTeamHandicap(score *league.TeamScore, hdcp int) {
	score.Series = league.SeriesScore{}
	for i := range score.Games {
		g := &score.Games[i]
		g.Handicap = hdcp
		g.EffectiveScratch = g.Scratch
		g.HandicapScore = g.EffectiveScratch + g.Handicap
		g.PointsWon = 0
		score.Series.Accumulate(*g)
	}
}

func teamHandicap(score league.TeamScore) int {
	if len(score.Games) == 0 {
		return 0
	}
	return score.Games[0].Handicap
}

func annotateGames(team *league.TeamScore) {
	for gi := range team.Games {
		var games [][]frame.Frame
		for _, ps := range team.PlayerScores {
			if gi >= len(ps.Games) || !ps.Games[gi].Counted() {
				continue
			}
			games = append(games, ps.Games[gi].Frames)
		}
		frame.Annotate(games)
	}
}
