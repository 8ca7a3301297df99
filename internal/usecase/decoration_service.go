package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/bowling-league/internal/domain/handicap"
	"github.com/riskibarqy/bowling-league/internal/domain/honorroll"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
	"github.com/riskibarqy/bowling-league/internal/domain/playerstats"
	"github.com/riskibarqy/bowling-league/internal/domain/points"
	"github.com/riskibarqy/bowling-league/internal/domain/scoring"
	"github.com/riskibarqy/bowling-league/internal/domain/teamstats"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

// DecorationService runs the scoring pipeline over a league snapshot.
type DecorationService struct {
	logger         *logging.Logger
	gamesPerSeries int
}

// NewDecorationService builds the decorator. defaultGamesPerSeries is used
// when a league document leaves its games per week unset.
func NewDecorationService(logger *logging.Logger, defaultGamesPerSeries int) *DecorationService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultGamesPerSeries <= 0 {
		defaultGamesPerSeries = league.DefaultGamesPerSeries
	}
	return &DecorationService{
		logger:         logger,
		gamesPerSeries: defaultGamesPerSeries,
	}
}

// Decorate fills every derived field of l in place: frames, handicaps,
// points, team rollups, player statistics and the league honor roll.
//
// The pass always runs to the end. Matchups that cannot be scored are
// reported in the returned error, which combines one error per failure.
// Decorate must run once per freshly loaded snapshot since the honor roll
// is appended, not replaced.
func (s *DecorationService) Decorate(ctx context.Context, l *league.League) error {
	ctx, span := startSpan(ctx, "usecase.DecorationService.Decorate")
	defer span.End()

	if l == nil {
		return fmt.Errorf("%w: league is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("league.id", l.ID), attribute.Int("league.teams", len(l.Teams)))

	if l.BowlingDays.GamesPerWeek <= 0 {
		l.BowlingDays.GamesPerWeek = s.gamesPerSeries
	}
	l.Normalize()

	hdcp, ok := handicap.Select(l.ScoringRules.Handicap)
	if !ok {
		s.logger.WarnContext(ctx, "unknown handicap configuration, using zero handicap",
			"league_id", l.ID,
			"handicap_type", l.ScoringRules.Handicap.Type,
		)
	}
	pts, ok := points.Select(l.ScoringRules.PointScoring)
	if !ok {
		s.logger.WarnContext(ctx, "unknown point scoring configuration, awarding no points",
			"league_id", l.ID,
			"rule", l.ScoringRules.PointScoring.Rule,
		)
	}

	scorer := scoring.NewScorer(l.ScoringRules, hdcp, pts)
	gamesPerSeries := l.GamesPerSeries()

	var err error
	for i := range l.Teams {
		team := &l.Teams[i]
		for j := range team.Matchups {
			m := &team.Matchups[j]
			for _, scoreErr := range multierr.Errors(scorer.ScoreMatchup(m, team.Roster)) {
				err = multierr.Append(err, fmt.Errorf("team=%s: %w", team.ID, scoreErr))
			}
		}
		teamstats.Rollup(team)
		playerstats.Season(team, hdcp, gamesPerSeries)
		teamstats.AddRegularAverages(team)
	}

	l.Accolades = append(l.Accolades, honorroll.Gather(l)...)

	if err != nil {
		failSpan(span, err, "decorated with issues")
		s.logger.WarnContext(ctx, "league decorated with issues",
			"league_id", l.ID,
			"issues", len(multierr.Errors(err)),
		)
	}
	return err
}

// Issues flattens a Decorate error into one message per failure.
func Issues(err error) []string {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
