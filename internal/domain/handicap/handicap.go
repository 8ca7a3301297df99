package handicap

import (
	"math"

	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

// Calculator turns a bowler's games into an average and an average into
// handicap pins.
type Calculator interface {
	Average(games []league.PlayerGameScore, carry league.CarryOverStats) float64
	Handicap(average float64) int
}

// Average divides scratch pinfall by games bowled. Carry-over pins and
// games only count when both are present.
func Average(games []league.PlayerGameScore, carry league.CarryOverStats) float64 {
	pins := 0
	for _, g := range games {
		pins += g.Scratch
	}
	count := len(games)
	if carry.Pins > 0 && carry.Games > 0 {
		pins += carry.Pins
		count += carry.Games
	}
	if count == 0 {
		return 0
	}
	return float64(pins) / float64(count)
}

// Zero never awards handicap.
type Zero struct{}

func (Zero) Average(games []league.PlayerGameScore, carry league.CarryOverStats) float64 {
	return Average(games, carry)
}

func (Zero) Handicap(float64) int {
	return 0
}

// PercentOfAverageToTarget awards Pct percent of the gap between the
// truncated average and Target.
type PercentOfAverageToTarget struct {
	Target int
	Pct    float64
}

func (c PercentOfAverageToTarget) Average(games []league.PlayerGameScore, carry league.CarryOverStats) float64 {
	return Average(games, carry)
}

func (c PercentOfAverageToTarget) Handicap(average float64) int {
	if average >= float64(c.Target) {
		return 0
	}
	gap := float64(c.Target) - math.Floor(average)
	return int(math.Floor(gap * c.Pct / 100))
}

// Select picks the calculator configured for the league. It reports false
// when the configuration is unknown or incomplete and Zero was used instead.
func Select(cfg league.HandicapConfig) (Calculator, bool) {
	switch cfg.Type {
	case league.HandicapTypeNone:
		return Zero{}, true
	case league.HandicapTypePercentOfAverageTarget:
		if cfg.PctAvgToTarget == nil {
			return Zero{}, false
		}
		return PercentOfAverageToTarget{
			Target: cfg.PctAvgToTarget.Target,
			Pct:    cfg.PctAvgToTarget.PctToTarget,
		}, true
	default:
		return Zero{}, false
	}
}
