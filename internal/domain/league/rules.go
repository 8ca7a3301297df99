package league

type HandicapType string

const (
	HandicapTypeNone                   HandicapType = "NONE"
	HandicapTypePercentOfAverageTarget HandicapType = "PCT_AVG_TO_TGT"
)

type PointScoringRule string

const PointScoringRulePpgPps PointScoringRule = "PPG_PPS"

type OpponentScoringType string

const (
	OpponentScoringPointsWithinAverage OpponentScoringType = "POINTS_WITHIN_AVG"
	OpponentScoringForfeit             OpponentScoringType = "FORFEIT"
)

// ScoringRules is the league's configuration for lineups, handicaps,
// blinds and point awards.
type ScoringRules struct {
	LegalMinLineup int                `json:"legal-min-lineup"`
	Lineup         int                `json:"lineup"`
	Roster         int                `json:"roster"`
	SubsAllowed    bool               `json:"substitutes-allowed"`
	Handicap       HandicapConfig     `json:"hdcp"`
	BlindPenalty   BlindPenaltyConfig `json:"blind-penalty"`
	PointScoring   PointScoringConfig `json:"point-scoring"`
}

type HandicapConfig struct {
	Type           HandicapType          `json:"type"`
	PctAvgToTarget *PctAvgToTargetConfig `json:"pct-avg-to-tgt-config,omitempty"`
}

type PctAvgToTargetConfig struct {
	PctToTarget float64 `json:"pct-to-target"`
	Target      int     `json:"target"`
}

type BlindPenaltyConfig struct {
	Allowed                 bool `json:"blinds-allowed"`
	DefaultPenalty          int  `json:"default-penalty"`
	MissedMatchupsPenalty   int  `json:"missed-matchups-penalty"`
	MissedMatchupsThreshold int  `json:"missed-matchups-threshold"`
}

type PointScoringConfig struct {
	Rule           PointScoringRule      `json:"matchup-point-scoring-rule"`
	PpgPps         *PpgPpsConfig         `json:"ppg-pps-matchup-point-scoring-config,omitempty"`
	VacantOpponent OpponentScoringConfig `json:"vacant-opponent-scoring"`
	AbsentOpponent OpponentScoringConfig `json:"absent-opponent-scoring"`
}

type PpgPpsConfig struct {
	PointsPerGame         float64 `json:"points-per-game"`
	PointsPerSeries       float64 `json:"points-per-series"`
	PointsPerGameOnTie    float64 `json:"points-per-game-on-tie"`
	PointsPerSeriesOnTie  float64 `json:"points-per-series-on-tie"`
	VacantOpponentAllowed bool    `json:"vacant-opponent-allowed"`
	AbsentOpponentAllowed bool    `json:"absent-opponent-allowed"`
}

// DefaultPpgPpsConfig awards one point per game and series won and half a
// point to each side on a tie.
func DefaultPpgPpsConfig() PpgPpsConfig {
	return PpgPpsConfig{
		PointsPerGame:        1,
		PointsPerSeries:      1,
		PointsPerGameOnTie:   0.5,
		PointsPerSeriesOnTie: 0.5,
	}
}

type OpponentScoringConfig struct {
	Allowed                 bool                `json:"allowed"`
	Type                    OpponentScoringType `json:"type,omitempty"`
	PointsWithinTeamAverage int                 `json:"points-within-team-avg,omitempty"`
}

func (r *ScoringRules) normalize() {
	if r.Handicap.Type == "" {
		r.Handicap.Type = HandicapTypeNone
	}
	if r.BlindPenalty.DefaultPenalty < 0 {
		r.BlindPenalty.DefaultPenalty = 0
	}
}
