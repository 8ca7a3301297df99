package league

import "github.com/riskibarqy/bowling-league/internal/domain/frame"

type MatchupType string

const (
	MatchupTypeRegular       MatchupType = "REGULAR"
	MatchupTypePositionRound MatchupType = "POSITION_ROUND"
	MatchupTypeRollOff       MatchupType = "ROLL_OFF"
	MatchupTypeBye           MatchupType = "BYE"
)

// Matchup is one scheduled week for a tracked team.
type Matchup struct {
	Week          int           `json:"week"`
	ScheduledDate Date          `json:"scheduled-date"`
	BowlDate      Date          `json:"bowl-date"`
	Type          MatchupType   `json:"matchup-type"`
	EnteringRank  string        `json:"entering-rank,omitempty"`
	Lanes         []int         `json:"lanes,omitempty"`
	OilPattern    string        `json:"oil-pattern,omitempty"`
	Notes         []string      `json:"notes,omitempty"`
	Scores        TeamScore     `json:"scores"`
	Opponent      Opponent      `json:"opponent"`
	PointsWonLost PointsWonLost `json:"points-won-lost"`
}

// Date returns when the matchup was actually bowled, falling back to the
// scheduled date for matchups without a pre or post bowl.
func (m Matchup) Date() Date {
	if !m.BowlDate.IsZero() {
		return m.BowlDate
	}
	return m.ScheduledDate
}

func (m *Matchup) normalize() {
	if m.Type == "" {
		m.Type = MatchupTypeRegular
	}
}

type Opponent struct {
	TeamID        string    `json:"team-id"`
	EnteringRank  string    `json:"entering-rank,omitempty"`
	PlayersBowled []string  `json:"players,omitempty"`
	TeamHandicap  int       `json:"hdcp"`
	Vacant        bool      `json:"vacant"`
	Absent        bool      `json:"absent"`
	PrePostBowl   bool      `json:"pre-post-bowl"`
	Scores        TeamScore `json:"scores"`
}

type TeamScore struct {
	Games        []GameScore         `json:"games"`
	Series       SeriesScore         `json:"series"`
	PlayerScores []PlayerSeriesScore `json:"player-scores,omitempty"`
}

// GrowGames extends the game list with zero scores until it holds n games.
func (s *TeamScore) GrowGames(n int) {
	for len(s.Games) < n {
		s.Games = append(s.Games, GameScore{})
	}
}

// GameScore carries the score fields shared by games at every level.
type GameScore struct {
	Scratch          int     `json:"scratch-score"`
	EffectiveScratch int     `json:"effective-scratch-score"`
	Handicap         int     `json:"hdcp"`
	HandicapScore    int     `json:"hdcp-score"`
	PointsWon        float64 `json:"points-won"`
}

type SeriesScore struct {
	GameScore
	Games   int     `json:"games"`
	Average float64 `json:"average"`
}

// Accumulate adds one game into the series totals.
func (s *SeriesScore) Accumulate(g GameScore) {
	s.Scratch += g.Scratch
	s.EffectiveScratch += g.EffectiveScratch
	s.Handicap += g.Handicap
	s.HandicapScore += g.HandicapScore
	s.Games++
}

// PlayerSeriesScore is one player's games within a matchup.
type PlayerSeriesScore struct {
	PlayerID           string            `json:"player"`
	EnteringAverage    int               `json:"entering-average"`
	EnteringHandicap   int               `json:"entering-hdcp"`
	HandicapSettingDay bool              `json:"hdcp-setting-day"`
	Games              []PlayerGameScore `json:"games"`
	Series             SeriesScore       `json:"series"`
}

func (s PlayerSeriesScore) HasBlind() bool {
	for _, g := range s.Games {
		if g.Blind {
			return true
		}
	}
	return false
}

type PlayerGameScore struct {
	GameScore
	Blind    bool          `json:"blind"`
	Vacant   bool          `json:"vacant"`
	Arsenal  []string      `json:"arsenal,omitempty"`
	InFrames [][]string    `json:"frames,omitempty"`
	Frames   []frame.Frame `json:"scored-frames,omitempty"`
}

// Counted reports whether the game contributes to a player's statistics.
func (g PlayerGameScore) Counted() bool {
	return !g.Blind && !g.Vacant
}
