package league

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/bowling-league/internal/domain/frame"
)

// UnknownID stands in for any id that cannot be resolved within a league.
const UnknownID = "UNKNOWN"

const DefaultGamesPerSeries = 3

var ErrInvalidLeague = errors.New("invalid league document")

// League is one season's snapshot of a bowling league, including every
// tracked team with its roster and matchups.
type League struct {
	ID             string       `json:"id" validate:"required"`
	Name           string       `json:"name" validate:"required"`
	Season         string       `json:"season"`
	Center         string       `json:"center"`
	USBCSanctioned bool         `json:"usbc-sanctioned"`
	Completed      bool         `json:"completed"`
	BowlingDays    BowlingDays  `json:"bowling-days"`
	ScoringRules   ScoringRules `json:"scoring-rules"`
	Teams          []Team       `json:"teams" validate:"dive"`
	OtherTeams     []OtherTeam  `json:"other-teams"`
	Accolades      []Accolade   `json:"league-accolades"`
}

type BowlingDays struct {
	GamesPerWeek int    `json:"games-per-week" validate:"gte=0"`
	BowlsOn      string `json:"bowls-on,omitempty"`
	StartTime    string `json:"start-time,omitempty"`
	StartDate    Date   `json:"start-date"`
}

type Team struct {
	ID            string        `json:"id" validate:"required"`
	Number        int           `json:"number"`
	Division      string        `json:"division,omitempty"`
	Name          string        `json:"name"`
	CurrentRank   string        `json:"current-rank,omitempty"`
	Roster        []Player      `json:"roster" validate:"dive"`
	Matchups      []Matchup     `json:"matchups"`
	PointsWonLost PointsWonLost `json:"points-won-lost"`
	Stats         TeamStats     `json:"team-stats"`
}

// OtherTeam is an opponent the league does not track in depth.
type OtherTeam struct {
	ID       string   `json:"id"`
	Number   int      `json:"number"`
	Division string   `json:"division,omitempty"`
	Name     string   `json:"name"`
	Players  []string `json:"players"`
}

type PlayerStatus string

const (
	PlayerStatusRegular    PlayerStatus = "REGULAR"
	PlayerStatusSubstitute PlayerStatus = "SUBSTITUTE"
)

type Player struct {
	ID                    string           `json:"id" validate:"required"`
	Name                  string           `json:"name"`
	Status                PlayerStatus     `json:"status" validate:"omitempty,oneof=REGULAR SUBSTITUTE"`
	ParkingLotThreshold   int              `json:"parking-lot-threshold"`
	CarryOver             *CarryOverStats  `json:"carry-over-league-stats,omitempty"`
	Stats                 PlayerStatistics `json:"player-stats"`
	Handicap              int              `json:"handicap"`
	AverageBoosterSeries  int              `json:"average-booster-series"`
	BestGameOverAverage   *Accolade        `json:"best-game-over-average,omitempty"`
	BestSeriesOverAverage *Accolade        `json:"best-series-over-average,omitempty"`
}

// CarryOverStats holds figures brought over from a previous season.
type CarryOverStats struct {
	EnteringHandicap int `json:"entering-hdcp"`
	Pins             int `json:"pins"`
	Games            int `json:"games"`
}

func NewPlayer(id, name string, status PlayerStatus) Player {
	p := Player{ID: id, Name: name, Status: status}
	p.normalize()
	return p
}

func (p *Player) normalize() {
	if p.Status == "" {
		p.Status = PlayerStatusRegular
	}
	if p.ParkingLotThreshold <= 0 {
		p.ParkingLotThreshold = frame.DefaultParkingLotThreshold
	}
}

func (p Player) Regular() bool {
	return p.Status == PlayerStatusRegular
}

// Carry returns the carry-over stats or a zero value when none were supplied.
func (p Player) Carry() CarryOverStats {
	if p.CarryOver == nil {
		return CarryOverStats{}
	}
	return *p.CarryOver
}

// Normalize fills every defaulted field so later passes never need to
// check for missing values.
func (l *League) Normalize() {
	if l.BowlingDays.GamesPerWeek <= 0 {
		l.BowlingDays.GamesPerWeek = DefaultGamesPerSeries
	}
	l.ScoringRules.normalize()
	for i := range l.Teams {
		team := &l.Teams[i]
		for j := range team.Roster {
			team.Roster[j].normalize()
		}
		for j := range team.Matchups {
			team.Matchups[j].normalize()
		}
	}
}

func (l League) GamesPerSeries() int {
	if l.BowlingDays.GamesPerWeek <= 0 {
		return DefaultGamesPerSeries
	}
	return l.BowlingDays.GamesPerWeek
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidLeague)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: league name is required", ErrInvalidLeague)
	}

	seen := make(map[string]struct{}, len(l.Teams))
	for _, t := range l.Teams {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: team id is required", ErrInvalidLeague)
		}
		if _, exists := seen[t.ID]; exists {
			return fmt.Errorf("%w: duplicate team %s", ErrInvalidLeague, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	return nil
}

func (l *League) Team(id string) (*Team, bool) {
	for i := range l.Teams {
		if l.Teams[i].ID == id {
			return &l.Teams[i], true
		}
	}
	return nil, false
}

func (l *League) OtherTeam(id string) (*OtherTeam, bool) {
	for i := range l.OtherTeams {
		if l.OtherTeams[i].ID == id {
			return &l.OtherTeams[i], true
		}
	}
	return nil, false
}

// PlayerName resolves a player id across every roster.
func (l *League) PlayerName(id string) string {
	for i := range l.Teams {
		if p, ok := l.Teams[i].Player(id); ok {
			return p.Name
		}
	}
	return UnknownID
}

func (t *Team) Player(id string) (*Player, bool) {
	for i := range t.Roster {
		if t.Roster[i].ID == id {
			return &t.Roster[i], true
		}
	}
	return nil, false
}

type RankTrend string

const (
	RankTrendUp   RankTrend = "UP"
	RankTrendDown RankTrend = "DOWN"
	RankTrendSame RankTrend = "SAME"
)

// RankTrend compares the entering rank of the latest matchup with the
// team's current rank. A lower rank number is better.
func (t Team) RankTrend() RankTrend {
	if len(t.Matchups) == 0 {
		return RankTrendSame
	}
	current, err := strconv.Atoi(strings.TrimSpace(t.CurrentRank))
	if err != nil {
		return RankTrendSame
	}
	entering, err := strconv.Atoi(strings.TrimSpace(t.Matchups[len(t.Matchups)-1].EnteringRank))
	if err != nil {
		return RankTrendSame
	}

	switch {
	case current < entering:
		return RankTrendUp
	case current > entering:
		return RankTrendDown
	default:
		return RankTrendSame
	}
}

type PointsWonLost struct {
	Won  float64 `json:"won"`
	Lost float64 `json:"lost"`
}

func (p *PointsWonLost) Add(other PointsWonLost) {
	p.Won += other.Won
	p.Lost += other.Lost
}
