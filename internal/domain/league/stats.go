package league

import "math"

type StatSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	StdDev  float64 `json:"sd"`
}

type Ratio struct {
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
	Pct         float64 `json:"pct"`
}

func NewRatio(numerator, denominator int) Ratio {
	r := Ratio{Numerator: numerator, Denominator: denominator}
	if denominator != 0 {
		r.Pct = float64(numerator) / float64(denominator)
	}
	return r
}

// Streak counts how many times a run of consecutive strikes of Length
// occurred.
type Streak struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

type PlayerStatistics struct {
	IncompleteFrameData          bool        `json:"incomplete-frame-data"`
	Pinfall                      int         `json:"pinfall"`
	GameStats                    StatSummary `json:"game-stats"`
	SeriesStats                  StatSummary `json:"series-stats"`
	GameAverages                 []float64   `json:"game-averages"`
	FirstBallAverage             float64     `json:"first-ball-average"`
	Strikes                      Ratio       `json:"strikes"`
	Spares                       Ratio       `json:"spares"`
	SinglePinSpares              Ratio       `json:"single-pin-spares"`
	Splits                       Ratio       `json:"splits"`
	Opens                        Ratio       `json:"opens"`
	StrikesToSpares              Ratio       `json:"strikes-to-spares"`
	CleanGames                   int         `json:"clean-games"`
	Games200                     int         `json:"games-200"`
	Games300                     int         `json:"games-300"`
	Series600                    int         `json:"series-600"`
	Series800                    int         `json:"series-800"`
	StrikesInARow                []Streak    `json:"strikes-in-a-row"`
	AllSinglePinsPickedUpAverage float64     `json:"all-single-pins-picked-up-average"`
}

// TeamStats is a team's season rollup. Low marks are zero until a game
// or series has been recorded.
type TeamStats struct {
	ScratchPins int `json:"scratch-pins"`
	Average     int `json:"average"`
	Handicap    int `json:"handicap"`
	HighGame    int `json:"high-game"`
	HighSeries  int `json:"high-series"`
	LowGame     int `json:"low-game"`
	LowSeries   int `json:"low-series"`
}

// NoLow is the starting bound for low game and series tracking.
const NoLow = math.MaxInt
