package playerstats

import (
	"sort"

	"github.com/riskibarqy/bowling-league/internal/domain/frame"
	"github.com/riskibarqy/bowling-league/internal/domain/league"
)

// frameTally accumulates frame derived counters over the games of a season.
type frameTally struct {
	firstBallPins  int
	firstBalls     int
	cleanGames     int
	strikes        int
	strikeRacks    int
	spares         int
	spareChances   int
	singlePins     int
	singlePinTries int
	splits         int
	splitTries     int
	opens          int
	frames         int
	streaks        map[int]int
	singlePinGames []float64
}

func newFrameTally() *frameTally {
	return &frameTally{streaks: make(map[int]int)}
}

func (t *frameTally) add(frames []frame.Frame) {
	clean := true
	run := 0
	for _, f := range frames {
		if len(f.Balls) == 0 {
			continue
		}
		t.firstBallPins += f.Balls[0].Pins
		t.firstBalls++
		if !f.Closed() {
			clean = false
		}
		if f.Open() {
			t.opens++
		}

		for i, b := range f.Balls {
			if b.Strike() {
				run++
			} else {
				t.saveStreak(run)
				run = 0
			}
			if !freshRack(f, i) {
				continue
			}
			t.strikeRacks++
			if b.Strike() {
				t.strikes++
			} else if !f.Tenth() || i < 2 {
				t.addSpareChance(b, f, i)
			}
		}
	}
	t.saveStreak(run)
	t.frames += len(frames)
	if clean {
		t.cleanGames++
	}
	t.singlePinGames = append(t.singlePinGames, float64(allSinglePinsPickedUp(frames)))
}

// addSpareChance records a spare opportunity left by ball i and whether the
// following ball converted it.
func (t *frameTally) addSpareChance(b frame.Ball, f frame.Frame, i int) {
	singlePin := b.Pins == frame.Rack-1
	split := b.Label == frame.LabelSplit
	t.spareChances++
	if singlePin {
		t.singlePinTries++
	}
	if split {
		t.splitTries++
	}
	if i+1 >= len(f.Balls) || !f.Balls[i+1].Spare() {
		return
	}
	t.spares++
	if singlePin {
		t.singlePins++
	}
	if split {
		t.splits++
	}
}

func (t *frameTally) saveStreak(run int) {
	if run >= 3 {
		t.streaks[run]++
	}
}

func (t *frameTally) firstBallAverage() float64 {
	if t.firstBalls == 0 {
		return 0
	}
	return float64(t.firstBallPins) / float64(t.firstBalls)
}

func (t *frameTally) apply(stats *league.PlayerStatistics) {
	stats.CleanGames = t.cleanGames
	stats.FirstBallAverage = t.firstBallAverage()
	stats.Strikes = league.NewRatio(t.strikes, t.strikeRacks)
	stats.Spares = league.NewRatio(t.spares, t.spareChances)
	stats.SinglePinSpares = league.NewRatio(t.singlePins, t.singlePinTries)
	stats.Splits = league.NewRatio(t.splits, t.splitTries)
	stats.Opens = league.NewRatio(t.opens, t.frames)
	stats.StrikesToSpares = league.NewRatio(t.strikes, t.spares)

	stats.StrikesInARow = make([]league.Streak, 0, len(t.streaks))
	for length, count := range t.streaks {
		stats.StrikesInARow = append(stats.StrikesInARow, league.Streak{Length: length, Count: count})
	}
	sort.Slice(stats.StrikesInARow, func(i, j int) bool {
		return stats.StrikesInARow[i].Length < stats.StrikesInARow[j].Length
	})
}

// freshRack reports whether ball i was thrown at a full set of pins.
func freshRack(f frame.Frame, i int) bool {
	if i == 0 {
		return true
	}
	if !f.Tenth() {
		return false
	}
	prev := f.Balls[i-1]
	return prev.Strike() || prev.Spare()
}

// allSinglePinsPickedUp rescores a game as if every single pin leave had
// been converted.
func allSinglePinsPickedUp(frames []frame.Frame) int {
	sim := frame.Clone(frames)
	for i := range sim {
		f := &sim[i]
		for _, b := range []int{1, 2} {
			if b >= len(f.Balls) || !freshRack(*f, b-1) {
				continue
			}
			leave, pickup := f.Balls[b-1], f.Balls[b]
			if leave.Pins == frame.Rack-1 && !leave.Strike() && pickup.Pins == 0 {
				f.Balls[b] = frame.Ball{Pins: 1, Label: frame.LabelSpare}
			}
		}
	}
	return frame.Accumulate(sim)
}
