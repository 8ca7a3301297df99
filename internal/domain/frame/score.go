package frame

// Reconstruct parses a game's notation, scores it and tags its frames.
// It returns the frames and the accumulated total.
func Reconstruct(in [][]string, parkingLotThreshold int) ([]Frame, int, error) {
	frames, err := Parse(in)
	if err != nil {
		return nil, 0, err
	}

	total := Accumulate(frames)
	Describe(frames, parkingLotThreshold)
	return frames, total, nil
}

// Accumulate sets the running cumulative score on every frame and returns
// the game total. Strike and spare bonuses look ahead into later frames and
// award whatever balls exist when the game is incomplete.
func Accumulate(frames []Frame) int {
	total := 0
	for i := range frames {
		for _, ball := range frames[i].Balls {
			total += ball.Pins
			if i >= Count-1 {
				continue
			}
			switch {
			case ball.Strike():
				total += nextPins(frames, i, 2)
			case ball.Spare():
				total += nextPins(frames, i, 1)
			}
		}
		frames[i].Cumulative = total
	}

	return total
}

func nextPins(frames []Frame, current, n int) int {
	sum := 0
	for j := current + 1; j < len(frames) && n > 0; j++ {
		for _, ball := range frames[j].Balls {
			if n == 0 {
				break
			}
			sum += ball.Pins
			n--
		}
	}
	return sum
}

// Describe tags narrative attributes on scored frames.
func Describe(frames []Frame, parkingLotThreshold int) {
	if parkingLotThreshold <= 0 {
		parkingLotThreshold = DefaultParkingLotThreshold
	}

	inARow := 0
	clean := true
	for i := range frames {
		f := &frames[i]
		for _, ball := range f.Balls {
			if ball.Strike() {
				inARow++
			} else {
				inARow = 0
			}
			switch inARow {
			case 3:
				f.tag(AttributeTurkey)
			case 12:
				f.tag(AttributePerfectGame)
			}
		}

		if !f.Closed() {
			clean = false
		}

		tagConversion(f, 1)
		if f.Tenth() {
			tagConversion(f, 2)
			if clean {
				f.tag(AttributeCleanGame)
			}
			if f.Cumulative < parkingLotThreshold {
				f.tag(AttributeParkingLot)
			}
		}
	}
}

func tagConversion(f *Frame, spareBall int) {
	spare, ok := f.ball(spareBall)
	if !ok || !spare.Spare() {
		return
	}
	prior, _ := f.ball(spareBall - 1)
	switch prior.Label {
	case LabelGutter:
		f.tag(AttributeGutterSpare)
	case LabelSplit:
		f.tag(AttributeSplitPickedUp)
	}
}

// Annotate compares the first balls of every player's frames for one game
// and tags "Star" when everyone struck and "Hung" on the lone player who
// did not. Nothing is tagged unless at least two players have complete
// frame data.
func Annotate(players [][]Frame) {
	if len(players) < 2 {
		return
	}
	for _, frames := range players {
		if len(frames) < Count {
			return
		}
	}

	for f := 0; f < Count; f++ {
		strikes := 0
		missed := -1
		for p, frames := range players {
			if first, ok := frames[f].ball(0); ok && first.Strike() {
				strikes++
				continue
			}
			missed = p
		}

		switch strikes {
		case len(players):
			for p := range players {
				players[p][f].tag(AttributeStar)
			}
		case len(players) - 1:
			players[missed][f].tag(AttributeHung)
		}
	}
}
