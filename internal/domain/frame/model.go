package frame

// Label is the symbolic mark recorded next to a ball's pinfall.
type Label string

const (
	LabelNone   Label = ""
	LabelStrike Label = "X"
	LabelSpare  Label = "/"
	LabelSplit  Label = "S"
	LabelFoul   Label = "F"
	LabelGutter Label = "-"
)

// Attribute is a narrative tag attached to a frame after scoring.
type Attribute string

const (
	AttributeTurkey        Attribute = "Turkey"
	AttributePerfectGame   Attribute = "Perfect-Game"
	AttributeCleanGame     Attribute = "Clean-Game"
	AttributeParkingLot    Attribute = "Parking-Lot"
	AttributeGutterSpare   Attribute = "Gutter-Spare"
	AttributeSplitPickedUp Attribute = "Split-Picked-Up"
	AttributeStar          Attribute = "Star"
	AttributeHung          Attribute = "Hung"
)

const (
	// Count is the number of frames in a complete game.
	Count = 10
	// Rack is the number of pins set for a fresh ball.
	Rack = 10

	DefaultParkingLotThreshold = 100
)

type Ball struct {
	Pins  int   `json:"pins"`
	Label Label `json:"label,omitempty"`
}

func (b Ball) Strike() bool {
	return b.Label == LabelStrike
}

func (b Ball) Spare() bool {
	return b.Label == LabelSpare
}

type Frame struct {
	Number     int         `json:"number"`
	Balls      []Ball      `json:"balls"`
	Cumulative int         `json:"cumulative"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

func (f Frame) Tenth() bool {
	return f.Number == Count
}

// Closed reports whether the frame ended on a strike or spare.
func (f Frame) Closed() bool {
	if len(f.Balls) == 0 {
		return false
	}
	last := f.Balls[len(f.Balls)-1]
	return last.Strike() || last.Spare()
}

// Open reports whether the frame counts as open for ratio statistics.
// A tenth frame is only open when it stopped after two balls.
func (f Frame) Open() bool {
	if f.Closed() {
		return false
	}
	if f.Tenth() {
		return len(f.Balls) == 2
	}
	return true
}

func (f Frame) Has(attr Attribute) bool {
	for _, a := range f.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

func (f Frame) ball(i int) (Ball, bool) {
	if i < 0 || i >= len(f.Balls) {
		return Ball{}, false
	}
	return f.Balls[i], true
}

func (f *Frame) tag(attr Attribute) {
	if f.Has(attr) {
		return
	}
	f.Attributes = append(f.Attributes, attr)
}

// Clone returns a deep copy of frames.
func Clone(frames []Frame) []Frame {
	if frames == nil {
		return nil
	}
	out := make([]Frame, len(frames))
	for i, f := range frames {
		out[i] = Frame{
			Number:     f.Number,
			Balls:      append([]Ball(nil), f.Balls...),
			Cumulative: f.Cumulative,
			Attributes: append([]Attribute(nil), f.Attributes...),
		}
	}
	return out
}
