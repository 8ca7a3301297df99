package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedNotation = errors.New("malformed frame notation")

// ParseError names the frame and ball whose notation could not be resolved.
type ParseError struct {
	Frame  int
	Ball   int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: frame=%d ball=%d token=%q: %s", ErrMalformedNotation, e.Frame, e.Ball, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedNotation
}

// Parse resolves per-ball notation into frames with pinfall and labels.
// Cumulative scores are left at zero; see Accumulate.
//
// Trailing empty frames are treated as not yet bowled.
func Parse(in [][]string) ([]Frame, error) {
	last := len(in) - 1
	for last >= 0 && len(in[last]) == 0 {
		last--
	}
	in = in[:last+1]

	if len(in) > Count {
		return nil, &ParseError{Frame: Count + 1, Reason: "game has more than 10 frames"}
	}

	frames := make([]Frame, 0, len(in))
	for i, tokens := range in {
		f, err := parseFrame(i+1, tokens)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(number int, tokens []string) (Frame, error) {
	tenth := number == Count
	if len(tokens) == 0 {
		return Frame{}, &ParseError{Frame: number, Reason: "frame has no balls"}
	}

	out := Frame{
		Number: number,
		Balls:  make([]Ball, 0, len(tokens)),
	}

	standing := Rack
	fresh := true
	cleared := false
	for b, token := range tokens {
		switch {
		case !tenth && (b >= 2 || (b == 1 && cleared)):
			return Frame{}, &ParseError{Frame: number, Ball: b + 1, Token: token, Reason: "no ball left in frame"}
		case tenth && (b >= 3 || (b == 2 && !cleared)):
			return Frame{}, &ParseError{Frame: number, Ball: b + 1, Token: token, Reason: "fill ball not earned"}
		}

		ball, reason := resolveBall(token, standing, fresh, b, tenth)
		if reason != "" {
			return Frame{}, &ParseError{Frame: number, Ball: b + 1, Token: token, Reason: reason}
		}
		if ball.Pins > standing {
			return Frame{}, &ParseError{
				Frame:  number,
				Ball:   b + 1,
				Token:  token,
				Reason: fmt.Sprintf("%d pins knocked down with %d standing", ball.Pins, standing),
			}
		}

		out.Balls = append(out.Balls, ball)
		standing -= ball.Pins
		fresh = false
		if standing == 0 {
			standing = Rack
			fresh = true
			cleared = true
		}
	}

	return out, nil
}

func resolveBall(token string, standing int, fresh bool, b int, tenth bool) (Ball, string) {
	tok := strings.ToUpper(strings.TrimSpace(token))
	switch tok {
	case "":
		return Ball{}, "empty token"
	case string(LabelStrike):
		if !fresh {
			return Ball{}, "strike on a rack with pins already down"
		}
		return Ball{Pins: Rack, Label: LabelStrike}, ""
	case string(LabelSpare):
		if fresh {
			return Ball{}, "spare without a prior ball"
		}
		return Ball{Pins: standing, Label: LabelSpare}, ""
	case string(LabelFoul):
		return Ball{Pins: 0, Label: LabelFoul}, ""
	case string(LabelGutter):
		return Ball{Pins: 0, Label: LabelGutter}, ""
	}

	if strings.HasSuffix(tok, string(LabelSplit)) {
		if !fresh || !(b == 0 || (tenth && b < 2)) {
			return Ball{}, "split outside of a first ball"
		}
		n, err := strconv.Atoi(strings.TrimSuffix(tok, string(LabelSplit)))
		if err != nil || n < 0 || n >= Rack {
			return Ball{}, "invalid split pinfall"
		}
		return Ball{Pins: n, Label: LabelSplit}, ""
	}

	n, err := strconv.Atoi(tok)
	if err != nil {
		return Ball{}, "unrecognized token"
	}
	if n < 0 || n > Rack {
		return Ball{}, "pinfall out of range"
	}
	if n == standing {
		if fresh {
			return Ball{Pins: n, Label: LabelStrike}, ""
		}
		return Ball{Pins: n, Label: LabelSpare}, ""
	}

	return Ball{Pins: n}, ""
}
