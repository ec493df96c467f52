package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (torch off)
	MoveFeed                    // G1: linear cutting move in XY
	MovePlunge                  // G1 with Z decreasing: drop to cut height
	MoveRetract                 // G0/G1 with Z increasing
	MoveArc                     // G2/G3: circular cutting move
)

// GCodeMove represents a single parsed movement.
type GCodeMove struct {
	Type      MoveType
	FromX     float64
	FromY     float64
	FromZ     float64
	ToX       float64
	ToY       float64
	ToZ       float64
	I, J      float64 // arc center offset from the start point
	Clockwise bool
	FeedRate  float64
}

var coordRe = regexp.MustCompile(`([XYZFIJP])([-]?\d+\.?\d*)`)

// Length returns the XY travel of the move. Arcs whose end equals their
// start are full circles.
func (m GCodeMove) Length() float64 {
	if m.Type != MoveArc {
		return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
	}

	r := math.Hypot(m.I, m.J)
	cx, cy := m.FromX+m.I, m.FromY+m.J
	a0 := math.Atan2(m.FromY-cy, m.FromX-cx)
	a1 := math.Atan2(m.ToY-cy, m.ToX-cx)

	sweep := a1 - a0
	if m.Clockwise {
		sweep = a0 - a1
	}
	for sweep <= 1e-9 {
		sweep += 2 * math.Pi
	}
	return r * sweep
}

// stripComment removes semicolon and parenthetical comments.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		}
	}
	return strings.TrimSpace(line)
}

// command returns the leading word of a line, normalized so G00 and G0
// compare equal.
func command(upper string) string {
	word := upper
	if idx := strings.IndexByte(upper, ' '); idx >= 0 {
		word = upper[:idx]
	}
	if len(word) > 2 && (word[0] == 'G' || word[0] == 'M') && word[1] == '0' {
		word = word[:1] + strings.TrimLeft(word[1:], "0")
		if len(word) == 1 {
			word += "0"
		}
	}
	return word
}

// ParseGCode parses a program into structured moves. It tracks absolute
// position state and classifies each G0/G1/G2/G3 command by its movement
// characteristics.
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		cmd := command(upper)
		if cmd != "G0" && cmd != "G1" && cmd != "G2" && cmd != "G3" {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		var i, j float64
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			case "I":
				i = val
			case "J":
				j = val
			}
		}

		move := GCodeMove{
			FromX: curX, FromY: curY, FromZ: curZ,
			ToX: newX, ToY: newY, ToZ: newZ,
			FeedRate: newFeed,
		}
		if cmd == "G2" || cmd == "G3" {
			move.Type = MoveArc
			move.I, move.J = i, j
			move.Clockwise = cmd == "G2"
		} else {
			move.Type = classifyMove(cmd == "G0", curZ, newZ, curX, curY, newX, newY)
		}
		moves = append(moves, move)

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// classifyMove determines the MoveType of a linear move.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// Summary describes the work a cutting program performs.
type Summary struct {
	Pierces          int     // torch-on events
	Arcs             int     // arc moves, one per cut hole
	CutLength        float64 // mm cut with the torch on
	RapidLength      float64 // mm of torch-off travel
	DwellSeconds     float64 // total pierce delay
	EstimatedMinutes float64 // cutting time at programmed feeds plus dwell
}

// Summarize reads a program and totals its pierces, cut and rapid travel
// and an estimated run time. Any M3 counts as a torch-on.
func Summarize(code string) Summary {
	var s Summary

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch command(upper) {
		case "M3":
			s.Pierces++
		case "G4":
			for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
				if m[1] == "P" {
					if v, err := strconv.ParseFloat(m[2], 64); err == nil {
						s.DwellSeconds += v
					}
				}
			}
		}
	}

	for _, m := range ParseGCode(code) {
		switch m.Type {
		case MoveFeed, MoveArc:
			l := m.Length()
			s.CutLength += l
			if m.FeedRate > 0 {
				s.EstimatedMinutes += l / m.FeedRate
			}
			if m.Type == MoveArc {
				s.Arcs++
			}
		case MoveRapid, MoveRetract:
			s.RapidLength += m.Length()
		}
	}
	s.EstimatedMinutes += s.DwellSeconds / 60.0

	return s
}
