package gcode

import (
	"math"
	"testing"
)

func TestParseGCode_Empty(t *testing.T) {
	moves := ParseGCode("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseGCode_CommentsOnly(t *testing.T) {
	code := `; This is a comment
; Another comment
(parenthetical comment)
`
	moves := ParseGCode(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseGCode_RapidMove(t *testing.T) {
	code := "G0 X10.000 Y20.000\n"
	moves := ParseGCode(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", m.Type)
	}
	if m.FromX != 0 || m.FromY != 0 {
		t.Errorf("expected from (0,0), got (%.3f, %.3f)", m.FromX, m.FromY)
	}
	if m.ToX != 10 || m.ToY != 20 {
		t.Errorf("expected to (10,20), got (%.3f, %.3f)", m.ToX, m.ToY)
	}
}

func TestParseGCode_FeedMove(t *testing.T) {
	code := "G0 X0.000 Y0.000\nG1 X100.000 Y0.000 F1500.0\n"
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	m := moves[1]
	if m.Type != MoveFeed {
		t.Errorf("expected MoveFeed, got %d", m.Type)
	}
	if m.ToX != 100 || m.ToY != 0 {
		t.Errorf("expected to (100,0), got (%.3f, %.3f)", m.ToX, m.ToY)
	}
	if m.FeedRate != 1500 {
		t.Errorf("expected feed rate 1500, got %.1f", m.FeedRate)
	}
}

func TestParseGCode_PlungeMove(t *testing.T) {
	code := "G0 X10.000 Y10.000\nG0 Z5.000\nG1 Z-6.000 F500.0\n"
	moves := ParseGCode(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	m := moves[2]
	if m.Type != MovePlunge {
		t.Errorf("expected MovePlunge, got %d", m.Type)
	}
	if m.FromZ != 5 || m.ToZ != -6 {
		t.Errorf("expected Z from 5 to -6, got %.3f to %.3f", m.FromZ, m.ToZ)
	}
}

func TestParseGCode_RetractMove(t *testing.T) {
	code := "G0 X10.000 Y10.000\nG1 Z-6.000 F500.0\nG0 Z5.000\n"
	moves := ParseGCode(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	m := moves[2]
	if m.Type != MoveRetract {
		t.Errorf("expected MoveRetract, got %d", m.Type)
	}
	if m.ToZ != 5 {
		t.Errorf("expected retract to Z=5, got Z=%.3f", m.ToZ)
	}
}

func TestParseGCode_InlineComment(t *testing.T) {
	code := "G1 X50.000 Y50.000 F1500.0 ; cutting move\n"
	moves := ParseGCode(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != 50 || moves[0].ToY != 50 {
		t.Errorf("expected to (50,50), got (%.3f, %.3f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestParseGCode_NonMovementLines(t *testing.T) {
	code := `G90
G21
G17
M3 S18000
G0 X0.000 Y0.000
G0 Z5.000
`
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Errorf("expected 2 moves (only G0 lines), got %d", len(moves))
	}
}

func TestParseGCode_StateTracking(t *testing.T) {
	code := `G0 X10.000 Y20.000
G0 Z5.000
G1 Z-6.000 F500.0
G1 X100.000 Y20.000 F1500.0
G1 X100.000 Y80.000
G0 Z5.000
`
	moves := ParseGCode(code)
	if len(moves) != 6 {
		t.Fatalf("expected 6 moves, got %d", len(moves))
	}

	// Verify position state is tracked across moves
	// Move 3 (index 2): plunge at X=10, Y=20
	if moves[2].FromX != 10 || moves[2].FromY != 20 {
		t.Errorf("move 2: expected from (10,20), got (%.3f, %.3f)", moves[2].FromX, moves[2].FromY)
	}
	// Move 4 (index 3): feed from (10,20) to (100,20)
	if moves[3].FromX != 10 || moves[3].ToX != 100 {
		t.Errorf("move 3: expected X from 10 to 100, got %.3f to %.3f", moves[3].FromX, moves[3].ToX)
	}
	// Move 5 (index 4): feed from (100,20) to (100,80)
	if moves[4].FromX != 100 || moves[4].FromY != 20 || moves[4].ToY != 80 {
		t.Errorf("move 4: expected from (100,20) to (100,80), got (%.3f,%.3f) to (%.3f,%.3f)",
			moves[4].FromX, moves[4].FromY, moves[4].ToX, moves[4].ToY)
	}
}

func TestParseGCode_FeedRateSticky(t *testing.T) {
	code := `G1 X10.000 Y10.000 F1500.0
G1 X20.000 Y20.000
`
	moves := ParseGCode(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	// Feed rate should persist from previous command
	if moves[1].FeedRate != 1500 {
		t.Errorf("expected sticky feed rate 1500, got %.1f", moves[1].FeedRate)
	}
}

func TestParseGCode_FullCutSequence(t *testing.T) {
	// A single piece with one hole, as written by the generator
	code := `; ShelfCut program - Sheet 1
G90
G21
G0 Z10.000
G0 X0.000 Y0.000

; --- Piece 1: M1_SX, 30.0 x 200.0 cm, 1 holes ---
G0 X32.250 Y20.000
G0 Z3.800
M3
G4 P0.500
G1 Z1.500 F2500.000
G2 X32.250 Y20.000 I-2.250 J0.000 F2500.000
M5
G0 Z10.000
; Perimeter
G0 X-0.750 Y-0.750
G0 Z3.800
M3
G4 P0.500
G1 Z1.500 F2500.000
G1 X-0.750 Y2000.750 F2500.000
G1 X300.750 Y2000.750
G1 X300.750 Y-0.750
G1 X-0.750 Y-0.750
M5
G0 Z10.000

; === Job complete ===
G0 Z10.000
G0 X0 Y0
M2
`
	moves := ParseGCode(code)

	counts := map[MoveType]int{}
	for _, m := range moves {
		counts[m.Type]++
	}

	if counts[MoveArc] != 1 {
		t.Errorf("expected 1 arc move, got %d", counts[MoveArc])
	}
	if counts[MoveFeed] != 4 {
		t.Errorf("expected 4 feed moves (rectangle perimeter), got %d", counts[MoveFeed])
	}
	if counts[MovePlunge] != 2 {
		t.Errorf("expected 2 plunges to cut height, got %d", counts[MovePlunge])
	}
	if counts[MoveRetract] < 2 {
		t.Errorf("expected at least 2 retract moves, got %d", counts[MoveRetract])
	}

	s := Summarize(code)
	if s.Pierces != 2 {
		t.Errorf("expected 2 pierces, got %d", s.Pierces)
	}
	if math.Abs(s.DwellSeconds-1.0) > 1e-9 {
		t.Errorf("expected 1.0s dwell, got %.3f", s.DwellSeconds)
	}
	wantCut := 2*math.Pi*2.25 + 2*(2001.5+301.5)
	if math.Abs(s.CutLength-wantCut) > 1e-6 {
		t.Errorf("expected cut length %.3f, got %.3f", wantCut, s.CutLength)
	}
	if s.RapidLength <= 0 {
		t.Error("expected some rapid travel")
	}
}

func TestClassifyMove(t *testing.T) {
	tests := []struct {
		name    string
		isRapid bool
		fromZ   float64
		toZ     float64
		fromX   float64
		fromY   float64
		toX     float64
		toY     float64
		want    MoveType
	}{
		{"rapid XY", true, 5, 5, 0, 0, 10, 20, MoveRapid},
		{"rapid retract", true, -6, 5, 10, 20, 10, 20, MoveRetract},
		{"rapid with Z up", true, 0, 5, 0, 0, 0, 0, MoveRetract},
		{"feed XY", false, -6, -6, 0, 0, 100, 0, MoveFeed},
		{"plunge", false, 5, -6, 10, 20, 10, 20, MovePlunge},
		{"retract feed", false, -6, 0, 10, 20, 10, 20, MoveRetract},
		{"feed with slight Z", false, -6, -6.0001, 0, 0, 100, 0, MoveFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyMove(tt.isRapid, tt.fromZ, tt.toZ, tt.fromX, tt.fromY, tt.toX, tt.toY)
			if got != tt.want {
				t.Errorf("classifyMove() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseGCode_NegativeCoordinates(t *testing.T) {
	code := "G0 X-3.000 Y-3.000\n"
	moves := ParseGCode(code)
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if moves[0].ToX != -3 || moves[0].ToY != -3 {
		t.Errorf("expected to (-3,-3), got (%.3f, %.3f)", moves[0].ToX, moves[0].ToY)
	}
}

func TestParseGCode_Arcs(t *testing.T) {
	code := "G0 X10.000 Y0.000\nG2 X10.000 Y0.000 I-10.000 J0.000 F1000\nG3 X-10.000 Y0.000 I-10.000 J0.000\n"
	moves := ParseGCode(code)
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}

	full := moves[1]
	if full.Type != MoveArc || !full.Clockwise {
		t.Fatalf("expected clockwise arc, got type %d clockwise %v", full.Type, full.Clockwise)
	}
	if math.Abs(full.Length()-2*math.Pi*10) > 1e-9 {
		t.Errorf("full circle length = %.4f, want %.4f", full.Length(), 2*math.Pi*10)
	}

	half := moves[2]
	if half.Clockwise {
		t.Error("G3 must be counter-clockwise")
	}
	if math.Abs(half.Length()-math.Pi*10) > 1e-9 {
		t.Errorf("half circle length = %.4f, want %.4f", half.Length(), math.Pi*10)
	}
}

func TestParseGCode_LeadingZeros(t *testing.T) {
	moves := ParseGCode("G00 X5\nG01 X10 F100\nG02 X10 Y0 I-1 J0\n")
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}
	if moves[0].Type != MoveRapid || moves[1].Type != MoveFeed || moves[2].Type != MoveArc {
		t.Errorf("unexpected move types %d %d %d", moves[0].Type, moves[1].Type, moves[2].Type)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("")
	if s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_LinuxCNCComments(t *testing.T) {
	code := "( Piece 1 )\nM3 $0 S1\nG4 P0.2500\nG1 X100 F1000\nM5 $0\n"
	s := Summarize(code)
	if s.Pierces != 1 {
		t.Errorf("expected 1 pierce, got %d", s.Pierces)
	}
	if math.Abs(s.CutLength-100) > 1e-9 {
		t.Errorf("expected 100mm cut, got %.3f", s.CutLength)
	}
	wantMinutes := 100.0/1000 + 0.25/60
	if math.Abs(s.EstimatedMinutes-wantMinutes) > 1e-9 {
		t.Errorf("expected %.5f minutes, got %.5f", wantMinutes, s.EstimatedMinutes)
	}
}
