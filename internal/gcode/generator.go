// Package gcode turns nested sheets into plasma or laser cutting programs
// and reads such programs back for a job summary.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// mmPerCm converts layout units to machine units.
const mmPerCm = 10.0

// Generator produces a cutting program from a nested sheet layout. Every
// piece gets its holes cut first and its perimeter last so the part stays
// held by the skeleton until it is free.
type Generator struct {
	Settings model.Settings
	profile  model.CutterProfile
}

func New(settings model.Settings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetProfile(settings.CutterProfile),
	}
}

// NewWithProfile uses the given post-processor instead of looking one up by
// settings.CutterProfile.
func NewWithProfile(settings model.Settings, profile model.CutterProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// GenerateSheet produces the program for a single sheet.
func (g *Generator) GenerateSheet(sheet model.Sheet) string {
	var b strings.Builder

	g.writeHeader(&b, sheet)
	for i, pl := range sheet.Placements {
		g.writePiece(&b, pl, i+1)
	}
	g.writeFooter(&b)

	return b.String()
}

// GenerateAll produces one program per sheet, in sheet order.
func (g *Generator) GenerateAll(result model.NestResult) []string {
	codes := make([]string, 0, len(result.Sheets))
	for _, sheet := range result.Sheets {
		codes = append(codes, g.GenerateSheet(sheet))
	}
	return codes
}

func (g *Generator) writeHeader(b *strings.Builder, sheet model.Sheet) {
	p := g.profile
	s := g.Settings

	holes := 0
	for _, pl := range sheet.Placements {
		holes += len(pl.Piece.Holes)
	}

	b.WriteString(g.comment(fmt.Sprintf("ShelfCut program - Sheet %d", sheet.Sequence)))
	b.WriteString(g.comment(fmt.Sprintf("Stock: %.1f x %.1f mm", sheet.Width*mmPerCm, sheet.Height*mmPerCm)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Holes: %d, Efficiency: %.1f%%", len(sheet.Placements), holes, sheet.Efficiency())))
	b.WriteString(g.comment(fmt.Sprintf("Kerf: %.2fmm, Feed: %.0f mm/min, Pierce delay: %.2fs", s.KerfWidth, s.FeedRate, s.PierceDelay)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
}

func (g *Generator) writePiece(b *strings.Builder, pl model.Placement, num int) {
	piece := pl.Piece
	b.WriteString(g.comment(fmt.Sprintf("--- Piece %d: %s, %.1f x %.1f cm, %d holes%s ---",
		num, piece.Label, piece.Width, piece.Height, len(piece.Holes), rotatedStr(piece.Rotated))))

	halfKerf := g.Settings.KerfWidth / 2.0

	// Holes are cut on the inside of their outline.
	r := piece.HoleDiameter/2*mmPerCm - halfKerf
	for _, h := range pl.AbsoluteHoles() {
		g.writeHole(b, h.X*mmPerCm, h.Y*mmPerCm, r)
	}

	// The perimeter is cut on the outside.
	x0 := pl.X*mmPerCm - halfKerf
	y0 := pl.Y*mmPerCm - halfKerf
	x1 := pl.Right()*mmPerCm + halfKerf
	y1 := pl.Top()*mmPerCm + halfKerf

	b.WriteString(g.comment("Perimeter"))
	g.writePierce(b, x0, y0)
	g.writePerimeter(b, x0, y0, x1, y1)
	g.writeTorchOff(b)
	b.WriteString("\n")
}

// writeHole pierces at the rightmost point of the kerf-compensated circle
// and cuts it as one full clockwise arc. A hole smaller than the kerf is
// only pierced at its center.
func (g *Generator) writeHole(b *strings.Builder, cx, cy, r float64) {
	if r <= 0 {
		g.writePierce(b, cx, cy)
		g.writeTorchOff(b)
		return
	}
	sx := cx + r
	g.writePierce(b, sx, cy)
	b.WriteString(fmt.Sprintf("%s X%s Y%s I%s J%s F%s\n", g.profile.ArcCW,
		g.format(sx), g.format(cy), g.format(-r), g.format(0), g.format(g.Settings.FeedRate)))
	g.writeTorchOff(b)
}

// writePierce moves to (x, y), fires the torch at pierce height, waits the
// pierce delay and drops to cut height.
func (g *Generator) writePierce(b *strings.Builder, x, y float64) {
	p := g.profile
	s := g.Settings
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(x), g.format(y)))
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.PierceHeight)))
	b.WriteString(p.TorchOn + "\n")
	if s.PierceDelay > 0 && p.Dwell != "" {
		b.WriteString(fmt.Sprintf(p.Dwell+"\n", g.format(s.PierceDelay)))
	}
	b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(s.CutHeight), g.format(s.FeedRate)))
}

func (g *Generator) writeTorchOff(b *strings.Builder) {
	b.WriteString(g.profile.TorchOff + "\n")
	b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.SafeZ)))
}

// writePerimeter cuts the rectangle clockwise starting from (x0, y0).
func (g *Generator) writePerimeter(b *strings.Builder, x0, y0, x1, y1 float64) {
	p := g.profile
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x0), g.format(y1), g.format(g.Settings.FeedRate)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x1), g.format(y1)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x1), g.format(y0)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.FeedMove, g.format(x0), g.format(y0)))
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return fmt.Sprintf("%s %s%s\n", g.profile.CommentPrefix, text, g.profile.CommentSuffix)
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}

func rotatedStr(r bool) string {
	if r {
		return " [rotated]"
	}
	return ""
}
