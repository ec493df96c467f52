package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// ValidatePieces rejects input that would make nesting meaningless or
// unbounded: empty or duplicate labels, non-positive or non-finite
// footprints, footprints too narrow for a hole and its edge offsets, and
// holes that do not lie entirely inside their piece.
func ValidatePieces(pieces []model.Piece, settings model.Settings) error {
	seen := make(map[string]bool, len(pieces))
	minSide := settings.HoleDiameter + 2*settings.EdgeOffset

	for _, p := range pieces {
		if p.Label == "" {
			return &model.InvalidGeometryError{Reason: "piece has no label"}
		}
		if seen[p.Label] {
			return &model.InvalidGeometryError{Label: p.Label, Reason: "label is not unique within the job"}
		}
		seen[p.Label] = true

		if !finite(p.Width) || !finite(p.Height) || p.Width <= 0 || p.Height <= 0 {
			return &model.InvalidGeometryError{
				Label:  p.Label,
				Reason: fmt.Sprintf("footprint %.2f x %.2f cm must be positive", p.Width, p.Height),
			}
		}
		if math.Min(p.Width, p.Height) < minSide {
			return &model.InvalidGeometryError{
				Label:  p.Label,
				Reason: fmt.Sprintf("footprint %.2f x %.2f cm is narrower than %.2f cm (hole diameter plus edge offsets)", p.Width, p.Height, minSide),
			}
		}

		r := p.HoleDiameter / 2
		for i, h := range p.Holes {
			if !finite(h.X) || !finite(h.Y) ||
				h.X-r < -epsilon || h.Y-r < -epsilon ||
				h.X+r > p.Width+epsilon || h.Y+r > p.Height+epsilon {
				return &model.InvalidGeometryError{
					Label:  p.Label,
					Reason: fmt.Sprintf("hole %d at (%.2f, %.2f) lies outside the %.2f x %.2f cm footprint", i+1, h.X, h.Y, p.Width, p.Height),
				}
			}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
